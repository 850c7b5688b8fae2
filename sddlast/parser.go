package sddlast

import (
	"fmt"
	"strings"

	"github.com/kralicky/sddl/sddlvalue"
)

// ParseError is the single diagnostic kind the parser itself can produce: an
// unexpected or missing token, carrying the set of token display names that
// would have been accepted here (§4.8).
type ParseError struct {
	Pos      Position
	Expected []string
	Actual   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s but got %s", e.Pos, strings.Join(e.Expected, " or "), e.Actual)
}

var builtinKinds = map[string]sddlvalue.Kind{
	"boolean": sddlvalue.Bool,
	"integer": sddlvalue.Int,
	"number":  sddlvalue.Float,
	"string":  sddlvalue.String,
}

// Parser drives a Lexer to build a File. It is a plain recursive-descent
// parser: the grammar in §6 does not require more than one token of
// lookahead at any decision point.
type Parser struct {
	file string
	lx   *Lexer
	cur  Token
}

// Parse lexes and parses a complete schema file. file is rendered through
// DisplayPath first, so every Position the lexer and parser attach to a
// token or node already carries the form diagnostics are shown in (§4.8).
func Parse(file, src string) (*File, error) {
	file = DisplayPath(file)
	p := &Parser{file: file, lx: NewLexer(file, src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseFile()
}

func (p *Parser) advance() error {
	t, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *Parser) errUnexpected(expected ...string) error {
	return &ParseError{Pos: p.cur.Pos, Expected: expected, Actual: p.cur.Display()}
}

func (p *Parser) isIdent(text string) bool {
	return p.cur.Kind == TokenIdent && p.cur.Text == text
}

func (p *Parser) isPunct(text string) bool {
	return p.cur.Kind == TokenPunct && p.cur.Text == text
}

func (p *Parser) expectPunct(text string) error {
	if !p.isPunct(text) {
		return p.errUnexpected("'" + text + "'")
	}
	return p.advance()
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur.Kind != TokenIdent {
		return "", p.errUnexpected("identifier")
	}
	name := p.cur.Text
	return name, p.advance()
}

func (p *Parser) expectPlace() (int, Position, error) {
	if p.cur.Kind != TokenPlace {
		return 0, Position{}, p.errUnexpected("place")
	}
	pos := p.cur.Pos
	n, err := ParseIntLiteral(p.cur.Text)
	if err != nil {
		return 0, Position{}, fmt.Errorf("%s: invalid place number: %w", pos, err)
	}
	return int(n), pos, p.advance()
}

// skipOptSemi consumes an optional trailing ';' between declarations.
func (p *Parser) skipOptSemi() error {
	if p.isPunct(";") {
		return p.advance()
	}
	return nil
}

func (p *Parser) parseFile() (*File, error) {
	f := &File{Name: p.file}
	if p.isIdent("require") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectPunct("{"); err != nil {
			return nil, err
		}
		for !p.isPunct("}") {
			if p.cur.Kind != TokenString {
				return nil, p.errUnexpected("string literal", "'}'")
			}
			f.Require = append(f.Require, RequireItem{Path: p.cur.Text, Pos: p.cur.Pos})
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.skipOptSemi(); err != nil {
				return nil, err
			}
		}
		if err := p.advance(); err != nil { // consume '}'
			return nil, err
		}
	}

	for p.cur.Kind != TokenEOF {
		if err := p.parseTopLevelDecl(f); err != nil {
			return nil, err
		}
		if err := p.skipOptSemi(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (p *Parser) parseTopLevelDecl(f *File) error {
	if p.cur.Kind != TokenIdent {
		return p.errUnexpected("\"constant\"", "\"message\"", "\"typedef\"", "\"rpc\"")
	}
	switch p.cur.Text {
	case "auto", "local", "boolean", "integer", "number", "string":
		decl, err := p.parseConstant()
		if err != nil {
			return err
		}
		f.Constants = append(f.Constants, decl)
		return nil
	default:
		nameTok := p.cur
		if err := p.advance(); err != nil {
			return err
		}
		switch {
		case p.isPunct("{"):
			decl, err := p.parseMessage(nameTok)
			if err != nil {
				return err
			}
			f.Messages = append(f.Messages, decl)
			return nil
		case p.isPunct("["):
			decl, err := p.parseTypedef(nameTok)
			if err != nil {
				return err
			}
			f.Typedefs = append(f.Typedefs, decl)
			return nil
		case p.isPunct("("):
			decl, err := p.parseRPC(nameTok)
			if err != nil {
				return err
			}
			f.RPCs = append(f.RPCs, decl)
			return nil
		default:
			return p.errUnexpected("'{'", "'['", "'('")
		}
	}
}

func (p *Parser) parseConstant() (*ConstantDecl, error) {
	kindTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	// `local` may be followed by an explicit kind keyword; it is accepted
	// and ignored, since a local constant's kind is always inferred.
	if kindTok.Text == string(DeclLocal) && p.cur.Kind == TokenIdent {
		if _, ok := builtinKinds[p.cur.Text]; ok {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ConstantDecl{
		DeclKind: ConstantDeclKind(kindTok.Text),
		Name:     name,
		Expr:     expr,
		Pos:      kindTok.Pos,
	}, nil
}

func (p *Parser) parseTypeRef() (TypeRef, error) {
	if p.cur.Kind == TokenIdent {
		if k, ok := builtinKinds[p.cur.Text]; ok {
			tr := TypeRef{Builtin: k}
			return tr, p.advance()
		}
		if p.cur.Text == "null" {
			tr := TypeRef{IsNull: true}
			return tr, p.advance()
		}
		if isKeyword(p.cur.Text) {
			return TypeRef{}, p.errUnexpected("type")
		}
		tr := TypeRef{IsOther: true, Name: p.cur.Text}
		return tr, p.advance()
	}
	return TypeRef{}, p.errUnexpected("type")
}

func (p *Parser) parseMessage(nameTok Token) (*MessageDecl, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	m := &MessageDecl{Name: nameTok.Text, Pos: nameTok.Pos}
	for !p.isPunct("}") {
		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
		if err := p.skipOptSemi(); err != nil {
			return nil, err
		}
	}
	return m, p.advance()
}

func (p *Parser) parseEntry() (*EntryDecl, error) {
	pos := p.cur.Pos
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	fieldName, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	place, placePos, err := p.expectPlace()
	if err != nil {
		return nil, err
	}
	e := &EntryDecl{
		TypeRef:   typ,
		FieldName: fieldName,
		Place:     place,
		PlacePos:  placePos,
		Option:    OptRequire,
		Pos:       pos,
	}
	if p.isPunct("=") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch {
		case p.isIdent("delete"):
			e.IsDelete = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.isIdent("option"):
			e.Option = OptOption
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.isIdent("array"):
			e.Option = OptArray
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.isIdent("table"):
			e.Option = OptTable
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			e.Default = expr
		}
	}
	return e, nil
}

func (p *Parser) parseTypedef(nameTok Token) (*TypedefDecl, error) {
	if err := p.expectPunct("["); err != nil {
		return nil, err
	}
	t := &TypedefDecl{Name: nameTok.Text, Pos: nameTok.Pos}
	for !p.isPunct("]") {
		a, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		t.Aliases = append(t.Aliases, a)
		if err := p.skipOptSemi(); err != nil {
			return nil, err
		}
	}
	return t, p.advance()
}

func (p *Parser) parseAlias() (*AliasDecl, error) {
	pos := p.cur.Pos
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	place, placePos, err := p.expectPlace()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	a := &AliasDecl{Name: name, Place: place, PlacePos: placePos, Pos: pos}
	if p.isIdent("delete") {
		a.IsDelete = true
		return a, p.advance()
	}
	target, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	a.Target = target
	return a, nil
}

func (p *Parser) parseRPC(nameTok Token) (*RPCDecl, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	r := &RPCDecl{Name: nameTok.Text, Pos: nameTok.Pos}
	for !p.isPunct(")") {
		c, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		r.Calls = append(r.Calls, c)
		if err := p.skipOptSemi(); err != nil {
			return nil, err
		}
	}
	return r, p.advance()
}

func (p *Parser) parseCall() (*CallDecl, error) {
	pos := p.cur.Pos
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	place, placePos, err := p.expectPlace()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	c := &CallDecl{Name: name, Place: place, PlacePos: placePos, Pos: pos}
	if p.isIdent("delete") {
		c.IsDelete = true
		return c, p.advance()
	}
	if p.isPunct("->") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		resp, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		c.Response = &resp
		return c, nil
	}
	req, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	c.Request = &req
	if p.isPunct("->") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		resp, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		c.Response = &resp
	}
	return c, nil
}

// ---- expression grammar, precedence low to high:
// or -> and -> equality -> comparison -> concat -> additive -> term -> unary -> power -> atom

func (p *Parser) parseExpr() (ExprNode, error) { return p.parseOr() }

func (p *Parser) parseOr() (ExprNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isPunct("||") {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: OpOr, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ExprNode, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.isPunct("&&") {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: OpAnd, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ExprNode, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.isPunct("==") || p.isPunct("!=") {
		op := BinaryExprOp(p.cur.Text)
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ExprNode, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for p.isPunct("<") || p.isPunct("<=") || p.isPunct(">") || p.isPunct(">=") {
		op := BinaryExprOp(p.cur.Text)
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseConcat() (ExprNode, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.isPunct("..") {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: OpConcat, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ExprNode, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isPunct("+") || p.isPunct("-") {
		op := BinaryExprOp(p.cur.Text)
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ExprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isPunct("*") || p.isPunct("/") || p.isPunct("%") {
		op := BinaryExprOp(p.cur.Text)
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ExprNode, error) {
	if p.isPunct("!") {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operand: operand, Pos: pos}, nil
	}
	if p.isPunct("-") {
		// unary minus on a numeric literal folds directly into the literal
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negateLiteral(operand, pos)
	}
	return p.parsePower()
}

func negateLiteral(e ExprNode, pos Position) (ExprNode, error) {
	lit, ok := e.(*LiteralExpr)
	if !ok {
		return nil, fmt.Errorf("%s: unary '-' only applies to numeric literals", pos)
	}
	switch lit.Value.Kind() {
	case sddlvalue.Int:
		i, _ := lit.Value.TryInt()
		return &LiteralExpr{Value: sddlvalue.NewInt(-i), Pos: pos}, nil
	case sddlvalue.Float:
		f, _ := lit.Value.TryFloat()
		return &LiteralExpr{Value: sddlvalue.NewFloat(-f), Pos: pos}, nil
	default:
		return nil, fmt.Errorf("%s: unary '-' only applies to numeric literals", pos)
	}
}

func (p *Parser) parsePower() (ExprNode, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.isPunct("^") {
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary() // right-associative: recurse back to full unary/power chain
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: OpPow, Left: left, Right: right, Pos: pos}, nil
	}
	return left, nil
}

func (p *Parser) parseAtom() (ExprNode, error) {
	pos := p.cur.Pos
	switch p.cur.Kind {
	case TokenInt:
		v, err := ParseIntLiteral(p.cur.Text)
		if err != nil {
			return nil, err
		}
		lit := &LiteralExpr{Value: sddlvalue.NewInt(v), Pos: pos}
		return lit, p.advance()
	case TokenFloat:
		v, err := ParseFloatLiteral(p.cur.Text)
		if err != nil {
			return nil, err
		}
		lit := &LiteralExpr{Value: sddlvalue.NewFloat(v), Pos: pos}
		return lit, p.advance()
	case TokenString:
		lit := &LiteralExpr{Value: sddlvalue.NewString(p.cur.Text), Pos: pos}
		return lit, p.advance()
	case TokenIdent:
		switch p.cur.Text {
		case "true":
			return &LiteralExpr{Value: sddlvalue.NewBool(true), Pos: pos}, p.advance()
		case "false":
			return &LiteralExpr{Value: sddlvalue.NewBool(false), Pos: pos}, p.advance()
		default:
			name := p.cur.Text
			return &IdentExpr{Name: name, Pos: pos}, p.advance()
		}
	case TokenPunct:
		if p.cur.Text == "(" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	return nil, p.errUnexpected("expression")
}
