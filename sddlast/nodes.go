package sddlast

import "github.com/kralicky/sddl/sddlvalue"

// ExprNode is a node in the concrete (unresolved) expression syntax tree
// produced directly by the parser. The parse-tree adapter (in the root sddl
// package) walks this tree to build an evaluable sddlexpr.Expr, resolving
// IdentExpr leaves against the constant tables.
type ExprNode interface {
	Position() Position
}

// LiteralExpr is a literal bool/int/float/string leaf.
type LiteralExpr struct {
	Value sddlvalue.Value
	Pos   Position
}

func (n *LiteralExpr) Position() Position { return n.Pos }

// IdentExpr is a bare identifier leaf: a reference to a constant (or, in a
// message default, a file-local/public constant).
type IdentExpr struct {
	Name string
	Pos  Position
}

func (n *IdentExpr) Position() Position { return n.Pos }

// UnaryExpr is the "!" (logical not) prefix operator.
type UnaryExpr struct {
	Operand ExprNode
	Pos     Position
}

func (n *UnaryExpr) Position() Position { return n.Pos }

// BinaryExprOp enumerates every binary operator the grammar accepts.
type BinaryExprOp string

const (
	OpOr    BinaryExprOp = "||"
	OpAnd   BinaryExprOp = "&&"
	OpEq    BinaryExprOp = "=="
	OpNe    BinaryExprOp = "!="
	OpLt    BinaryExprOp = "<"
	OpLe    BinaryExprOp = "<="
	OpGt    BinaryExprOp = ">"
	OpGe    BinaryExprOp = ">="
	OpConcat BinaryExprOp = ".."
	OpAdd   BinaryExprOp = "+"
	OpSub   BinaryExprOp = "-"
	OpMul   BinaryExprOp = "*"
	OpDiv   BinaryExprOp = "/"
	OpMod   BinaryExprOp = "%"
	OpPow   BinaryExprOp = "^"
)

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Op          BinaryExprOp
	Left, Right ExprNode
	Pos         Position
}

func (n *BinaryExpr) Position() Position { return n.Pos }

// TypeRef names either a built-in kind or a named (Other) user type.
// Built-in is set when this refers to one of boolean/integer/number/string;
// otherwise Name holds the referenced type name. IsNull marks the typedef
// sentinel "null" target kind.
type TypeRef struct {
	Builtin sddlvalue.Kind
	IsOther bool
	IsNull  bool
	Name    string // set when IsOther
}

// RequireItem is one entry of a require block: the raw string literal as it
// appeared in source, plus its position for diagnostics.
type RequireItem struct {
	Path string
	Pos  Position
}

// File is the root of a parsed schema file.
type File struct {
	Name      string
	Require   []RequireItem
	Constants []*ConstantDecl
	Messages  []*MessageDecl
	Typedefs  []*TypedefDecl
	RPCs      []*RPCDecl
}

// ConstantDeclKind is the leading qualifier on a constant declaration.
type ConstantDeclKind string

const (
	DeclAuto    ConstantDeclKind = "auto"
	DeclLocal   ConstantDeclKind = "local"
	DeclBoolean ConstantDeclKind = "boolean"
	DeclInteger ConstantDeclKind = "integer"
	DeclNumber  ConstantDeclKind = "number"
	DeclString  ConstantDeclKind = "string"
)

// ConstantDecl is a parsed `constant` production.
type ConstantDecl struct {
	DeclKind ConstantDeclKind
	Name     string
	Expr     ExprNode
	Pos      Position
}

// EntryOption is the option flag on a message entry.
type EntryOption string

const (
	OptRequire EntryOption = "require"
	OptOption  EntryOption = "option"
	OptArray   EntryOption = "array"
	OptTable   EntryOption = "table"
)

// EntryDecl is a parsed message field.
type EntryDecl struct {
	TypeRef   TypeRef
	FieldName string
	Place     int
	PlacePos  Position
	Option    EntryOption
	IsDelete  bool
	Default   ExprNode // only meaningful (and only ever non-nil) for OptRequire
	Pos       Position
}

// MessageDecl is a parsed `message` production.
type MessageDecl struct {
	Name    string
	Entries []*EntryDecl
	Pos     Position
}

// AliasDecl is a parsed typedef alias entry.
type AliasDecl struct {
	Name     string
	Place    int
	PlacePos Position
	Target   TypeRef
	IsDelete bool
	Pos      Position
}

// TypedefDecl is a parsed `typedef` production.
type TypedefDecl struct {
	Name    string
	Aliases []*AliasDecl
	Pos     Position
}

// CallDecl is a parsed RPC call entry.
type CallDecl struct {
	Name     string
	Place    int
	PlacePos Position
	IsDelete bool
	Request  *TypeRef
	Response *TypeRef
	Pos      Position
}

// RPCDecl is a parsed `rpc` production.
type RPCDecl struct {
	Name  string
	Calls []*CallDecl
	Pos   Position
}
