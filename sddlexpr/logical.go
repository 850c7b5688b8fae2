package sddlexpr

import "github.com/kralicky/sddl/sddlvalue"

// LogicalOp identifies the binary boolean combinators.
type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

func (op LogicalOp) String() string {
	if op == And {
		return "&&"
	}
	return "||"
}

// Logical is a binary boolean expression node.
type Logical struct {
	base
	Op          LogicalOp
	Left, Right Expr
}

// NewLogical constructs a logical and/or node.
func NewLogical(op LogicalOp, left, right Expr) *Logical {
	l := &Logical{Op: op, Left: left, Right: right}
	l.base = wrap(l)
	return l
}

func (l *Logical) Typeof() (sddlvalue.Kind, error) {
	lk, err := l.Left.Typeof()
	if err != nil {
		return 0, err
	}
	rk, err := l.Right.Typeof()
	if err != nil {
		return 0, err
	}
	if lk != sddlvalue.Bool || rk != sddlvalue.Bool {
		return 0, ErrTypeMismatch
	}
	return sddlvalue.Bool, nil
}

func (l *Logical) Eval() (sddlvalue.Value, error) {
	if _, err := l.Typeof(); err != nil {
		return sddlvalue.Value{}, err
	}
	lb, _ := l.Left.TryBool()
	rb, _ := l.Right.TryBool()
	if l.Op == And {
		return sddlvalue.NewBool(lb && rb), nil
	}
	return sddlvalue.NewBool(lb || rb), nil
}

// Not is the unary boolean negation expression node.
type Not struct {
	base
	Operand Expr
}

// NewNot constructs a unary-not node.
func NewNot(operand Expr) *Not {
	n := &Not{Operand: operand}
	n.base = wrap(n)
	return n
}

func (n *Not) Typeof() (sddlvalue.Kind, error) {
	k, err := n.Operand.Typeof()
	if err != nil {
		return 0, err
	}
	if k != sddlvalue.Bool {
		return 0, ErrTypeMismatch
	}
	return sddlvalue.Bool, nil
}

func (n *Not) Eval() (sddlvalue.Value, error) {
	if _, err := n.Typeof(); err != nil {
		return sddlvalue.Value{}, err
	}
	b, _ := n.Operand.TryBool()
	return sddlvalue.NewBool(!b), nil
}

// Concat is the binary string concatenation ("..") expression node.
type Concat struct {
	base
	Left, Right Expr
}

// NewConcat constructs a string concatenation node.
func NewConcat(left, right Expr) *Concat {
	c := &Concat{Left: left, Right: right}
	c.base = wrap(c)
	return c
}

func (c *Concat) Typeof() (sddlvalue.Kind, error) {
	lk, err := c.Left.Typeof()
	if err != nil {
		return 0, err
	}
	rk, err := c.Right.Typeof()
	if err != nil {
		return 0, err
	}
	if lk != sddlvalue.String || rk != sddlvalue.String {
		return 0, ErrTypeMismatch
	}
	return sddlvalue.String, nil
}

func (c *Concat) Eval() (sddlvalue.Value, error) {
	if _, err := c.Typeof(); err != nil {
		return sddlvalue.Value{}, err
	}
	ls, _ := c.Left.TryString()
	rs, _ := c.Right.TryString()
	return sddlvalue.NewString(ls + rs), nil
}
