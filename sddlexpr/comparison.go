package sddlexpr

import (
	"github.com/kralicky/sddl/sddlvalue"
)

// CompareOp identifies one of the four numeric ordering operators.
type CompareOp int

const (
	Lt CompareOp = iota
	Le
	Gt
	Ge
)

func (op CompareOp) String() string {
	switch op {
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	default:
		return ">="
	}
}

// Comparison is a binary numeric-ordering expression node. Per §3, float
// ordering uses Epsilon asymmetrically: strict operators require a gap
// exceeding Epsilon, while the inclusive operators treat a near-equal pair
// as equal.
type Comparison struct {
	base
	Op          CompareOp
	Left, Right Expr
}

// NewComparison constructs a comparison node.
func NewComparison(op CompareOp, left, right Expr) *Comparison {
	c := &Comparison{Op: op, Left: left, Right: right}
	c.base = wrap(c)
	return c
}

func (c *Comparison) Typeof() (sddlvalue.Kind, error) {
	lk, err := c.Left.Typeof()
	if err != nil {
		return 0, err
	}
	rk, err := c.Right.Typeof()
	if err != nil {
		return 0, err
	}
	if _, ok := numericKind(lk, rk); !ok {
		return 0, ErrTypeMismatch
	}
	return sddlvalue.Bool, nil
}

func (c *Comparison) Eval() (sddlvalue.Value, error) {
	if _, err := c.Typeof(); err != nil {
		return sddlvalue.Value{}, err
	}
	lv, err := c.Left.Eval()
	if err != nil {
		return sddlvalue.Value{}, err
	}
	rv, err := c.Right.Eval()
	if err != nil {
		return sddlvalue.Value{}, err
	}
	lf, _ := lv.TryFloat()
	rf, _ := rv.TryFloat()

	var result bool
	switch c.Op {
	case Lt:
		result = rf-lf > sddlvalue.Epsilon
	case Gt:
		result = lf-rf > sddlvalue.Epsilon
	case Le:
		result = !(lf-rf > sddlvalue.Epsilon)
	case Ge:
		result = !(rf-lf > sddlvalue.Epsilon)
	}
	return sddlvalue.NewBool(result), nil
}

// Equality is a binary equality/inequality expression node, supporting
// matched Bool pairs, numeric pairs (within Epsilon), and String pairs.
type Equality struct {
	base
	Negate      bool
	Left, Right Expr
}

// NewEquality constructs an equality (negate=false) or inequality
// (negate=true) node.
func NewEquality(negate bool, left, right Expr) *Equality {
	e := &Equality{Negate: negate, Left: left, Right: right}
	e.base = wrap(e)
	return e
}

func (e *Equality) Typeof() (sddlvalue.Kind, error) {
	lk, err := e.Left.Typeof()
	if err != nil {
		return 0, err
	}
	rk, err := e.Right.Typeof()
	if err != nil {
		return 0, err
	}
	switch {
	case lk == sddlvalue.Bool && rk == sddlvalue.Bool:
		return sddlvalue.Bool, nil
	case lk == sddlvalue.String && rk == sddlvalue.String:
		return sddlvalue.Bool, nil
	default:
		if _, ok := numericKind(lk, rk); ok {
			return sddlvalue.Bool, nil
		}
	}
	return 0, ErrTypeMismatch
}

func (e *Equality) Eval() (sddlvalue.Value, error) {
	if _, err := e.Typeof(); err != nil {
		return sddlvalue.Value{}, err
	}
	lv, err := e.Left.Eval()
	if err != nil {
		return sddlvalue.Value{}, err
	}
	rv, err := e.Right.Eval()
	if err != nil {
		return sddlvalue.Value{}, err
	}
	eq := sddlvalue.Equal(lv, rv)
	if e.Negate {
		eq = !eq
	}
	return sddlvalue.NewBool(eq), nil
}
