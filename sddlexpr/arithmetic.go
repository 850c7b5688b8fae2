package sddlexpr

import (
	"fmt"
	"math"

	"github.com/kralicky/sddl/sddlvalue"
)

// ArithOp identifies one of the five binary arithmetic operators.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
	// Pow is the right-associative exponent operator; callers are
	// responsible for building right-associative trees (the parser does
	// this), this node itself is a plain binary op.
	Pow
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Pow:
		return "^"
	default:
		return "?"
	}
}

// Arithmetic is a binary arithmetic expression node.
type Arithmetic struct {
	base
	Op          ArithOp
	Left, Right Expr
}

// NewArithmetic constructs an arithmetic node.
func NewArithmetic(op ArithOp, left, right Expr) *Arithmetic {
	a := &Arithmetic{Op: op, Left: left, Right: right}
	a.base = wrap(a)
	return a
}

func (a *Arithmetic) Typeof() (sddlvalue.Kind, error) {
	lk, err := a.Left.Typeof()
	if err != nil {
		return 0, err
	}
	rk, err := a.Right.Typeof()
	if err != nil {
		return 0, err
	}
	k, ok := numericKind(lk, rk)
	if !ok {
		return 0, ErrTypeMismatch
	}
	return k, nil
}

func (a *Arithmetic) Eval() (sddlvalue.Value, error) {
	k, err := a.Typeof()
	if err != nil {
		return sddlvalue.Value{}, err
	}
	lv, err := a.Left.Eval()
	if err != nil {
		return sddlvalue.Value{}, err
	}
	rv, err := a.Right.Eval()
	if err != nil {
		return sddlvalue.Value{}, err
	}

	if k == sddlvalue.Int {
		li, _ := lv.TryInt()
		ri, _ := rv.TryInt()
		switch a.Op {
		case Add:
			return sddlvalue.NewInt(li + ri), nil
		case Sub:
			return sddlvalue.NewInt(li - ri), nil
		case Mul:
			return sddlvalue.NewInt(li * ri), nil
		case Div:
			if ri == 0 {
				return sddlvalue.Value{}, fmt.Errorf("division by zero")
			}
			return sddlvalue.NewInt(li / ri), nil
		case Mod:
			if ri == 0 {
				return sddlvalue.Value{}, fmt.Errorf("division by zero")
			}
			return sddlvalue.NewInt(li % ri), nil
		case Pow:
			r := math.Pow(float64(li), float64(ri))
			i, ok := sddlvalue.NewFloat(r).TryInt()
			if !ok {
				return sddlvalue.NewFloat(r), nil
			}
			return sddlvalue.NewInt(i), nil
		}
	}

	lf, _ := lv.TryFloat()
	rf, _ := rv.TryFloat()
	switch a.Op {
	case Add:
		return sddlvalue.NewFloat(lf + rf), nil
	case Sub:
		return sddlvalue.NewFloat(lf - rf), nil
	case Mul:
		return sddlvalue.NewFloat(lf * rf), nil
	case Div:
		return sddlvalue.NewFloat(lf / rf), nil
	case Mod:
		return sddlvalue.NewFloat(math.Mod(lf, rf)), nil
	case Pow:
		return sddlvalue.NewFloat(math.Pow(lf, rf)), nil
	}
	return sddlvalue.Value{}, fmt.Errorf("unknown arithmetic operator %v", a.Op)
}

// There is no unary minus node. The grammar in §6 only lists binary
// arithmetic and a unary "!"; a leading "-" on a numeric literal is folded
// by the parser into the literal itself rather than represented here.
