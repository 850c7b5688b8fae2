package sddlexpr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kralicky/sddl/sddlexpr"
	"github.com/kralicky/sddl/sddlvalue"
)

func lit(v sddlvalue.Value) sddlexpr.Expr { return sddlexpr.NewLeaf(v) }

func TestExponentRightAssociative(t *testing.T) {
	// 2^3^2 == 2^(3^2) == 2^9 == 512
	inner := sddlexpr.NewArithmetic(sddlexpr.Pow, lit(sddlvalue.NewInt(3)), lit(sddlvalue.NewInt(2)))
	outer := sddlexpr.NewArithmetic(sddlexpr.Pow, lit(sddlvalue.NewInt(2)), inner)
	v, err := outer.Eval()
	require.NoError(t, err)
	i, ok := v.TryInt()
	require.True(t, ok)
	require.Equal(t, int32(512), i)
}

func TestArithmeticTypeof(t *testing.T) {
	e := sddlexpr.NewArithmetic(sddlexpr.Add, lit(sddlvalue.NewInt(1)), lit(sddlvalue.NewFloat(2.5)))
	k, err := e.Typeof()
	require.NoError(t, err)
	require.Equal(t, sddlvalue.Float, k)
}

func TestTypeMismatch(t *testing.T) {
	e := sddlexpr.NewConcat(lit(sddlvalue.NewString("a")), lit(sddlvalue.NewInt(1)))
	_, err := e.Typeof()
	require.ErrorIs(t, err, sddlexpr.ErrTypeMismatch)
}

func TestComparisonEpsilon(t *testing.T) {
	a := lit(sddlvalue.NewFloat(1.0))
	b := lit(sddlvalue.NewFloat(1.0 + sddlvalue.Epsilon/2))

	lt := sddlexpr.NewComparison(sddlexpr.Lt, a, b)
	v, err := lt.Eval()
	require.NoError(t, err)
	vb, _ := v.TryBool()
	require.False(t, vb, "near-equal values should not satisfy strict <")

	le := sddlexpr.NewComparison(sddlexpr.Le, a, b)
	v, err = le.Eval()
	require.NoError(t, err)
	vb, _ = v.TryBool()
	require.True(t, vb, "near-equal values should satisfy <=")
}

func TestUnresolvedRef(t *testing.T) {
	r := sddlexpr.NewRef("Missing", nil)
	_, err := r.Typeof()
	require.Error(t, err)

	resolved := sddlexpr.NewRef("Found", func(string) (sddlexpr.Expr, error) {
		return lit(sddlvalue.NewInt(5)), nil
	})
	v, err := resolved.Eval()
	require.NoError(t, err)
	i, _ := v.TryInt()
	require.Equal(t, int32(5), i)
}

func TestConcat(t *testing.T) {
	e := sddlexpr.NewConcat(lit(sddlvalue.NewString("foo")), lit(sddlvalue.NewString("bar")))
	v, err := e.Eval()
	require.NoError(t, err)
	s, _ := v.TryString()
	require.Equal(t, "foobar", s)
}
