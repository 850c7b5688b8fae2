package sddlvalue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kralicky/sddl/sddlvalue"
)

func TestFloatToIntConversion(t *testing.T) {
	v := sddlvalue.NewFloat(1.00000000000000001)
	i, ok := v.TryInt()
	require.True(t, ok)
	require.Equal(t, int32(1), i)

	_, ok = sddlvalue.NewFloat(1.5).TryInt()
	require.False(t, ok)
}

func TestIntToFloatAlwaysLossless(t *testing.T) {
	f, ok := sddlvalue.NewInt(42).TryFloat()
	require.True(t, ok)
	require.Equal(t, 42.0, f)
}

func TestBoolNeverConvertsToNumeric(t *testing.T) {
	_, ok := sddlvalue.NewBool(true).TryInt()
	require.False(t, ok)
	_, ok = sddlvalue.NewBool(true).TryFloat()
	require.False(t, ok)
}

func TestEqualWithinEpsilon(t *testing.T) {
	require.True(t, sddlvalue.Equal(sddlvalue.NewFloat(1.0), sddlvalue.NewInt(1)))
	require.False(t, sddlvalue.Equal(sddlvalue.NewFloat(1.5), sddlvalue.NewInt(1)))
	require.False(t, sddlvalue.Equal(sddlvalue.NewString("a"), sddlvalue.NewBool(false)))
}

func TestZeroValues(t *testing.T) {
	require.Equal(t, sddlvalue.NewBool(false), sddlvalue.Zero(sddlvalue.Bool))
	require.Equal(t, sddlvalue.NewInt(0), sddlvalue.Zero(sddlvalue.Int))
	require.Equal(t, sddlvalue.NewFloat(0), sddlvalue.Zero(sddlvalue.Float))
	require.Equal(t, sddlvalue.NewString(""), sddlvalue.Zero(sddlvalue.String))
}
