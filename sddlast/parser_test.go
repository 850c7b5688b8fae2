package sddlast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kralicky/sddl/sddlast"
)

func TestParseSimpleConstant(t *testing.T) {
	f, err := sddlast.Parse("x.sddl", "integer N = 2 + 3 * 4;")
	require.NoError(t, err)
	require.Len(t, f.Constants, 1)
	require.Equal(t, "N", f.Constants[0].Name)
	require.Equal(t, sddlast.DeclInteger, f.Constants[0].DeclKind)
}

func TestParseMessageAndForwardType(t *testing.T) {
	f, err := sddlast.Parse("x.sddl", `
		Outer { Inner child @1; }
		Inner { integer x @1; }
	`)
	require.NoError(t, err)
	require.Len(t, f.Messages, 2)
	require.Equal(t, "Outer", f.Messages[0].Name)
	require.True(t, f.Messages[0].Entries[0].TypeRef.IsOther)
	require.Equal(t, "Inner", f.Messages[0].Entries[0].TypeRef.Name)
}

func TestParseTypedefWithDelete(t *testing.T) {
	f, err := sddlast.Parse("x.sddl", `T [ a @1 = integer; b @2 = delete; c @3 = string; ]`)
	require.NoError(t, err)
	require.Len(t, f.Typedefs, 1)
	require.Len(t, f.Typedefs[0].Aliases, 3)
	require.True(t, f.Typedefs[0].Aliases[1].IsDelete)
}

func TestParseRPCWithArrow(t *testing.T) {
	f, err := sddlast.Parse("x.sddl", `Svc ( call1 @1 = Request -> Response; call2 @2 = delete; )`)
	require.NoError(t, err)
	require.Len(t, f.RPCs[0].Calls, 2)
	require.NotNil(t, f.RPCs[0].Calls[0].Request)
	require.NotNil(t, f.RPCs[0].Calls[0].Response)
	require.True(t, f.RPCs[0].Calls[1].IsDelete)
}

func TestParseRequireBlock(t *testing.T) {
	f, err := sddlast.Parse("x.sddl", `require { "a.sddl" "b.sddl" } integer N = 1;`)
	require.NoError(t, err)
	require.Len(t, f.Require, 2)
	require.Equal(t, "a.sddl", f.Require[0].Path)
}

func TestParseEmptyRequireBlock(t *testing.T) {
	f, err := sddlast.Parse("x.sddl", `require { } integer N = 1;`)
	require.NoError(t, err)
	require.Empty(t, f.Require)
}

func TestParseErrorReportsExpectedTokens(t *testing.T) {
	_, err := sddlast.Parse("x.sddl", `integer N = ;`)
	require.Error(t, err)
	var pe *sddlast.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, []string{"expression"}, pe.Expected)
}
