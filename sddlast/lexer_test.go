package sddlast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kralicky/sddl/sddlast"
)

func TestUnescapeBasic(t *testing.T) {
	require.Equal(t, "a\nb\tc", sddlast.Unescape(`a\nb\tc`))
	require.Equal(t, `a"b`, sddlast.Unescape(`a\"b`))
	require.Equal(t, `\`, sddlast.Unescape(`\\`))
}

func TestUnescapeSingleQuoteMapsToDoubleQuote(t *testing.T) {
	// Per the open question in §9: \' maps to a double quote, preserved
	// faithfully rather than "fixed" to a single quote.
	require.Equal(t, `"`, sddlast.Unescape(`\'`))
}

func TestUnescapeUnicodeEscape(t *testing.T) {
	backslashUA := string([]rune{'\\', 'u', '0', '0', '4', '1'})
	require.Equal(t, "A", sddlast.Unescape(backslashUA))
}

func TestUnescapeMalformedUnicodeEscapeDropsOnlyMarker(t *testing.T) {
	// Only the backslash and the "u" are dropped, like any other unknown
	// escape; the four characters that would have been hex digits are not
	// consumed specially and pass through as plain text.
	require.Equal(t, "ZZZZx", sddlast.Unescape(`\uZZZZx`))
}

func TestUnescapeUnknownEscapeDropped(t *testing.T) {
	require.Equal(t, "ab", sddlast.Unescape(`a\qb`))
}

func TestParseIntAndHex(t *testing.T) {
	v, err := sddlast.ParseIntLiteral("0x1F")
	require.NoError(t, err)
	require.Equal(t, int32(31), v)

	v, err = sddlast.ParseIntLiteral("42")
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}
