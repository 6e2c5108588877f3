package tac

import (
	"bytes"
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPattern(t *testing.T, expr string) Separator {
	t.Helper()
	sep, err := Pattern(expr)
	require.NoError(t, err)
	return sep
}

func TestRegex_FindsRightmostStart(t *testing.T) {
	// Walking backward, "12" is split: the search at bound 4 finds "2"
	// starting at 2 before it ever considers position 1.
	matches := Locate([]byte("a12b3c"), mustPattern(t, `[0-9]+`))
	assert.Equal(t, []Match{{1, 2}, {2, 3}, {4, 5}}, matches)
}

func TestRegex_LiteralFastPath(t *testing.T) {
	sep := mustPattern(t, `ab`)
	require.True(t, sep.pat.complete)

	matches := Locate([]byte("xabyabz"), sep)
	assert.Equal(t, []Match{{1, 3}, {4, 6}}, matches)
}

func TestRegex_LiteralPrefixSkip(t *testing.T) {
	sep := mustPattern(t, `a[0-9]`)
	require.Equal(t, []byte("a"), sep.pat.prefix)
	require.False(t, sep.pat.complete)

	matches := Locate([]byte("a1a2xa"), sep)
	assert.Equal(t, []Match{{0, 2}, {2, 4}}, matches)
}

func TestRegex_LineAnchorSeesPrecedingByte(t *testing.T) {
	matches := Locate([]byte("#a\n#b\nc#d"), mustPattern(t, `(?m)^#`))
	assert.Equal(t, []Match{{0, 1}, {3, 4}}, matches)
}

func TestRegex_TextAnchorOnlyAtStart(t *testing.T) {
	matches := Locate([]byte("xaxbx"), mustPattern(t, `^x`))
	assert.Equal(t, []Match{{0, 1}}, matches)
}

func TestRegex_WordBoundary(t *testing.T) {
	matches := Locate([]byte("foo barfoo foo"), mustPattern(t, `\bfoo`))
	assert.Equal(t, []Match{{0, 3}, {11, 14}}, matches)
}

func TestRegex_WordBoundaryAfterMultibyteRune(t *testing.T) {
	// "é" is two bytes and not an ASCII word character, so \b holds before "foo".
	data := []byte("é" + "foo")
	matches := Locate(data, mustPattern(t, `\bfoo`))
	assert.Equal(t, []Match{{2, 5}}, matches)
}

func TestRegex_AssertionsInsideMultibyteRune(t *testing.T) {
	// Positions 1 and 2 of "€" split the rune; assertions there must see a
	// preceding byte, not the start of the text.
	euro := []byte("€")

	tests := []struct {
		expr string
		want []Match
	}{
		{`^.`, []Match{{0, 3}}},
		{`^[^a]`, []Match{{0, 3}}},
		{`(?m)^\W`, []Match{{0, 3}}},
		{`\b\W`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, Locate(euro, mustPattern(t, tt.expr)))
		})
	}
}

func TestRegex_MultibyteRecordsStayWhole(t *testing.T) {
	data := []byte("a€\n€b")

	var buf bytes.Buffer
	require.NoError(t, ReversePattern(data, `(?m)^\W`, Before, &buf))
	assert.Equal(t, "€ba€\n", buf.String())
	assert.True(t, utf8.Valid(buf.Bytes()))

	buf.Reset()
	require.NoError(t, ReversePattern([]byte("€"), `^.`, After, &buf))
	assert.Equal(t, "€", buf.String())
}

func TestRegex_EndAnchorUsesBound(t *testing.T) {
	// $ matches at the current bound, so every trailing "x" is found in turn.
	matches := Locate([]byte("axxx"), mustPattern(t, `x$`))
	assert.Equal(t, []Match{{1, 2}, {2, 3}, {3, 4}}, matches)
}

func TestRegex_EmptyMatches(t *testing.T) {
	matches := Locate([]byte("ab"), mustPattern(t, `x*`))
	assert.Equal(t, []Match{{0, 0}, {1, 1}}, matches)
}

func TestRegex_NeverMatches(t *testing.T) {
	assert.Empty(t, Locate([]byte("abc"), mustPattern(t, `z`)))
	assert.Empty(t, Locate(nil, mustPattern(t, `a`)))
}

func TestRegex_PreferenceFromStart(t *testing.T) {
	// Leftmost-first: from position 1 the alternation prefers "b" over "bc".
	matches := Locate([]byte("abcd"), mustPattern(t, `b|bc`))
	assert.Equal(t, []Match{{1, 2}}, matches)
}

func TestFromRegexp(t *testing.T) {
	sep, err := FromRegexp(regexp.MustCompile(`;+`))
	require.NoError(t, err)
	assert.Equal(t, KindPattern, sep.Kind())

	var out bytes.Buffer
	require.NoError(t, Reverse([]byte("a;;b;c"), sep, After, &out))
	assert.Equal(t, "cb;;a;", out.String())
}

func TestHasLeftAssertion(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{`abc`, false},
		{`[0-9]+`, false},
		{`x$`, false},
		{`^x`, true},
		{`(?m)^x`, true},
		{`\Ax`, true},
		{`\bx`, true},
		{`a(\Bx)`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			sep := mustPattern(t, tt.expr)
			assert.Equal(t, tt.want, sep.pat.context != nil)
		})
	}
}
