package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertAgreement,
		Strategy: StrategyVectored,
		Expected: "same output as contiguous",
		Actual:   "identical",
	}

	assert.Equal(t,
		"Assertion failed: strategies_agree (vectored)\n"+
			"  Expected: same output as contiguous\n"+
			"  Actual: identical\n",
		err.Error())
}

func TestDescribeMismatch(t *testing.T) {
	tests := []struct {
		name string
		want string
		got  string
		msg  string
	}{
		{"identical", "abc", "abc", "identical"},
		{"differs", "abc", "abd", `3 byte(s), first difference at offset 2: want "c", got "d"`},
		{"short", "abc", "ab", `2 byte(s), first difference at offset 2: want "c", got <end>`},
		{"long", "ab", "abc", `3 byte(s), first difference at offset 2: want <end>, got "c"`},
		{"empty", "", "x", `1 byte(s), first difference at offset 0: want <end>, got "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, describeMismatch([]byte(tt.want), []byte(tt.got)))
		})
	}
}

func TestWindow_Truncates(t *testing.T) {
	b := []byte("0123456789abcdefXYZ")
	assert.Equal(t, `"0123456789abcdef"...`, window(b, 0))
	assert.Equal(t, `"XYZ"`, window(b, 16))
}

func TestAssertAgreement(t *testing.T) {
	require.NoError(t, assertAgreement(nil))
	require.NoError(t, assertAgreement([]Outcome{{Strategy: StrategyContiguous, Output: []byte("a")}}))

	err := assertAgreement([]Outcome{
		{Strategy: StrategyContiguous, Output: []byte("ba\n")},
		{Strategy: StrategyVectored, Output: []byte("ba\n")},
		{Strategy: StrategySequential, Output: []byte("b\na")},
	})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, StrategySequential, ae.Strategy)
	assert.Contains(t, ae.Actual, "offset 1")
}

func TestAssertInputUnchanged(t *testing.T) {
	require.NoError(t, assertInputUnchanged([]byte("abc"), []byte("abc")))

	err := assertInputUnchanged([]byte("abc"), []byte("abX"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), AssertInputUnchanged)
}
