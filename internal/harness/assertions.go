package harness

import (
	"bytes"
	"fmt"
	"strings"
)

// mismatchWindow is how many bytes around the first difference are shown.
const mismatchWindow = 16

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Strategy string // Strategy whose outcome failed, if any
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Strategy != "" {
		fmt.Fprintf(&buf, " (%s)", e.Strategy)
	}
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	return buf.String()
}

// Assertion type names.
const (
	AssertExpect         = "expect"
	AssertRecords        = "records"
	AssertAgreement      = "strategies_agree"
	AssertInputUnchanged = "input_unchanged"
)

// EvaluateAssertions runs every applicable assertion and returns the
// failure messages. original is a copy of data taken before the run.
func EvaluateAssertions(scenario *Scenario, result *Result, original, data []byte) []string {
	var errs []string
	add := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	add(assertInputUnchanged(original, data))
	add(assertAgreement(result.Outcomes))
	for _, outcome := range result.Outcomes {
		if scenario.Expect != nil {
			add(assertExpect([]byte(*scenario.Expect), outcome))
		}
		if scenario.Records != nil {
			add(assertRecords(*scenario.Records, outcome))
		}
	}
	return errs
}

// assertInputUnchanged checks the engine did not write through its input.
func assertInputUnchanged(original, data []byte) error {
	if bytes.Equal(original, data) {
		return nil
	}
	return &AssertionError{
		Type:     AssertInputUnchanged,
		Expected: "input buffer untouched",
		Actual:   describeMismatch(original, data),
	}
}

// assertAgreement checks every strategy produced the first one's bytes.
func assertAgreement(outcomes []Outcome) error {
	if len(outcomes) < 2 {
		return nil
	}
	want := outcomes[0]
	for _, got := range outcomes[1:] {
		if !bytes.Equal(want.Output, got.Output) {
			return &AssertionError{
				Type:     AssertAgreement,
				Strategy: got.Strategy,
				Expected: fmt.Sprintf("same output as %s", want.Strategy),
				Actual:   describeMismatch(want.Output, got.Output),
			}
		}
	}
	return nil
}

func assertExpect(expect []byte, outcome Outcome) error {
	if bytes.Equal(expect, outcome.Output) {
		return nil
	}
	return &AssertionError{
		Type:     AssertExpect,
		Strategy: outcome.Strategy,
		Expected: fmt.Sprintf("%d byte(s) %s", len(expect), window(expect, 0)),
		Actual:   describeMismatch(expect, outcome.Output),
	}
}

func assertRecords(want int, outcome Outcome) error {
	if outcome.Stats.Records == want {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecords,
		Strategy: outcome.Strategy,
		Expected: fmt.Sprintf("%d record(s)", want),
		Actual:   fmt.Sprintf("%d record(s)", outcome.Stats.Records),
	}
}

// describeMismatch locates the first differing byte of got against want.
func describeMismatch(want, got []byte) string {
	n := min(len(want), len(got))
	at := n
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			at = i
			break
		}
	}
	if at == n && len(want) == len(got) {
		return "identical"
	}
	return fmt.Sprintf("%d byte(s), first difference at offset %d: want %s, got %s",
		len(got), at, window(want, at), window(got, at))
}

// window quotes up to mismatchWindow bytes of b starting at off.
func window(b []byte, off int) string {
	if off >= len(b) {
		return "<end>"
	}
	end := min(off+mismatchWindow, len(b))
	s := fmt.Sprintf("%q", b[off:end])
	if end < len(b) {
		s += "..."
	}
	return s
}
