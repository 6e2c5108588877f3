package harness

import "github.com/roach88/tac/internal/tac"

// Outcome is one strategy's run of a scenario.
type Outcome struct {
	// Strategy is the strategy the harness requested.
	Strategy string `json:"strategy"`

	// Stats is what the writer reported. Stats.Strategy can differ from
	// Strategy: a vectored run with fewer than five records falls back to
	// sequential writes.
	Stats tac.Stats `json:"stats"`

	// Output is everything the sink received.
	Output []byte `json:"-"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Outcomes holds one entry per strategy, in run order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Output returns the first strategy's output, or nil if nothing ran.
func (r *Result) Output() []byte {
	if len(r.Outcomes) == 0 {
		return nil
	}
	return r.Outcomes[0].Output
}
