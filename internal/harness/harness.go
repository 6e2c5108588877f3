package harness

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/roach88/tac/internal/tac"
	"github.com/roach88/tac/internal/testutil"
)

// sinkChunk caps the bytes the scripted sinks accept per call.
const sinkChunk = 4096

// Run executes a scenario under each of its strategies.
//
// Workflow:
// 1. Build the input buffer and separator
// 2. Reverse the input once per strategy into a fresh sink
// 3. Evaluate assertions against the collected outcomes
// 4. Return result with pass/fail, outcomes, and errors
//
// An error is returned only when a scenario cannot run at all (bad
// separator, sink failure); behavioral mismatches are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	sep, err := scenario.Sep()
	if err != nil {
		return nil, fmt.Errorf("invalid separator: %w", err)
	}

	data := scenario.InputBytes()
	original := bytes.Clone(data)

	result := NewResult()
	for _, strategy := range scenario.StrategyList() {
		outcome, err := runStrategy(strategy, data, sep, scenario.Mode())
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", strategy, err)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	for _, errMsg := range EvaluateAssertions(scenario, result, original, data) {
		result.AddError(errMsg)
	}

	return result, nil
}

// runStrategy reverses data with the writer pinned to one strategy.
func runStrategy(strategy string, data []byte, sep tac.Separator, mode tac.Mode) (Outcome, error) {
	var (
		reverser tac.Reverser
		sink     io.Writer
		output   func() []byte
	)

	switch strategy {
	case StrategyContiguous:
		buf := &bytes.Buffer{}
		reverser.Writer = tac.Writer{ContiguousThreshold: math.MaxInt}
		sink, output = buf, buf.Bytes
	case StrategyVectored:
		rec := &testutil.VectorRecorder{Max: sinkChunk}
		reverser.Writer = tac.Writer{ContiguousThreshold: -1}
		sink, output = rec, rec.Bytes
	case StrategySequential:
		sw := &testutil.ShortWriter{Max: sinkChunk}
		reverser.Writer = tac.Writer{ContiguousThreshold: -1, ForceSequential: true}
		sink, output = sw, sw.Bytes
	default:
		return Outcome{}, fmt.Errorf("unknown strategy %q", strategy)
	}

	stats, err := reverser.Reverse(data, sep, mode, sink)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Strategy: strategy, Stats: stats, Output: output()}, nil
}
