// Package harness provides conformance testing for the tac engine.
//
// The harness loads reversal scenarios, runs each one under every write
// strategy, and checks that the strategies agree byte for byte and match
// the expected output.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	input: "a\nb\nc\n"          # or input_repeat
//	input_repeat:
//	  text: "x;y\n"
//	  count: 2000
//	separator: "::"             # default newline
//	regex: false                # separator is a regular expression
//	before: false               # separator starts the record after it
//	expect: "c\nb\na\n"         # optional
//	records: 3                  # optional, non-empty records written
//	strategies: [contiguous, vectored, sequential]  # default all
//
// # Strategies
//
// Each strategy pins the writer to one way of emitting records:
//
//   - contiguous: records copied into one buffer, one write
//   - vectored: scatter-gather batches into a testutil.VectorRecorder
//   - sequential: one write per record into a testutil.ShortWriter
//
// The vectored and sequential sinks accept a bounded number of bytes per
// call, so partial-write recovery runs on every scenario.
//
// # Usage
//
// Load a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/newline_after.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Execute with the harness:
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, err := range result.Errors {
//	        log.Println(err)
//	    }
//	}
//
// In tests, RunWithGolden also compares the output against
// testdata/golden/{name}.golden.
package harness
