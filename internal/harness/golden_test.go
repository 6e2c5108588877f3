package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Regenerate with: go test ./internal/harness -run TestGolden -update
func TestGolden(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestAssertGolden_Result(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "newline_after",
		Description: "reuse an existing golden file",
		Input:       strPtr("a\nb\nc\n"),
	})
	require.NoError(t, err)
	require.True(t, result.Pass)

	AssertGolden(t, "newline_after", result)
}
