package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tac/internal/tac"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: colons
description: "Colon separated fields"
input: "x::y::z"
separator: "::"
before: true
expect: "::z::yx"
records: 3
strategies: [contiguous, sequential]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "colons", scenario.Name)
	assert.Equal(t, "Colon separated fields", scenario.Description)
	assert.Equal(t, []byte("x::y::z"), scenario.InputBytes())
	assert.Equal(t, tac.Before, scenario.Mode())
	require.NotNil(t, scenario.Expect)
	assert.Equal(t, "::z::yx", *scenario.Expect)
	require.NotNil(t, scenario.Records)
	assert.Equal(t, 3, *scenario.Records)
	assert.Equal(t, []string{StrategyContiguous, StrategySequential}, scenario.StrategyList())

	sep, err := scenario.Sep()
	require.NoError(t, err)
	assert.Equal(t, tac.KindString, sep.Kind())
}

func TestLoadScenario_Defaults(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: defaults
description: "Only the required fields"
input: "a\nb\n"
`))
	require.NoError(t, err)

	assert.Equal(t, tac.After, scenario.Mode())
	assert.Equal(t, AllStrategies, scenario.StrategyList())
	assert.Nil(t, scenario.Expect)
	assert.Nil(t, scenario.Records)

	sep, err := scenario.Sep()
	require.NoError(t, err)
	assert.Equal(t, tac.Newline, sep)
}

func TestLoadScenario_RegexWithoutSeparator(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: regex_default
description: "Regex mode falls back to a newline pattern"
input: "a\nb"
regex: true
`))
	require.NoError(t, err)

	sep, err := scenario.Sep()
	require.NoError(t, err)
	assert.Equal(t, tac.KindPattern, sep.Kind())
}

func TestLoadScenario_EmptyInput(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: empty
description: "Empty input is allowed"
input: ""
`))
	require.NoError(t, err)
	assert.Empty(t, scenario.InputBytes())
}

func TestLoadScenario_InputRepeat(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: repeat
description: "Repeated fragment"
input_repeat:
  text: "ab\n"
  count: 3
`))
	require.NoError(t, err)
	assert.Equal(t, []byte("ab\nab\nab\n"), scenario.InputBytes())
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Misspelled field"
input: "a"
expected: "a"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Contains(t, err.Error(), "expected")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\ninput: a\n",
			wantErr: "name is required",
		},
		{
			name:    "name with slash",
			yaml:    "name: a/b\ndescription: d\ninput: a\n",
			wantErr: "may only contain",
		},
		{
			name:    "missing description",
			yaml:    "name: n\ninput: a\n",
			wantErr: "description is required",
		},
		{
			name:    "no input",
			yaml:    "name: n\ndescription: d\n",
			wantErr: "one of input or input_repeat is required",
		},
		{
			name:    "both inputs",
			yaml:    "name: n\ndescription: d\ninput: a\ninput_repeat: {text: a, count: 2}\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "repeat without text",
			yaml:    "name: n\ndescription: d\ninput_repeat: {count: 2}\n",
			wantErr: "input_repeat: text is required",
		},
		{
			name:    "repeat count zero",
			yaml:    "name: n\ndescription: d\ninput_repeat: {text: a, count: 0}\n",
			wantErr: "count must be positive",
		},
		{
			name:    "empty separator",
			yaml:    "name: n\ndescription: d\ninput: a\nseparator: \"\"\n",
			wantErr: "separator cannot be empty",
		},
		{
			name:    "bad pattern",
			yaml:    "name: n\ndescription: d\ninput: a\nseparator: \"(\"\nregex: true\n",
			wantErr: "separator:",
		},
		{
			name:    "negative records",
			yaml:    "name: n\ndescription: d\ninput: a\nrecords: -1\n",
			wantErr: "records must be non-negative",
		},
		{
			name:    "unknown strategy",
			yaml:    "name: n\ndescription: d\ninput: a\nstrategies: [mmap]\n",
			wantErr: "unknown strategy \"mmap\"",
		},
		{
			name:    "duplicate strategy",
			yaml:    "name: n\ndescription: d\ninput: a\nstrategies: [vectored, vectored]\n",
			wantErr: "duplicate strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarios_Testdata(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	names := make(map[string]bool)
	for _, s := range scenarios {
		assert.False(t, names[s.Name], "duplicate name %s", s.Name)
		names[s.Name] = true
	}
	assert.True(t, names["newline_after"])
	assert.True(t, names["repeated_records"])
}

func TestLoadScenarios_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	content := "name: same\ndescription: d\ninput: a\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(content), 0o644))

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario name \"same\"")
}

func TestLoadScenarios_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: x\n"), 0o644))

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}
