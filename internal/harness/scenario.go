package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tac/internal/tac"
)

// Scenario defines a conformance test scenario.
// A scenario names one input, one separator configuration and the output
// every write strategy must produce for it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the literal input buffer. Nil when InputRepeat is used.
	Input *string `yaml:"input,omitempty"`

	// InputRepeat builds a large input from a repeated fragment.
	InputRepeat *InputRepeat `yaml:"input_repeat,omitempty"`

	// Separator is the separator text or pattern. Nil means newline.
	Separator *string `yaml:"separator,omitempty"`

	// Regex interprets Separator as a regular expression.
	Regex bool `yaml:"regex,omitempty"`

	// Before attaches the separator to the record after it.
	Before bool `yaml:"before,omitempty"`

	// Expect is the exact expected output. If nil, only strategy agreement
	// (and Records, when set) is validated.
	Expect *string `yaml:"expect,omitempty"`

	// Records is the expected number of non-empty records written.
	Records *int `yaml:"records,omitempty"`

	// Strategies restricts the strategies to run. Empty means all.
	Strategies []string `yaml:"strategies,omitempty"`
}

// InputRepeat is Text concatenated Count times.
type InputRepeat struct {
	Text  string `yaml:"text"`
	Count int    `yaml:"count"`
}

// Strategy names accepted in scenario files.
const (
	StrategyContiguous = "contiguous"
	StrategyVectored   = "vectored"
	StrategySequential = "sequential"
)

// AllStrategies is the default strategy list, in run order.
var AllStrategies = []string{StrategyContiguous, StrategyVectored, StrategySequential}

// validName keeps scenario names usable as golden file names.
var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// InputBytes returns the scenario's input buffer.
func (s *Scenario) InputBytes() []byte {
	if s.InputRepeat != nil {
		return bytes.Repeat([]byte(s.InputRepeat.Text), s.InputRepeat.Count)
	}
	if s.Input == nil {
		return nil
	}
	return []byte(*s.Input)
}

// Sep builds the scenario's separator the way the tac command does:
// newline by default, also when Regex is set without a separator.
func (s *Scenario) Sep() (tac.Separator, error) {
	if s.Separator == nil {
		if s.Regex {
			return tac.Pattern(`\n`)
		}
		return tac.Newline, nil
	}
	return tac.Parse(*s.Separator, s.Regex)
}

// Mode returns the attachment mode.
func (s *Scenario) Mode() tac.Mode {
	if s.Before {
		return tac.Before
	}
	return tac.After
}

// StrategyList returns the strategies to run.
func (s *Scenario) StrategyList() []string {
	if len(s.Strategies) == 0 {
		return AllStrategies
	}
	return s.Strategies
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expected:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
// Scenario names must be unique across the directory.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string)
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, ok := seen[scenario.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)",
				filepath.Base(path), scenario.Name, prev)
		}
		seen[scenario.Name] = filepath.Base(path)
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validName.MatchString(s.Name) {
		return fmt.Errorf("name %q may only contain letters, digits, '_' and '-'", s.Name)
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Input == nil && s.InputRepeat == nil:
		return fmt.Errorf("one of input or input_repeat is required")
	case s.Input != nil && s.InputRepeat != nil:
		return fmt.Errorf("input and input_repeat are mutually exclusive")
	case s.InputRepeat != nil:
		if s.InputRepeat.Text == "" {
			return fmt.Errorf("input_repeat: text is required")
		}
		if s.InputRepeat.Count <= 0 {
			return fmt.Errorf("input_repeat: count must be positive")
		}
	}

	if _, err := s.Sep(); err != nil {
		return fmt.Errorf("separator: %w", err)
	}

	if s.Records != nil && *s.Records < 0 {
		return fmt.Errorf("records must be non-negative")
	}

	seen := make(map[string]bool)
	for i, name := range s.Strategies {
		switch name {
		case StrategyContiguous, StrategyVectored, StrategySequential:
		default:
			return fmt.Errorf("strategies[%d]: unknown strategy %q (want one of %s)",
				i, name, strings.Join(AllStrategies, ", "))
		}
		if seen[name] {
			return fmt.Errorf("strategies[%d]: duplicate strategy %q", i, name)
		}
		seen[name] = true
	}

	return nil
}
