package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario defines a store conformance scenario: fixture files, a flow of
// operations with expected statuses, and assertions on the final state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// UniqueSerials enables serial uniqueness on append and replace.
	UniqueSerials bool `yaml:"unique_serials,omitempty"`

	// Files maps relative file names to content written before the flow.
	Files map[string]string `yaml:"files,omitempty"`

	// Flow contains the operations, in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final store, files and trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// FlowStep is one store operation.
type FlowStep struct {
	// Op is the operation name, e.g. "load" or "replace".
	Op string `yaml:"op"`

	// Args holds the operation arguments.
	Args map[string]any `yaml:"args,omitempty"`

	// Expect is checked against the outcome. If nil, nothing is checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step. Unset fields are
// not checked.
type ExpectClause struct {
	Status *int `yaml:"status,omitempty"`

	// Code is the expected error code, or CodeOK for success.
	Code string `yaml:"code,omitempty"`

	// Record is the expected result of read.
	Record *RecordSpec `yaml:"record,omitempty"`

	// Serials are the expected serials returned by a range.
	Serials []int `yaml:"serials,omitempty"`
}

// CodeOK expects an operation to succeed.
const CodeOK = "OK"

// RecordSpec is a record as written in scenario files.
type RecordSpec struct {
	SN   int    `yaml:"sn"`
	Desc string `yaml:"desc"`
	Wgt  string `yaml:"wgt"`
}

// Assertion validates the state after the flow.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Records is the expected store content (final_records).
	Records []RecordSpec `yaml:"records,omitempty"`

	// File and Content give the expected file content (file_content).
	File    string `yaml:"file,omitempty"`
	Content string `yaml:"content,omitempty"`

	// Op and Count give the expected number of operations (op_count).
	Op    string `yaml:"op,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalRecords = "final_records"
	AssertFileContent  = "file_content"
	AssertOpCount      = "op_count"
)

// Operation names.
const (
	OpLoad        = "load"
	OpSave        = "save"
	OpSize        = "size"
	OpRead        = "read"
	OpAppend      = "append"
	OpReplace     = "replace"
	OpFind        = "find"
	OpNextSerial  = "next_serial"
	OpIndexRange  = "index_range"
	OpSerialRange = "serial_range"
	OpReset       = "reset"
)

// requiredArgs lists the arguments each operation needs.
var requiredArgs = map[string][]string{
	OpLoad:        {"path"},
	OpSave:        {"path"},
	OpSize:        nil,
	OpRead:        {"index"},
	OpAppend:      {"sn", "desc", "wgt"},
	OpReplace:     {"index", "sn", "desc", "wgt"},
	OpFind:        {"sn"},
	OpNextSerial:  nil,
	OpIndexRange:  {"start", "end"},
	OpSerialRange: {"from", "to"},
	OpReset:       nil,
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

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
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

// LoadScenarios loads every *.yaml file in dir, sorted by name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}
	if len(s.Flow) == 0 {
		return errors.New("flow list is required and must be non-empty")
	}

	for name := range s.Files {
		if filepath.IsAbs(name) || !filepath.IsLocal(name) {
			return fmt.Errorf("files: %q must be a relative path inside the scenario directory", name)
		}
	}

	for i, step := range s.Flow {
		args, ok := requiredArgs[step.Op]
		if !ok {
			return fmt.Errorf("flow[%d]: unknown op %q", i, step.Op)
		}
		for _, a := range args {
			if _, ok := step.Args[a]; !ok {
				return fmt.Errorf("flow[%d]: %s requires arg %q", i, step.Op, a)
			}
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertFinalRecords:
		case AssertFileContent:
			if a.File == "" {
				return fmt.Errorf("assertions[%d]: file_content requires file", i)
			}
		case AssertOpCount:
			if _, ok := requiredArgs[a.Op]; !ok {
				return fmt.Errorf("assertions[%d]: unknown op %q", i, a.Op)
			}
		default:
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
	}
	return nil
}
