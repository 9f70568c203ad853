package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// AssertionContext provides access to the state left by the flow.
type AssertionContext struct {
	Store *inventory.Store
	Dir   string
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  %s\n", FormatEvent(event))
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertFinalRecords:
			err = assertFinalRecords(result.Trace, a, actx)
		case AssertFileContent:
			err = assertFileContent(result.Trace, a, actx)
		case AssertOpCount:
			err = assertOpCount(result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// assertFinalRecords checks the store holds exactly the expected records.
func assertFinalRecords(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	want := make([]inventory.Record, len(a.Records))
	for i, r := range a.Records {
		want[i] = r.record()
	}
	got := actx.Store.Records()
	if slices.Equal(got, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalRecords,
		Expected: fmt.Sprintf("%d record(s) %v", len(want), want),
		Actual:   fmt.Sprintf("%d record(s) %v", len(got), got),
		Trace:    trace,
	}
}

// assertFileContent compares a file byte for byte.
func assertFileContent(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	data, err := os.ReadFile(filepath.Join(actx.Dir, a.File))
	if err != nil {
		return &AssertionError{
			Type:     AssertFileContent,
			Expected: fmt.Sprintf("file %s", a.File),
			Actual:   err.Error(),
			Trace:    trace,
		}
	}
	if string(data) == a.Content {
		return nil
	}
	return &AssertionError{
		Type:     AssertFileContent,
		Expected: fmt.Sprintf("%s = %q", a.File, a.Content),
		Actual:   fmt.Sprintf("%q", data),
		Trace:    trace,
	}
}

// assertOpCount checks the operation appears exactly the specified number of times.
func assertOpCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if ev.Op == a.Op {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertOpCount,
		Expected: fmt.Sprintf("%s x%d", a.Op, a.Count),
		Actual:   fmt.Sprintf("%s x%d", a.Op, count),
		Trace:    trace,
	}
}
