package harness

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// FormatEvent renders one trace event as a single line:
//
//	002 read index=5 -> -1 NOT_FOUND
//	003 index_range end=1 start=0 -> 0 [1 2]
//
// Arguments are sorted by name and strings are quoted, so the output is
// stable across runs.
func FormatEvent(ev TraceEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%03d %s", ev.Seq, ev.Op)

	keys := make([]string, 0, len(ev.Args))
	for k := range ev.Args {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		switch v := ev.Args[k].(type) {
		case string:
			fmt.Fprintf(&b, " %s=%q", k, v)
		default:
			fmt.Fprintf(&b, " %s=%v", k, v)
		}
	}

	fmt.Fprintf(&b, " -> %d", ev.Status)
	if ev.Code != "" {
		b.WriteString(" " + ev.Code)
	}
	switch r := ev.Result.(type) {
	case inventory.Record:
		b.WriteString(" " + r.String())
	case []int:
		fmt.Fprintf(&b, " %v", r)
	}
	return b.String()
}

// FormatTrace renders the whole trace, one event per line.
func FormatTrace(trace []TraceEvent) string {
	var b strings.Builder
	for _, ev := range trace {
		b.WriteString(FormatEvent(ev))
		b.WriteByte('\n')
	}
	return b.String()
}

// RunWithGolden executes a scenario, fails the test on any scenario error,
// and compares the trace against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares the given result's trace against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(FormatTrace(result.Trace)))
}
