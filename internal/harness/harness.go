package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// Harness executes one scenario against a fresh store in a private
// directory.
type Harness struct {
	store  *inventory.Store
	dir    string
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Create a temporary directory and write the scenario files
// 2. Execute flow steps with expect validation
// 3. Evaluate assertions
// 4. Remove the directory
//
// The returned error is for harness failures; scenario failures are
// reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "linv-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for name, content := range scenario.Files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	h := &Harness{
		store: inventory.New(
			inventory.WithLogger(logger),
			inventory.WithUniqueSerials(scenario.UniqueSerials),
		),
		dir:    dir,
		logger: logger,
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		ev, err := h.execute(step)
		if err != nil {
			return nil, fmt.Errorf("flow step %d (%s): %w", i, step.Op, err)
		}
		ev = result.AddTrace(ev)
		for _, msg := range checkExpect(ev, step.Expect) {
			result.AddError(fmt.Sprintf("step %d (%s): %s", ev.Seq, step.Op, msg))
		}
	}

	actx := &AssertionContext{Store: h.store, Dir: dir}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

// execute performs one operation. Store failures become the event's code;
// only unusable arguments are returned as errors.
func (h *Harness) execute(step FlowStep) (TraceEvent, error) {
	ev := TraceEvent{Op: step.Op, Args: step.Args}
	a := args(step.Args)

	var err error
	switch step.Op {
	case OpLoad:
		ev.Status, err = h.store.Load(h.path(a.str("path")))
	case OpSave:
		ev.Status, err = h.store.Save(h.path(a.str("path")))
	case OpSize:
		ev.Status = h.store.Size()
	case OpNextSerial:
		ev.Status = h.store.NextSerial()
	case OpReset:
		h.store.Reset()
	case OpRead:
		var i int
		if i, err = a.integer("index"); err != nil {
			return ev, err
		}
		var r inventory.Record
		if r, err = h.store.Read(i); err == nil {
			ev.Result = r
		}
		ev.Status = inventory.Status(err)
	case OpAppend:
		var r inventory.Record
		if r, err = inventory.NewRecord(a.str("sn"), a.str("desc"), a.str("wgt")); err == nil {
			err = h.store.Append(r)
		}
		ev.Status = inventory.Status(err)
	case OpReplace:
		var i int
		if i, err = a.integer("index"); err != nil {
			return ev, err
		}
		var r inventory.Record
		if r, err = inventory.NewRecord(a.str("sn"), a.str("desc"), a.str("wgt")); err == nil {
			err = h.store.Replace(i, r)
		}
		ev.Status = inventory.Status(err)
	case OpFind:
		// find takes the raw value so non-numeric serials exercise coercion
		ev.Status, err = h.store.IndexOfSerial(a.str("sn"))
	case OpIndexRange, OpSerialRange:
		lo, hi := "start", "end"
		if step.Op == OpSerialRange {
			lo, hi = "from", "to"
		}
		from, ferr := a.integer(lo)
		to, terr := a.integer(hi)
		if ferr != nil || terr != nil {
			return ev, errors.Join(ferr, terr)
		}
		var records []inventory.Record
		if step.Op == OpIndexRange {
			records, err = h.store.IndexRange(from, to)
		} else {
			records, err = h.store.SerialRange(from, to)
		}
		if err == nil {
			ev.Result = serials(records)
		}
		ev.Status = inventory.Status(err)
	default:
		return ev, fmt.Errorf("unknown op %q", step.Op)
	}

	if err != nil {
		ev.Code = errorCode(err)
		h.logger.Debug("operation failed", "op", step.Op, "error", err)
	}
	return ev, nil
}

// path resolves a scenario path inside the scenario directory.
func (h *Harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

// checkExpect compares an event against its expect clause.
func checkExpect(ev TraceEvent, want *ExpectClause) []string {
	if want == nil {
		return nil
	}
	var errs []string
	if want.Status != nil && *want.Status != ev.Status {
		errs = append(errs, fmt.Sprintf("expected status %d, got %d", *want.Status, ev.Status))
	}
	switch {
	case want.Code == "":
	case want.Code == CodeOK && ev.Code != "":
		errs = append(errs, fmt.Sprintf("expected success, got %s", ev.Code))
	case want.Code != CodeOK && want.Code != ev.Code:
		errs = append(errs, fmt.Sprintf("expected code %s, got %q", want.Code, ev.Code))
	}
	if want.Record != nil {
		got, _ := ev.Result.(inventory.Record)
		if w := want.Record.record(); got != w {
			errs = append(errs, fmt.Sprintf("expected record %s, got %s", w, got))
		}
	}
	if want.Serials != nil {
		got, _ := ev.Result.([]int)
		if !slices.Equal(got, want.Serials) {
			errs = append(errs, fmt.Sprintf("expected serials %v, got %v", want.Serials, got))
		}
	}
	return errs
}

func (r RecordSpec) record() inventory.Record {
	return inventory.Record{Serial: r.SN, Description: r.Desc, Weight: r.Wgt}
}

func serials(records []inventory.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Serial
	}
	return out
}

// errorCode returns the outermost store error code in err's chain.
func errorCode(err error) string {
	var se *inventory.Error
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return "ERROR"
}

// args reads typed values from YAML-decoded arguments.
type args map[string]any

func (a args) str(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (a args) integer(key string) (int, error) {
	switch v := a[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	}
	return 0, fmt.Errorf("arg %q must be an integer, got %v", key, a[key])
}
