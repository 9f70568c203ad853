package cli

import (
	"errors"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/labels"
	"github.com/RichardEWillis/pi-label-inventory/internal/session"
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E002" // Inventory file, serial or record not found
	ErrCodeMalformed     = "E003" // Inventory line could not be parsed
	ErrCodeOutOfRange    = "E004" // Index or serial range outside the inventory
	ErrCodeInvalidSerial = "E005" // Serial number is not an integer
	ErrCodeDuplicate     = "E006" // Serial number already in use
	ErrCodeNoFile        = "E007" // No inventory file given or loaded
	ErrCodeConfig        = "E008" // Config could not be loaded or written
	ErrCodeNoLabels      = "E009" // Nothing selected to print
)

// errConfig marks config failures so they classify as command errors.
type errConfig struct{ err error }

func (e errConfig) Error() string { return e.err.Error() }
func (e errConfig) Unwrap() error { return e.err }

// classify maps an error to its output code and exit code. Malformed input
// is checked before invalid serials because one wraps the other.
func classify(err error) (string, int) {
	var cfgErr errConfig
	switch {
	case errors.As(err, &cfgErr):
		return ErrCodeConfig, ExitCommandError
	case errors.Is(err, session.ErrNoFile):
		return ErrCodeNoFile, ExitCommandError
	case inventory.IsNotFound(err):
		return ErrCodeNotFound, ExitCommandError
	case inventory.IsMalformed(err):
		return ErrCodeMalformed, ExitFailure
	case inventory.IsInvalidSerial(err):
		return ErrCodeInvalidSerial, ExitFailure
	case inventory.IsOutOfRange(err):
		return ErrCodeOutOfRange, ExitFailure
	case inventory.IsDuplicateSerial(err):
		return ErrCodeDuplicate, ExitFailure
	case errors.Is(err, labels.ErrNoLabels):
		return ErrCodeNoLabels, ExitFailure
	}
	return ErrCodeGeneric, ExitFailure
}

// errorDetails exposes the file position of inventory errors.
func errorDetails(err error) any {
	var se *inventory.Error
	if !errors.As(err, &se) || se.Path == "" {
		return nil
	}
	details := map[string]any{"path": se.Path}
	if se.Line > 0 {
		details["line"] = se.Line
	}
	return details
}
