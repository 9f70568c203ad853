// Package session holds the inventory being edited together with the file
// it came from. The CLI and the menu both drive it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/RichardEWillis/pi-label-inventory/internal/config"
	"github.com/RichardEWillis/pi-label-inventory/internal/export"
	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/store"
)

// ErrNoFile is returned when an operation needs a file name and neither
// the caller nor the session has one.
var ErrNoFile = errors.New("no loaded file, a file name is required")

// File is an inventory backend on disk.
type File interface {
	inventory.Source
	inventory.Sink
	Name() string
}

// Backend picks the backend for name by its extension: SQLite for
// .db/.sqlite/.sqlite3, the text format otherwise.
func Backend(name string) File {
	if store.IsDatabasePath(name) {
		return store.File{Path: name}
	}
	return inventory.CSVFile{Path: name}
}

// Session is not safe for concurrent use.
type Session struct {
	Inventory *inventory.Store

	// Filename is the resolved name of the loaded or last saved file, or
	// empty when nothing has been loaded.
	Filename string

	cfg    *config.Config
	logger *slog.Logger
}

// New creates a session with an empty inventory. A nil cfg uses defaults.
func New(cfg *config.Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		Inventory: inventory.New(
			inventory.WithLogger(logger),
			inventory.WithUniqueSerials(cfg.UniqueSerials),
		),
		cfg:    cfg,
		logger: logger,
	}
}

// Open loads name, replacing the inventory. On failure the inventory is
// empty and no file is loaded.
func (s *Session) Open(name string) (int, error) {
	if name == "" {
		return 0, ErrNoFile
	}
	f := Backend(name)
	n, err := s.Inventory.LoadFrom(context.Background(), f)
	if err != nil {
		s.Filename = ""
		return n, err
	}
	s.Filename = f.Name()
	s.logger.Info("inventory loaded", "file", s.Filename, "records", n)
	return n, nil
}

// Create starts an empty inventory that will be saved to name.
func (s *Session) Create(name string) {
	s.Inventory.Reset()
	s.Filename = Backend(name).Name()
	s.logger.Info("new inventory", "file", s.Filename)
}

// Save writes the inventory to name, or to the loaded file when name is
// empty. The saved file becomes the loaded file.
func (s *Session) Save(name string) (int, error) {
	if name == "" {
		name = s.Filename
	}
	if name == "" {
		return 0, ErrNoFile
	}
	f := Backend(name)
	n, err := s.Inventory.SaveTo(context.Background(), f)
	if err != nil {
		return 0, err
	}
	s.Filename = f.Name()
	s.logger.Info("inventory saved", "file", s.Filename, "records", n)
	return n, nil
}

// Convert writes the inventory to dst, typically in the other backend's
// format. The loaded file is unchanged.
func (s *Session) Convert(dst string) (string, int, error) {
	if dst == "" {
		return "", 0, ErrNoFile
	}
	f := Backend(dst)
	n, err := s.Inventory.SaveTo(context.Background(), f)
	if err != nil {
		return "", 0, err
	}
	s.logger.Info("inventory converted", "from", s.Filename, "to", f.Name(), "records", n)
	return f.Name(), n, nil
}

// Export writes the inventory as a spreadsheet to out, or next to the
// loaded file with an .xlsx extension when out is empty.
func (s *Session) Export(out string) (string, error) {
	if out == "" {
		if s.Filename == "" {
			return "", ErrNoFile
		}
		out = ReplaceExt(s.Filename, ".xlsx")
	}
	if err := export.SaveXLSX(out, s.Inventory.Records()); err != nil {
		return "", err
	}
	s.logger.Info("inventory exported", "file", out, "records", s.Inventory.Size())
	return out, nil
}

// Rows renders one line per record for listing.
func (s *Session) Rows() []string {
	records := s.Inventory.Records()
	rows := make([]string, len(records))
	for i, r := range records {
		rows[i] = Row(i, r)
	}
	return rows
}

// Row renders the record at index i for listing.
func Row(i int, r inventory.Record) string {
	return fmt.Sprintf("[%03d] sn = %03d weight = %s desc: %s", i, r.Serial, r.Weight, r.Description)
}

// TotalWeight sums the weights that parse as numbers. skipped counts the
// records whose weight does not.
func (s *Session) TotalWeight() (total float64, skipped int) {
	for _, r := range s.Inventory.Records() {
		w, err := r.WeightValue()
		if err != nil {
			skipped++
			continue
		}
		total += w
	}
	return total, skipped
}

// Add appends a parcel with the next free serial number.
func (s *Session) Add(weight, desc string) (inventory.Record, error) {
	return s.AddSerial(s.Inventory.NextSerial(), weight, desc)
}

// AddSerial appends a parcel with an explicit serial number.
func (s *Session) AddSerial(sn int, weight, desc string) (inventory.Record, error) {
	r := inventory.Record{Serial: sn, Description: desc, Weight: weight}
	if err := s.Inventory.Append(r); err != nil {
		return inventory.Record{}, err
	}
	return r, nil
}

// Find returns the index and record holding serial sn.
func (s *Session) Find(sn int) (int, inventory.Record, error) {
	i := s.Inventory.FindIndexBySerial(sn)
	if i == inventory.NotFound {
		return inventory.NotFound, inventory.Record{}, &inventory.Error{
			Code:    inventory.ErrCodeNotFound,
			Message: fmt.Sprintf("serial number %d not found", sn),
		}
	}
	r, err := s.Inventory.Read(i)
	return i, r, err
}

// Edit updates the parcel with serial sn. An empty weight or description
// keeps the current value.
func (s *Session) Edit(sn int, weight, desc string) (inventory.Record, error) {
	i, r, err := s.Find(sn)
	if err != nil {
		return inventory.Record{}, err
	}
	if weight != "" {
		r.Weight = weight
	}
	if desc != "" {
		r.Description = desc
	}
	if err := s.Inventory.Replace(i, r); err != nil {
		return inventory.Record{}, err
	}
	return r, nil
}

// ReplaceExt swaps the extension of name for ext.
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
