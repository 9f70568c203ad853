package inventory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// Store is an ordered, in-memory collection of parcel records.
// It is not safe for concurrent use.
type Store struct {
	records       []Record
	logger        *slog.Logger
	uniqueSerials bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Per-record diagnostics are logged at debug
// level. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithUniqueSerials makes Append and Replace reject a serial number that is
// already held by another record. Load is not affected.
func WithUniqueSerials(on bool) Option {
	return func(s *Store) {
		s.uniqueSerials = on
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset removes all records.
func (s *Store) Reset() {
	s.records = nil
}

// Size returns the number of records.
func (s *Store) Size() int {
	return len(s.records)
}

// Records returns a copy of all records in order.
func (s *Store) Records() []Record {
	return slices.Clone(s.records)
}

// FindIndexBySerial returns the index of the first record with serial sn,
// or NotFound.
func (s *Store) FindIndexBySerial(sn int) int {
	for i, r := range s.records {
		if r.Serial == sn {
			return i
		}
	}
	return NotFound
}

// IndexOfSerial coerces sn to an integer and looks it up. The index is
// NotFound when no record matches; err is only set for non-numeric input.
func (s *Store) IndexOfSerial(sn string) (int, error) {
	serial, err := ParseSerial(sn)
	if err != nil {
		return NotFound, err
	}
	return s.FindIndexBySerial(serial), nil
}

// NextSerial returns one more than the highest serial number, or 1 for an
// empty store.
func (s *Store) NextSerial() int {
	next := 1
	for _, r := range s.records {
		if r.Serial >= next {
			next = r.Serial + 1
		}
	}
	return next
}

// Read returns the record at index.
func (s *Store) Read(index int) (Record, error) {
	if index < 0 || index >= len(s.records) {
		return Record{}, indexError(ErrCodeNotFound, index, len(s.records))
	}
	return s.records[index], nil
}

// Append adds r at the end.
func (s *Store) Append(r Record) error {
	if s.uniqueSerials && s.serialTaken(r.Serial, NotFound) {
		return duplicateError(r.Serial)
	}
	s.records = append(s.records, r)
	s.logger.Debug("record appended", "index", len(s.records)-1, "sn", r.Serial)
	return nil
}

// Replace overwrites the record at index. On failure the store is unchanged.
func (s *Store) Replace(index int, r Record) error {
	if index < 0 || index >= len(s.records) {
		err := indexError(ErrCodeOutOfRange, index, len(s.records))
		s.logger.Debug("replace rejected", "error", err)
		return err
	}
	if s.uniqueSerials && s.serialTaken(r.Serial, index) {
		return duplicateError(r.Serial)
	}
	s.records[index] = r
	s.logger.Debug("record replaced", "index", index, "sn", r.Serial)
	return nil
}

// Load replaces the contents of the store with the records of the text
// file at path (".csv" is appended if missing). It returns the number of
// records loaded. A missing file returns NotFound and a NOT_FOUND error.
func (s *Store) Load(path string) (int, error) {
	return s.LoadFrom(context.Background(), CSVFile{Path: path})
}

// Save writes every record to the text file at path (".csv" is appended if
// missing), overwriting it. It returns the number of lines written.
func (s *Store) Save(path string) (int, error) {
	return s.SaveTo(context.Background(), CSVFile{Path: path})
}

// LoadFrom replaces the contents of the store with the records of src.
// Nothing is committed unless src is read completely; on failure the store
// is left empty.
func (s *Store) LoadFrom(ctx context.Context, src Source) (int, error) {
	s.Reset()
	name := sourceName(src)
	s.logger.Debug("loading", "source", name)

	records, err := src.ReadRecords(ctx)
	if err != nil {
		if IsNotFound(err) {
			s.logger.Debug("inventory not found", "source", name)
			return NotFound, err
		}
		return 0, err
	}
	for i, r := range records {
		s.logger.Debug("decoded", "line", i+1, "sn", r.Serial, "desc", r.Description, "wgt", r.Weight)
	}
	if s.uniqueSerials {
		for _, sn := range duplicateSerials(records) {
			s.logger.Warn("duplicate serial number in inventory", "source", name, "sn", sn)
		}
	}

	s.records = records
	s.logger.Debug("records added", "source", name, "count", len(records))
	return len(records), nil
}

// SaveTo writes every record to dst and returns the number written.
func (s *Store) SaveTo(ctx context.Context, dst Sink) (int, error) {
	n, err := dst.WriteRecords(ctx, s.Records())
	if err != nil {
		return 0, err
	}
	s.logger.Debug("saved", "sink", sourceName(dst), "count", n)
	return n, nil
}

func (s *Store) serialTaken(sn, except int) bool {
	for i, r := range s.records {
		if i != except && r.Serial == sn {
			return true
		}
	}
	return false
}

func duplicateError(sn int) *Error {
	return &Error{Code: ErrCodeDuplicateSerial, Message: fmt.Sprintf("serial number %d already in use", sn)}
}

func duplicateSerials(records []Record) []int {
	seen := make(map[int]bool, len(records))
	var dups []int
	for _, r := range records {
		if seen[r.Serial] {
			dups = append(dups, r.Serial)
			continue
		}
		seen[r.Serial] = true
	}
	return dups
}

func sourceName(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
