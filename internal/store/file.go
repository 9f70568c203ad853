package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// Ext is the suffix appended to database paths that have none of the
// recognised extensions.
const Ext = ".db"

// Extensions lists the suffixes treated as SQLite inventories.
var Extensions = []string{".db", ".sqlite", ".sqlite3"}

// IsDatabasePath reports whether path names a SQLite inventory.
func IsDatabasePath(path string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// File is a SQLite inventory on disk. The database is opened and closed
// inside each call.
type File struct {
	Path string
}

var (
	_ inventory.Source = File{}
	_ inventory.Sink   = File{}
)

// Name returns the path with ".db" appended if it has no database suffix.
func (f File) Name() string {
	if IsDatabasePath(f.Path) {
		return f.Path
	}
	return f.Path + Ext
}

// ReadRecords loads every record. A missing file is a NOT_FOUND error, so
// reading never creates an empty database as a side effect.
func (f File) ReadRecords(ctx context.Context) ([]inventory.Record, error) {
	name := f.Name()
	if _, err := os.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, inventory.NewNotFoundError(name, err)
		}
		return nil, fmt.Errorf("stat database: %w", err)
	}

	s, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ReadRecords(ctx)
}

// WriteRecords replaces the contents of the database, creating it if needed.
func (f File) WriteRecords(ctx context.Context, records []inventory.Record) (n int, err error) {
	s, err := Open(f.Name())
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			n, err = 0, fmt.Errorf("close database: %w", closeErr)
		}
	}()
	return s.WriteRecords(ctx, records)
}
