package store

import (
	"path/filepath"
	"testing"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// createTestStore opens a fresh database in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []inventory.Record {
	return []inventory.Record{
		{Serial: 1, Description: "books", Weight: "40"},
		{Serial: 2, Description: "kitchen, fragile", Weight: "12.5"},
		{Serial: 7, Description: " lamp", Weight: "heavy"},
		{Serial: 2, Description: "duplicate serial", Weight: "3"},
	}
}
