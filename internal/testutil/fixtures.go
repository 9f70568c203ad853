// Package testutil provides inventory fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// SampleRecords returns three parcels with serials 1 to 3.
func SampleRecords() []inventory.Record {
	return []inventory.Record{
		{Serial: 1, Description: "Kitchen plates", Weight: "12.5"},
		{Serial: 2, Description: "Books", Weight: "30"},
		{Serial: 3, Description: "Winter coats", Weight: "8"},
	}
}

// WriteInventory writes records in the text format to name inside a fresh
// temporary directory and returns the full path.
func WriteInventory(t *testing.T, name string, records []inventory.Record) string {
	t.Helper()
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.Line())
	}
	return WriteFile(t, name, b.String())
}

// WriteFile writes raw content to name inside a fresh temporary directory.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
