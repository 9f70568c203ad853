package store

import (
	"context"
	"fmt"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// WriteRecords replaces every row with records, in one transaction.
// Row positions are the slice indexes. Returns the number of rows written.
func (s *Store) WriteRecords(ctx context.Context, records []inventory.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write records: begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM parcels"); err != nil {
		return 0, fmt.Errorf("write records: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO parcels (position, serial, description, weight)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("write records: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.Serial, r.Description, r.Weight); err != nil {
			return 0, fmt.Errorf("write records: row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write records: commit: %w", err)
	}
	return len(records), nil
}
