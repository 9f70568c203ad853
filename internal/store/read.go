package store

import (
	"context"
	"fmt"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// ReadRecords returns every row in position order.
func (s *Store) ReadRecords(ctx context.Context) ([]inventory.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT serial, description, weight
		FROM parcels
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer rows.Close()

	var records []inventory.Record
	for rows.Next() {
		var r inventory.Record
		if err := rows.Scan(&r.Serial, &r.Description, &r.Weight); err != nil {
			return nil, fmt.Errorf("read records: scan: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return records, nil
}
