// Package store provides a SQLite backend for parcel inventories.
//
// The database holds a single table:
//
//	parcels(position INTEGER PRIMARY KEY, serial, description, weight)
//
// position is the record's index in the inventory, so reading rows
// ORDER BY position reproduces the store order exactly. Weight is kept as
// TEXT, matching the text file format. Writes replace the whole table in
// one transaction; there is no incremental update.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - schema version tracked in PRAGMA user_version
//
// File implements inventory.Source and inventory.Sink by opening the
// database for the duration of a single call.
package store
