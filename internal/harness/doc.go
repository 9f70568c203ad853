// Package harness runs YAML scenarios against the inventory store and checks
// the status each operation reports.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	unique_serials: false
//	files:
//	  inv.csv: |
//	    1, Plates, 10
//	    2, Books, 30
//	flow:
//	  - op: load
//	    args: { path: inv.csv }
//	    expect: { status: 2 }
//	  - op: read
//	    args: { index: 5 }
//	    expect: { status: -1, code: NOT_FOUND }
//	assertions:
//	  - type: final_records
//	    records:
//	      - { sn: 1, desc: Plates, wgt: "10" }
//	      - { sn: 2, desc: Books, wgt: "30" }
//	  - type: file_content
//	    file: inv.csv
//	    content: "1, Plates, 10\n2, Books, 30\n"
//
// Files are written to a fresh temporary directory and every path argument
// is resolved inside it.
//
// # Operations
//
// Each operation reports an integer status the way the menu contract does:
//
//   - load, save: number of records, NotFound (-1) for a missing file and
//     0 for a rejected one
//   - size, next_serial: the value itself
//   - find: index, or NotFound
//   - read, append, replace, reset, index_range, serial_range: 0 or -1
//
// A failing operation also reports its error code (NOT_FOUND,
// MALFORMED_INPUT, ...). An expect code of OK requires no error.
//
// # Assertion Types
//
//   - final_records: the store holds exactly these records, in order
//   - file_content: a file in the scenario directory has this exact content
//   - op_count: an operation appears exactly N times in the trace
//
// # Golden Traces
//
// RunWithGolden renders the trace one line per operation and compares it
// with testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
