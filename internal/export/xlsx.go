// Package export writes inventories to spreadsheet formats.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/RichardEWillis/pi-label-inventory/internal/atomicfile"
	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// SheetName is the worksheet holding the records.
const SheetName = "Inventory"

// Header is the first row of the worksheet.
var Header = []any{"Serial", "Description", "Weight"}

// WriteXLSX writes records as an XLSX workbook to w. Weights that parse as
// numbers are stored as numbers, anything else as text.
func WriteXLSX(w io.Writer, records []inventory.Record) error {
	f, err := build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path, replacing any existing file.
func SaveXLSX(path string, records []inventory.Record) error {
	af, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer af.Cancel()

	if err := WriteXLSX(af, records); err != nil {
		return err
	}
	return af.Close()
}

func build(records []inventory.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	fail := func(err error) (*excelize.File, error) {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fail(err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fail(err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fail(err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", bold); err != nil {
		return fail(err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return fail(err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fail(err)
		}
		var weight any = r.Weight
		if v, err := r.WeightValue(); err == nil {
			weight = v
		}
		row := []any{r.Serial, r.Description, weight}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fail(err)
		}
	}
	return f, nil
}
