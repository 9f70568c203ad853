package labels

import (
	"errors"
	"fmt"
)

// Spec describes the sheet and the label grid.
type Spec struct {
	SheetWidth   float64
	SheetHeight  float64
	Columns      int
	Rows         int
	LabelWidth   float64
	LabelHeight  float64
	CornerRadius float64
}

// DefaultSpec is an A4 portrait sheet with 2 columns and 8 rows of
// 90mm x 25mm labels with 2mm rounded corners.
func DefaultSpec() Spec {
	return Spec{
		SheetWidth:   210,
		SheetHeight:  297,
		Columns:      2,
		Rows:         8,
		LabelWidth:   90,
		LabelHeight:  25,
		CornerRadius: 2,
	}
}

// Validate checks that the labels fit on the sheet.
func (s Spec) Validate() error {
	var errs []error
	if s.SheetWidth <= 0 || s.SheetHeight <= 0 {
		errs = append(errs, fmt.Errorf("sheet size %gx%g must be positive", s.SheetWidth, s.SheetHeight))
	}
	if s.Columns < 1 || s.Rows < 1 {
		errs = append(errs, fmt.Errorf("grid %dx%d must have at least one column and row", s.Columns, s.Rows))
	}
	if s.LabelWidth <= 0 || s.LabelHeight <= 0 {
		errs = append(errs, fmt.Errorf("label size %gx%g must be positive", s.LabelWidth, s.LabelHeight))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if w := float64(s.Columns) * s.LabelWidth; w > s.SheetWidth {
		errs = append(errs, fmt.Errorf("%d columns of %gmm need %gmm, sheet is %gmm wide", s.Columns, s.LabelWidth, w, s.SheetWidth))
	}
	if h := float64(s.Rows) * s.LabelHeight; h > s.SheetHeight {
		errs = append(errs, fmt.Errorf("%d rows of %gmm need %gmm, sheet is %gmm high", s.Rows, s.LabelHeight, h, s.SheetHeight))
	}
	if s.CornerRadius < 0 || 2*s.CornerRadius > min(s.LabelWidth, s.LabelHeight) {
		errs = append(errs, fmt.Errorf("corner radius %gmm does not fit a %gx%g label", s.CornerRadius, s.LabelWidth, s.LabelHeight))
	}
	return errors.Join(errs...)
}

// PerPage returns the number of labels on one sheet.
func (s Spec) PerPage() int {
	return s.Columns * s.Rows
}

// Gaps returns the horizontal and vertical spacing used for the outer
// margins and between labels.
func (s Spec) Gaps() (x, y float64) {
	x = (s.SheetWidth - float64(s.Columns)*s.LabelWidth) / float64(s.Columns+1)
	y = (s.SheetHeight - float64(s.Rows)*s.LabelHeight) / float64(s.Rows+1)
	return x, y
}

// Position returns the page (0-based) and the top-left corner of label i.
func (s Spec) Position(i int) (page int, x, y float64) {
	per := s.PerPage()
	page = i / per
	slot := i % per
	row, col := slot/s.Columns, slot%s.Columns
	gx, gy := s.Gaps()
	x = gx + float64(col)*(s.LabelWidth+gx)
	y = gy + float64(row)*(s.LabelHeight+gy)
	return page, x, y
}

// Pages returns the number of sheets needed for n labels.
func (s Spec) Pages(n int) int {
	if n <= 0 {
		return 0
	}
	per := s.PerPage()
	return (n + per - 1) / per
}
