package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/labels"
)

// By selects how a label range is addressed.
type By string

const (
	ByIndex  By = "index"
	BySerial By = "serial"
)

// ParseBy accepts "index"/"serial" or any word starting with i or s.
// Empty means ByIndex.
func ParseBy(s string) (By, error) {
	if s == "" {
		return ByIndex, nil
	}
	switch s[0] {
	case 'i', 'I':
		return ByIndex, nil
	case 's', 'S':
		return BySerial, nil
	}
	return "", fmt.Errorf("unknown selection %q, want index or serial", s)
}

// Selection is an inclusive range of records to print.
type Selection struct {
	By   By
	From int
	To   int
}

// DefaultSelection covers the whole inventory: indexes 0 to size-1, or
// serial numbers 1 to the last record's serial.
func (s *Session) DefaultSelection(by By) Selection {
	if by == BySerial {
		return Selection{By: BySerial, From: 1, To: s.Inventory.LastSerial()}
	}
	return Selection{By: ByIndex, From: 0, To: s.Inventory.Size() - 1}
}

// LabelResult describes a written label document.
type LabelResult struct {
	Path   string `json:"path"`
	Labels int    `json:"labels"`
	Pages  int    `json:"pages"`
}

// Select resolves sel to records.
func (s *Session) Select(sel Selection) ([]inventory.Record, error) {
	if sel.By != BySerial {
		return s.Inventory.IndexRange(sel.From, sel.To)
	}
	if s.Inventory.Size() == 0 {
		return nil, &inventory.Error{Code: inventory.ErrCodeNotFound, Message: "store is empty"}
	}
	if last := s.Inventory.LastSerial(); sel.To > last {
		return nil, &inventory.Error{
			Code:    inventory.ErrCodeOutOfRange,
			Message: fmt.Sprintf("ending serial number %d out of range, last is %d", sel.To, last),
		}
	}
	return s.Inventory.SerialRange(sel.From, sel.To)
}

// Labels renders one label per selected record into a PDF at out, or at
// the loaded file's name with a .pdf extension when out is empty.
func (s *Session) Labels(sel Selection, out string) (LabelResult, error) {
	records, err := s.Select(sel)
	if err != nil {
		return LabelResult{}, err
	}
	if out == "" {
		if s.Filename == "" {
			return LabelResult{}, ErrNoFile
		}
		out = ReplaceExt(s.Filename, ".pdf")
	}

	lc := s.cfg.Labels
	sheet, err := labels.NewSheet(lc.Sheet.Spec(), labels.Options{Prefix: lc.Prefix, Border: lc.Border})
	if err != nil {
		return LabelResult{}, err
	}
	sheet.AddRecords(records)

	if err := s.clearPDF(out); err != nil {
		return LabelResult{}, err
	}
	if err := sheet.Save(out); err != nil {
		return LabelResult{}, err
	}
	res := LabelResult{Path: out, Labels: sheet.LabelCount(), Pages: sheet.PageCount()}
	s.logger.Info("labels saved", "file", out, "labels", res.Labels, "pages", res.Pages)
	return res, nil
}

// clearPDF removes an existing document when overwriting is enabled, and
// refuses to touch it otherwise.
func (s *Session) clearPDF(path string) error {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !s.cfg.Labels.OverwriteExisting {
		return fmt.Errorf("label file %s: %w", path, fs.ErrExist)
	}
	s.logger.Debug("removing existing label file", "file", path)
	return os.Remove(path)
}
