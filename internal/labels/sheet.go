package labels

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/RichardEWillis/pi-label-inventory/internal/atomicfile"
	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// ErrNoLabels is returned when rendering an empty sheet.
var ErrNoLabels = errors.New("no labels to render")

const (
	fontFamily      = "Helvetica"
	descFontSize    = 20.0 // points
	serialFontSize  = 34.0
	textInset       = 4.0 // points from the label's left edge
	serialInset     = 2.0
	descBaseline    = 42.0 // points above the label's bottom edge
	serialBaseline  = 4.0
	borderLineWidth = 0.2 // mm
)

// Label is the content of one label.
type Label struct {
	Serial      int
	Description string
	Weight      string
}

// Options control label content.
type Options struct {
	// Prefix goes before the serial number. Empty means DefaultPrefix.
	Prefix string
	// Border draws the rounded outline of each label.
	Border bool
}

// Sheet collects labels and renders them onto pages.
type Sheet struct {
	spec   Spec
	opts   Options
	labels []Label
}

// NewSheet validates spec and returns an empty sheet.
func NewSheet(spec Spec, opts Options) (*Sheet, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid label sheet: %w", err)
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	return &Sheet{spec: spec, opts: opts}, nil
}

// Add queues one label.
func (s *Sheet) Add(serial int, desc, weight string) {
	s.labels = append(s.labels, Label{Serial: serial, Description: desc, Weight: weight})
}

// AddRecords queues one label per record, in order.
func (s *Sheet) AddRecords(records []inventory.Record) {
	for _, r := range records {
		s.Add(r.Fields())
	}
}

// LabelCount returns the number of queued labels.
func (s *Sheet) LabelCount() int { return len(s.labels) }

// PageCount returns the number of pages Render will produce.
func (s *Sheet) PageCount() int { return s.spec.Pages(len(s.labels)) }

// Render writes the PDF to w.
func (s *Sheet) Render(w io.Writer) error {
	if len(s.labels) == 0 {
		return ErrNoLabels
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: s.spec.SheetWidth, Ht: s.spec.SheetHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineWidth(borderLineWidth)
	pdf.SetTitle("Parcel labels", true)

	page := -1
	for i, l := range s.labels {
		p, x, y := s.spec.Position(i)
		if p != page {
			pdf.AddPage()
			page = p
		}
		s.drawLabel(pdf, x, y, l)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render labels: %w", err)
	}
	return nil
}

// Save renders the sheet to path, replacing any existing file.
func (s *Sheet) Save(path string) error {
	f, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Cancel()

	if err := s.Render(f); err != nil {
		return err
	}
	return f.Close()
}

func (s *Sheet) drawLabel(pdf *fpdf.Fpdf, x, y float64, l Label) {
	w, h, r := s.spec.LabelWidth, s.spec.LabelHeight, s.spec.CornerRadius
	if s.opts.Border {
		pdf.RoundedRect(x, y, w, h, r, "1234", "D")
	}

	// oversized text is trimmed to the label
	pdf.ClipRoundedRect(x, y, w, h, r, false)
	pdf.SetFont(fontFamily, "", descFontSize)
	pdf.Text(x+pdf.PointConvert(textInset), y+h-pdf.PointConvert(descBaseline), winAnsi(l.Description))

	pdf.SetFont(fontFamily, "", serialFontSize)
	line := BottomLine(s.opts.Prefix, l.Serial, l.Weight)
	pdf.Text(x+pdf.PointConvert(serialInset), y+h-pdf.PointConvert(serialBaseline), winAnsi(line))
	pdf.ClipEnd()
}
