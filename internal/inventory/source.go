package inventory

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/RichardEWillis/pi-label-inventory/internal/atomicfile"
)

// Ext is the suffix of inventory text files.
const Ext = ".csv"

// Source yields the records of a persisted inventory in order.
type Source interface {
	ReadRecords(ctx context.Context) ([]Record, error)
}

// Sink persists records in order, replacing whatever it held before.
type Sink interface {
	WriteRecords(ctx context.Context, records []Record) (int, error)
}

// WithExt appends ext to path unless path already ends with it.
func WithExt(path, ext string) string {
	if strings.HasSuffix(path, ext) {
		return path
	}
	return path + ext
}

// CSVFile is an inventory text file. It is both a Source and a Sink.
type CSVFile struct {
	Path string
}

var (
	_ Source = CSVFile{}
	_ Sink   = CSVFile{}
)

// Name returns the path with the ".csv" suffix applied.
func (f CSVFile) Name() string {
	return WithExt(f.Path, Ext)
}

// ReadRecords parses the whole file. A missing file is a NOT_FOUND error;
// the first malformed line is a MALFORMED_INPUT error.
func (f CSVFile) ReadRecords(ctx context.Context) ([]Record, error) {
	name := f.Name()
	file, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewNotFoundError(name, err)
		}
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer file.Close()
	return ReadLines(ctx, name, file)
}

// WriteRecords writes one line per record. The file is replaced atomically.
func (f CSVFile) WriteRecords(ctx context.Context, records []Record) (int, error) {
	name := f.Name()
	af, err := atomicfile.New(name)
	if err != nil {
		return 0, fmt.Errorf("create inventory: %w", err)
	}
	defer af.Cancel()

	n, err := WriteLines(ctx, af, records)
	if err != nil {
		return 0, fmt.Errorf("write inventory %s: %w", name, err)
	}
	if err := af.Close(); err != nil {
		return 0, fmt.Errorf("write inventory %s: %w", name, err)
	}
	return n, nil
}

// ReadLines parses inventory lines from r. name is only used in errors.
func ReadLines(ctx context.Context, name string, r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	var records []Record
	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if line == "" && err == io.EOF {
			break
		}
		if !utf8.ValidString(line) {
			return nil, NewMalformedError(name, lineNo, errors.New("invalid UTF-8"))
		}
		rec, decErr := DecodeRecord(line)
		if decErr != nil {
			return nil, NewMalformedError(name, lineNo, decErr)
		}
		records = append(records, rec)
		if err == io.EOF {
			break
		}
	}
	return records, nil
}

// WriteLines writes records to w in the inventory line format.
func WriteLines(ctx context.Context, w io.Writer, records []Record) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := bw.WriteString(r.Line()); err != nil {
			return n, err
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, err
	}
	return n, nil
}
