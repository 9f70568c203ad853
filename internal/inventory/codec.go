package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	fieldCount = 3
	separator  = ", "
)

// ErrShortLine is wrapped by DecodeLine when a line has too few fields.
var ErrShortLine = errors.New("too few fields")

// EncodeLine renders the three discrete values as one file line:
// "<sn>, <desc>, <wgt>\n". Nothing is quoted or escaped.
func EncodeLine(sn int, desc, wgt string) string {
	var b strings.Builder
	b.Grow(len(desc) + len(wgt) + 16)
	b.WriteString(strconv.Itoa(sn))
	b.WriteString(separator)
	b.WriteString(desc)
	b.WriteString(separator)
	b.WriteString(wgt)
	b.WriteByte('\n')
	return b.String()
}

// DecodeLine splits one file line into its three raw fields.
//
// Trailing whitespace (including the newline) is stripped and the line is
// split on ','. Fields past the third are ignored. The single space the
// encoder writes after each comma is removed from the description and
// weight; any other whitespace is preserved, so EncodeLine followed by
// DecodeLine returns the original description.
func DecodeLine(line string) (sn, desc, wgt string, err error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	el := strings.Split(line, ",")
	if len(el) < fieldCount {
		return "", "", "", fmt.Errorf("%w: got %d, want %d", ErrShortLine, len(el), fieldCount)
	}
	return el[0], strings.TrimPrefix(el[1], " "), strings.TrimPrefix(el[2], " "), nil
}

// DecodeRecord parses one file line into a Record.
func DecodeRecord(line string) (Record, error) {
	sn, desc, wgt, err := DecodeLine(line)
	if err != nil {
		return Record{}, err
	}
	return NewRecord(sn, desc, wgt)
}
