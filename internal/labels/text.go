package labels

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// DefaultPrefix is put in front of the zero-padded serial number.
const DefaultPrefix = "REW"

// SerialText formats a serial number for a label, e.g. "REW-007".
func SerialText(prefix string, sn int) string {
	if prefix == "" {
		return fmt.Sprintf("%03d", sn)
	}
	return fmt.Sprintf("%s-%03d", prefix, sn)
}

// BottomLine is the serial in a 7 character column followed by the weight
// right-aligned in 6.
func BottomLine(prefix string, sn int, weight string) string {
	return fmt.Sprintf("%-7s %6s", SerialText(prefix, sn), weight)
}

// winAnsi converts s to the Windows-1252 bytes expected by the PDF core
// fonts. Runes with no mapping become '?'.
func winAnsi(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
