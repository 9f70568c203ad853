package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one parcel entry.
type Record struct {
	Serial      int    `json:"sn"`
	Description string `json:"desc"`
	Weight      string `json:"wgt"`
}

// ParseSerial coerces s to a serial number. Surrounding spaces are ignored.
func ParseSerial(s string) (int, error) {
	sn, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &Error{
			Code:    ErrCodeInvalidSerial,
			Message: fmt.Sprintf("serial number %q is not an integer", s),
			Err:     err,
		}
	}
	return sn, nil
}

// NewRecord builds a Record from its three discrete values.
// The serial number is coerced to an integer; description and weight are
// stored exactly as given.
func NewRecord(sn, desc, wgt string) (Record, error) {
	serial, err := ParseSerial(sn)
	if err != nil {
		return Record{}, err
	}
	return Record{Serial: serial, Description: desc, Weight: wgt}, nil
}

// Fields returns the record as a (serial, description, weight) tuple.
func (r Record) Fields() (int, string, string) {
	return r.Serial, r.Description, r.Weight
}

// WeightValue interprets the weight numerically.
func (r Record) WeightValue() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(r.Weight), 64)
}

// Line renders the record as one line of the inventory file.
func (r Record) Line() string {
	return EncodeLine(r.Serial, r.Description, r.Weight)
}

func (r Record) String() string {
	return fmt.Sprintf("sn[%03d] weight[%s] [%s]", r.Serial, r.Weight, r.Description)
}
