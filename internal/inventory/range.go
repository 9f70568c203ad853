package inventory

import "fmt"

// IndexRange returns the records at positions start through end inclusive.
func (s *Store) IndexRange(start, end int) ([]Record, error) {
	size := len(s.records)
	if size == 0 {
		return nil, &Error{Code: ErrCodeNotFound, Message: "store is empty"}
	}
	if start < 0 || end >= size || start > end {
		return nil, &Error{
			Code:    ErrCodeOutOfRange,
			Message: fmt.Sprintf("index range [%d, %d] invalid, allowable is [0, %d]", start, end, size-1),
		}
	}
	out := make([]Record, end-start+1)
	copy(out, s.records[start:end+1])
	return out, nil
}

// SerialRange resolves the serial numbers from and to to indexes and
// returns the records between them inclusive.
func (s *Store) SerialRange(from, to int) ([]Record, error) {
	start := s.FindIndexBySerial(from)
	if start == NotFound {
		return nil, serialNotFound(from)
	}
	end := s.FindIndexBySerial(to)
	if end == NotFound {
		return nil, serialNotFound(to)
	}
	return s.IndexRange(start, end)
}

// LastSerial returns the serial number of the last record, or NotFound for
// an empty store.
func (s *Store) LastSerial() int {
	if len(s.records) == 0 {
		return NotFound
	}
	return s.records[len(s.records)-1].Serial
}

func serialNotFound(sn int) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("serial number %d not found", sn)}
}
