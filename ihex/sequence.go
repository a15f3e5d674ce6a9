package ihex

import (
	"bufio"
	"io"
)

// Sequence is the ordered list of records for a complete image.
// Record order is transmission order. A Sequence is immutable.
type Sequence struct {
	records []Record
}

// NewSequence builds a Sequence from records after validating it.
func NewSequence(records ...Record) (*Sequence, error) {
	s := &Sequence{records: append([]Record(nil), records...)}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of records.
func (s *Sequence) Len() int {
	return len(s.records)
}

// At returns the i-th record.
func (s *Sequence) At(i int) Record {
	return s.records[i]
}

// Records returns a copy of the records.
func (s *Sequence) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Lines returns the canonical line of every record.
func (s *Sequence) Lines() []string {
	lines := make([]string, len(s.records))
	for i, r := range s.records {
		lines[i] = r.String()
	}
	return lines
}

// DataBytes returns the number of payload bytes carried by data records.
func (s *Sequence) DataBytes() int {
	total := 0
	for _, r := range s.records {
		if r.Type() == Data {
			total += r.Len()
		}
	}
	return total
}

// WriteTo writes the sequence as a .hex file, one newline terminated
// record per line.
func (s *Sequence) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, r := range s.records {
		n, err := bw.WriteString(r.String() + "\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// Validate checks the sequence rules:
//   - the first record is an extended address record
//   - the last record is the only end of file record
//   - no data record runs past the end of its bank
//   - data records only appear after the bank they address was announced
//
// The announced bank is tracked from the last extended address record, so a
// data record that continues into a new bank without an extended address
// record in between fails the last rule.
func (s *Sequence) Validate() error {
	if len(s.records) < 2 {
		return &SequenceError{Index: len(s.records), Reason: "sequence needs at least an extended address and an end of file record"}
	}
	if s.records[0].Type() != ExtendedAddress {
		return &SequenceError{Index: 0, Reason: "first record must be an extended address record"}
	}

	var (
		bank    uint16
		next    uint64
		started bool
	)
	last := len(s.records) - 1
	for i, r := range s.records {
		switch r.Type() {
		case ExtendedAddress:
			b, ok := r.Bank()
			if !ok {
				return &SequenceError{Index: i, Reason: "malformed extended address record"}
			}
			bank = b
		case Data:
			start := uint64(r.Address())
			if start+uint64(r.Len()) > BankSize {
				return &SequenceError{Index: i, Reason: "data record runs past the end of its bank"}
			}
			// A record that continues where the previous one ended must
			// not have silently crossed into the next bank.
			addr := uint64(bank)<<16 | start
			if started && start == 0 && next == addr+BankSize {
				return &SequenceError{Index: i, Reason: "bank change without extended address record"}
			}
			next = addr + uint64(r.Len())
			started = true
		case EndOfFile:
			if i != last {
				return &SequenceError{Index: i, Reason: "end of file record before the end of the sequence"}
			}
		default:
			return &SequenceError{Index: i, Reason: r.Type().String()}
		}
	}
	if s.records[last].Type() != EndOfFile {
		return &SequenceError{Index: last, Reason: "last record must be an end of file record"}
	}
	return nil
}
