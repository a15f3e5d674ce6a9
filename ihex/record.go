package ihex

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Record format constants.
const (
	// StartCode is the first character of every record line
	StartCode = ':'

	// MaxDataLength is the largest payload a single record can carry
	MaxDataLength = 0xFF

	// BankSize is the number of bytes addressable by one 16-bit record offset
	BankSize = 0x10000

	// headerLength is the length in bytes of LL, AAAA and TT
	headerLength = 4
)

// RecordType identifies the kind of record.
type RecordType byte

// Record types emitted by the encoder.
const (
	// Data carries payload bytes for the current bank
	Data RecordType = 0x00

	// EndOfFile terminates a sequence
	EndOfFile RecordType = 0x01

	// ExtendedAddress carries the upper 16 bits of the 32-bit address
	ExtendedAddress RecordType = 0x04
)

func (t RecordType) String() string {
	switch t {
	case Data:
		return "data"
	case EndOfFile:
		return "end of file"
	case ExtendedAddress:
		return "extended address"
	default:
		return fmt.Sprintf("unknown record type 0x%02X", byte(t))
	}
}

// ParseRecordType validates a raw record type byte.
func ParseRecordType(b byte) (RecordType, error) {
	switch t := RecordType(b); t {
	case Data, EndOfFile, ExtendedAddress:
		return t, nil
	default:
		return 0, fmt.Errorf("unsupported record type 0x%02X", b)
	}
}

// Record is a single checksummed Intel HEX record.
// Records are immutable once constructed.
type Record struct {
	recordType RecordType
	address    uint16
	data       []byte
	checksum   byte
}

// NewDataRecord builds a data record placing data at the given 16-bit offset.
// The payload is copied. Payloads longer than MaxDataLength are rejected
// with a RecordTooLongError.
func NewDataRecord(address uint16, data []byte) (Record, error) {
	if len(data) > MaxDataLength {
		return Record{}, &RecordTooLongError{Length: len(data)}
	}
	return newRecord(Data, address, append([]byte(nil), data...)), nil
}

// NewExtendedAddressRecord builds a record announcing the upper 16 bits of
// the address used by the data records that follow it.
func NewExtendedAddressRecord(bank uint16) Record {
	return newRecord(ExtendedAddress, 0, []byte{byte(bank >> 8), byte(bank)})
}

// NewEndOfFileRecord builds the terminating record.
func NewEndOfFileRecord() Record {
	return newRecord(EndOfFile, 0, nil)
}

func newRecord(t RecordType, address uint16, data []byte) Record {
	return Record{
		recordType: t,
		address:    address,
		data:       data,
		checksum:   Checksum(uint8(len(data)), address, t, data),
	}
}

// Type returns the record type.
func (r Record) Type() RecordType { return r.recordType }

// Address returns the 16-bit load offset.
func (r Record) Address() uint16 { return r.address }

// Len returns the payload length.
func (r Record) Len() int { return len(r.data) }

// Data returns a copy of the payload.
func (r Record) Data() []byte { return append([]byte(nil), r.data...) }

// Checksum returns the record checksum.
func (r Record) Checksum() byte { return r.checksum }

// Bank returns the bank announced by an extended address record.
func (r Record) Bank() (uint16, bool) {
	if r.recordType != ExtendedAddress || len(r.data) != 2 {
		return 0, false
	}
	return uint16(r.data[0])<<8 | uint16(r.data[1]), true
}

// String renders the record as its canonical upper-case line, without a
// line terminator.
func (r Record) String() string {
	var sb strings.Builder
	sb.Grow(1 + 2*(headerLength+len(r.data)+1))
	sb.WriteByte(StartCode)
	fmt.Fprintf(&sb, "%02X%04X%02X", len(r.data), r.address, byte(r.recordType))
	sb.WriteString(strings.ToUpper(hex.EncodeToString(r.data)))
	fmt.Fprintf(&sb, "%02X", r.checksum)
	return sb.String()
}

// Bytes returns the line as it is sent on the wire.
func (r Record) Bytes() []byte {
	return []byte(r.String())
}
