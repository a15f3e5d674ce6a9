package protocol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/moffa90/go-hexflash/ihex"
)

// Reply is the outcome of comparing a reply byte with the ack table.
type Reply int

const (
	// Nack means the device rejected the record
	Nack Reply = iota

	// Ack means the device accepted the record
	Ack
)

func (r Reply) String() string {
	if r == Ack {
		return "ack"
	}
	return "nack"
}

// AckTable maps each record type to the byte the device replies with when
// it accepts a record of that type.
type AckTable map[ihex.RecordType]byte

// DefaultAckTable expects ASCIIAck for every record type.
func DefaultAckTable() AckTable {
	return AckTable{
		ihex.Data:            ASCIIAck,
		ihex.EndOfFile:       ASCIIAck,
		ihex.ExtendedAddress: ASCIIAck,
	}
}

// Expected returns the acknowledgement byte for a record type.
func (t AckTable) Expected(rt ihex.RecordType) (byte, bool) {
	b, ok := t[rt]
	return b, ok
}

// Set replaces the acknowledgement byte for a record type.
func (t AckTable) Set(rt ihex.RecordType, b byte) {
	t[rt] = b
}

// Classify compares the first reply byte with the expected acknowledgement.
// A record type missing from the table can never be acknowledged.
func (t AckTable) Classify(rt ihex.RecordType, reply byte) Reply {
	if b, ok := t[rt]; ok && b == reply {
		return Ack
	}
	return Nack
}

// String renders the table in the form accepted by ParseAckTable.
func (t AckTable) String() string {
	types := make([]int, 0, len(t))
	for rt := range t {
		types = append(types, int(rt))
	}
	sort.Ints(types)

	parts := make([]string, 0, len(types))
	for _, rt := range types {
		parts = append(parts, fmt.Sprintf("%s=0x%02X", typeName(ihex.RecordType(rt)), t[ihex.RecordType(rt)]))
	}
	return strings.Join(parts, ",")
}

// ParseAckTable parses a comma separated list of type=char pairs on top of
// DefaultAckTable.
//
// The type is one of data, eof, ext or a record type code such as 0x04.
// The char is either a single printable character or a byte in 0xNN form.
//
// Example:
//
//	table, err := protocol.ParseAckTable("data=.,eof=!,ext=0x06")
func ParseAckTable(list string) (AckTable, error) {
	table := DefaultAckTable()
	list = strings.TrimSpace(list)
	if list == "" {
		return table, nil
	}

	for _, pair := range strings.Split(list, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("ack entry %q: expected type=char", pair)
		}

		rt, err := parseTypeName(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("ack entry %q: %w", pair, err)
		}

		b, err := parseAckByte(value)
		if err != nil {
			return nil, fmt.Errorf("ack entry %q: %w", pair, err)
		}
		table.Set(rt, b)
	}

	return table, nil
}

func typeName(rt ihex.RecordType) string {
	switch rt {
	case ihex.Data:
		return "data"
	case ihex.EndOfFile:
		return "eof"
	case ihex.ExtendedAddress:
		return "ext"
	default:
		return fmt.Sprintf("0x%02X", byte(rt))
	}
}

func parseTypeName(s string) (ihex.RecordType, error) {
	switch strings.ToLower(s) {
	case "data":
		return ihex.Data, nil
	case "eof":
		return ihex.EndOfFile, nil
	case "ext":
		return ihex.ExtendedAddress, nil
	}

	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown record type %q", s)
	}
	return ihex.ParseRecordType(byte(v))
}

func parseAckByte(s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid byte %q", s)
		}
		return byte(v), nil
	}
	return 0, fmt.Errorf("ack must be a single character or 0xNN, got %q", s)
}
