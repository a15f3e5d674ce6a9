package protocol

import (
	"fmt"

	"github.com/moffa90/go-hexflash/ihex"
)

// AckError represents a reply byte that did not acknowledge a record.
type AckError struct {
	// RecordType is the type of the record that was rejected
	RecordType ihex.RecordType

	// Expected is the acknowledgement byte from the ack table
	Expected byte

	// Got is the byte returned by the device
	Got byte
}

func (e *AckError) Error() string {
	return fmt.Sprintf("%s record not acknowledged: expected %s, got %s",
		e.RecordType, describeByte(e.Expected), describeByte(e.Got))
}

// IsAckError returns true if the error is an AckError.
func IsAckError(err error) bool {
	_, ok := err.(*AckError)
	return ok
}

// describeByte returns a human-readable form of a reply byte.
func describeByte(b byte) string {
	switch {
	case b == ASCIIAck:
		return "ACK (0x06)"
	case b == ASCIINak:
		return "NAK (0x15)"
	case b >= 0x20 && b < 0x7F:
		return fmt.Sprintf("'%c' (0x%02X)", b, b)
	default:
		return fmt.Sprintf("0x%02X", b)
	}
}
