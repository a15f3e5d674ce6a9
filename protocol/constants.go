package protocol

import "time"

// Link settings used by hex-record bootloaders.
const (
	// DefaultBaudRate is the serial link speed in bits per second
	DefaultBaudRate = 115200

	// DefaultDataBits is the number of data bits per character
	DefaultDataBits = 8

	// DefaultReadTimeout bounds each wait for an acknowledgement byte
	DefaultReadTimeout = 1 * time.Second
)

// Reply bytes.
const (
	// ASCIIAck is the ASCII acknowledge control character (0x06)
	ASCIIAck = 0x06

	// ASCIINak is the ASCII negative acknowledge control character (0x15)
	ASCIINak = 0x15
)

// ReplyBufferSize is the read buffer used while waiting for a reply.
// Only the first byte received is interpreted.
const ReplyBufferSize = 5
