package ihex

import "fmt"

// Checksum computes the 8-bit record checksum.
//
// The checksum is the two's complement of the byte sum of the length, the
// address high and low bytes, the record type and every payload byte.
//
// payload must hold exactly length bytes. Anything else is a programming
// error and panics.
func Checksum(length uint8, address uint16, recordType RecordType, payload []byte) byte {
	if len(payload) != int(length) {
		panic(fmt.Sprintf("ihex: checksum length %d does not match payload of %d bytes", length, len(payload)))
	}

	sum := length
	sum += byte(address >> 8)
	sum += byte(address)
	sum += byte(recordType)
	for _, b := range payload {
		sum += b
	}
	// Return 2's complement: invert and add 1
	return ^sum + 1
}
