// Package ihex encodes raw binary images as Intel HEX records.
//
// # Record Format
//
// Every record is a single ASCII line:
//
//	:LLAAAATT[DD...]CC
//
// Where:
//   - LL = payload length (1 byte)
//   - AAAA = 16-bit load offset (big-endian)
//   - TT = record type (00 data, 01 end of file, 04 extended linear address)
//   - DD = payload bytes
//   - CC = two's complement of the byte sum of all preceding fields
//
// Only the low 16 bits of an address travel in a data record. The upper 16
// bits (the bank) are announced with an extended linear address record
// whenever they change.
//
// Example lines:
//
//	:03000000010203F7     data 01 02 03 at 0x0000
//	:020000041234B4       bank 0x1234
//	:00000001FF           end of file
//
// # Usage
//
// Encode a file starting at a base address:
//
//	seq, err := ihex.EncodeFile("firmware.bin", 0x08000000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, line := range seq.Lines() {
//	    fmt.Println(line)
//	}
//
// Or drive the encoder chunk by chunk:
//
//	enc := ihex.NewEncoder(0x0000)
//	if err := enc.Push(chunk); err != nil {
//	    return err
//	}
//	seq, err := enc.Finish()
//
// A Sequence always starts with an extended linear address record and ends
// with exactly one end of file record.
package ihex
