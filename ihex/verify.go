package ihex

import (
	"fmt"

	"github.com/marcinbor85/gohex"
)

// Verify loads the data records into an independent memory image and
// checks that it reproduces image placed at base, byte for byte.
func (s *Sequence) Verify(image []byte, base uint32) error {
	mem := gohex.NewMemory()

	var bank uint16
	for i, r := range s.records {
		switch r.Type() {
		case ExtendedAddress:
			bank, _ = r.Bank()
		case Data:
			addr := uint32(bank)<<16 | uint32(r.Address())
			if err := mem.AddBinary(addr, r.Data()); err != nil {
				return &VerificationError{
					Address: addr,
					Reason:  fmt.Sprintf("load record %d: %v", i, err),
				}
			}
		}
	}

	var total int
	for _, seg := range mem.GetDataSegments() {
		total += len(seg.Data)
	}
	if total != len(image) {
		return &VerificationError{
			Address: base,
			Reason:  fmt.Sprintf("decoded %d bytes, image has %d", total, len(image)),
		}
	}
	if len(image) == 0 {
		return nil
	}

	decoded := mem.ToBinary(base, uint32(len(image)), 0xFF)
	for i := range image {
		if decoded[i] != image[i] {
			return &VerificationError{
				Address: base + uint32(i),
				Reason:  fmt.Sprintf("decoded 0x%02X, image has 0x%02X", decoded[i], image[i]),
			}
		}
	}
	return nil
}
