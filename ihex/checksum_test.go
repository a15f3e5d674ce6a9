package ihex

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name       string
		address    uint16
		recordType RecordType
		payload    []byte
		expected   byte
	}{
		{
			name:       "end of file",
			recordType: EndOfFile,
			payload:    []byte{},
			expected:   0xFF,
		},
		{
			name:       "data record",
			recordType: Data,
			payload:    []byte{0x01, 0x02, 0x03},
			expected:   0xF7,
		},
		{
			name:       "extended address",
			recordType: ExtendedAddress,
			payload:    []byte{0x12, 0x34},
			expected:   0xB4,
		},
		{
			name:       "address bytes are summed",
			address:    0x0100,
			recordType: Data,
			payload:    []byte{0x21, 0x46, 0x01, 0x36, 0x01, 0x21, 0x47, 0x01, 0x36, 0x00, 0x7E, 0xFE, 0x09, 0xD2, 0x19, 0x01},
			expected:   0x40,
		},
		{
			name:       "sum wraps around",
			address:    0xFFFF,
			recordType: Data,
			payload:    []byte{0xFF, 0xFF, 0xFF, 0xFF},
			expected:   0x02,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Checksum(uint8(len(tt.payload)), tt.address, tt.recordType, tt.payload)
			if result != tt.expected {
				t.Errorf("Checksum() = 0x%02X, want 0x%02X", result, tt.expected)
			}
		})
	}
}

func TestChecksumSumsToZero(t *testing.T) {
	payload := make([]byte, MaxDataLength)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	for _, address := range []uint16{0x0000, 0x00FF, 0x1234, 0xFF00, 0xFFFF} {
		for _, n := range []int{0, 1, 16, 128, MaxDataLength} {
			data := payload[:n]
			cs := Checksum(uint8(n), address, Data, data)

			sum := byte(n) + byte(address>>8) + byte(address) + byte(Data) + cs
			for _, b := range data {
				sum += b
			}
			if sum != 0 {
				t.Errorf("address 0x%04X length %d: record sum = 0x%02X, want 0", address, n, sum)
			}
		}
	}
}

func TestChecksumLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched length")
		}
	}()
	Checksum(3, 0, Data, []byte{0x01})
}
