package ihex

import (
	"errors"
	"strings"
	"testing"
)

func TestRecordString(t *testing.T) {
	data, err := NewDataRecord(0x0000, []byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatalf("NewDataRecord() error = %v", err)
	}
	odd, err := NewDataRecord(0xABCD, []byte{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("NewDataRecord() error = %v", err)
	}

	tests := []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name:     "data record",
			record:   data,
			expected: ":03000000010203F7",
		},
		{
			name:     "extended address",
			record:   NewExtendedAddressRecord(0x1234),
			expected: ":020000041234B4",
		},
		{
			name:     "end of file",
			record:   NewEndOfFileRecord(),
			expected: ":00000001FF",
		},
		{
			name:     "upper case hex",
			record:   odd,
			expected: ":04ABCD00DEADBEEF4C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.String(); got != tt.expected {
				t.Errorf("String() = %s, want %s", got, tt.expected)
			}
			if got := string(tt.record.Bytes()); got != tt.expected {
				t.Errorf("Bytes() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestNewDataRecordTooLong(t *testing.T) {
	_, err := NewDataRecord(0, make([]byte, MaxDataLength+1))
	if err == nil {
		t.Fatal("expected error for 256 byte payload")
	}

	var tooLong *RecordTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("error type = %T, want *RecordTooLongError", err)
	}
	if tooLong.Length != MaxDataLength+1 {
		t.Errorf("Length = %d, want %d", tooLong.Length, MaxDataLength+1)
	}
	if !strings.Contains(err.Error(), "256") {
		t.Errorf("error message should contain the length, got: %s", err)
	}
}

func TestNewDataRecordMaxLength(t *testing.T) {
	rec, err := NewDataRecord(0xFF00, make([]byte, MaxDataLength))
	if err != nil {
		t.Fatalf("NewDataRecord() error = %v", err)
	}
	if !strings.HasPrefix(rec.String(), ":FFFF0000") {
		t.Errorf("unexpected header: %s", rec.String()[:9])
	}
	if len(rec.String()) != 1+2*(4+MaxDataLength+1) {
		t.Errorf("line length = %d", len(rec.String()))
	}
}

func TestRecordIsImmutable(t *testing.T) {
	payload := []byte{0x01, 0x02}
	rec, err := NewDataRecord(0x10, payload)
	if err != nil {
		t.Fatalf("NewDataRecord() error = %v", err)
	}
	line := rec.String()

	payload[0] = 0xFF
	rec.Data()[1] = 0xFF

	if rec.String() != line {
		t.Errorf("record changed after mutating caller slices: %s != %s", rec.String(), line)
	}
}

func TestRecordBank(t *testing.T) {
	bank, ok := NewExtendedAddressRecord(0x0800).Bank()
	if !ok || bank != 0x0800 {
		t.Errorf("Bank() = 0x%04X, %v, want 0x0800, true", bank, ok)
	}
	if _, ok := NewEndOfFileRecord().Bank(); ok {
		t.Error("end of file record should not carry a bank")
	}
}

func TestParseRecordType(t *testing.T) {
	for _, b := range []byte{0x00, 0x01, 0x04} {
		rt, err := ParseRecordType(b)
		if err != nil {
			t.Errorf("ParseRecordType(0x%02X) error = %v", b, err)
		}
		if byte(rt) != b {
			t.Errorf("ParseRecordType(0x%02X) = %v", b, rt)
		}
	}
	for _, b := range []byte{0x02, 0x03, 0x05, 0xFF} {
		if _, err := ParseRecordType(b); err == nil {
			t.Errorf("ParseRecordType(0x%02X) expected error", b)
		}
	}
}
