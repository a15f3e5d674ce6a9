package protocol

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/moffa90/go-hexflash/ihex"
)

func TestAckError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AckError
		contains []string
	}{
		{
			name:     "nak control byte",
			err:      &AckError{RecordType: ihex.Data, Expected: ASCIIAck, Got: ASCIINak},
			contains: []string{"data record", "ACK (0x06)", "NAK (0x15)"},
		},
		{
			name:     "printable byte",
			err:      &AckError{RecordType: ihex.ExtendedAddress, Expected: '.', Got: 'E'},
			contains: []string{"extended address record", "'.' (0x2E)", "'E' (0x45)"},
		},
		{
			name:     "binary byte",
			err:      &AckError{RecordType: ihex.EndOfFile, Expected: ASCIIAck, Got: 0xFE},
			contains: []string{"end of file record", "0xFE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("error message should contain %q, got: %s", want, msg)
				}
			}
		})
	}
}

func TestIsAckError(t *testing.T) {
	if !IsAckError(&AckError{}) {
		t.Error("IsAckError(&AckError{}) = false")
	}
	if IsAckError(errors.New("other")) {
		t.Error("IsAckError(other) = true")
	}
	if IsAckError(fmt.Errorf("wrapped: %w", errors.New("x"))) {
		t.Error("IsAckError(wrapped other) = true")
	}
}
