package ihex

import (
	"errors"
	"fmt"
)

// ErrEncoderFinished is returned when an Encoder is used after Finish.
var ErrEncoderFinished = errors.New("encoder already finished")

// RecordTooLongError indicates a payload that does not fit in one record.
type RecordTooLongError struct {
	Length int
}

func (e *RecordTooLongError) Error() string {
	return fmt.Sprintf("record payload of %d bytes exceeds maximum of %d bytes",
		e.Length, MaxDataLength)
}

// AddressOverflowError indicates data that would extend past the 32-bit address space.
type AddressOverflowError struct {
	Offset uint64
	Length int
}

func (e *AddressOverflowError) Error() string {
	return fmt.Sprintf("%d bytes at 0x%08X run past the end of the 32-bit address space",
		e.Length, e.Offset)
}

// SourceReadError indicates that the image could not be read.
type SourceReadError struct {
	Offset uint32
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read image at 0x%08X: %v", e.Offset, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// SequenceError indicates a record sequence that breaks the sequence rules.
type SequenceError struct {
	Index  int
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("invalid sequence at record %d: %s", e.Index, e.Reason)
}

// VerificationError indicates that the encoded records do not reproduce the image.
type VerificationError struct {
	Address uint32
	Reason  string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed at 0x%08X: %s", e.Address, e.Reason)
}
