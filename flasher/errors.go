package flasher

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-hexflash/protocol"
)

var (
	// ErrNegativeAck matches failures where the device kept rejecting a record
	ErrNegativeAck = errors.New("negative acknowledgement")

	// ErrAckTimeout matches failures where the device did not reply in time
	ErrAckTimeout = errors.New("no acknowledgement before timeout")
)

// TransportError indicates that the link failed while delivering a record.
type TransportError struct {
	// Op is the failed transport operation: write, flush, read or clear
	Op string

	// Index is the position of the record being delivered
	Index int

	// Record is the line of the record being delivered
	Record string

	// Acked is the number of records acknowledged before the failure
	Acked int

	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed on record %d (%s) after %d acknowledged records: %v",
		e.Op, e.Index, e.Record, e.Acked, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RetriesExhaustedError indicates a record that was not acknowledged within
// the allowed number of attempts.
type RetriesExhaustedError struct {
	// Index is the position of the record in the sequence
	Index int

	// Record is the line of the rejected record
	Record string

	// Attempts is the number of times the record was sent
	Attempts int

	// Nacks and Timeouts split the failed attempts by cause
	Nacks    int
	Timeouts int

	// Acked is the number of records acknowledged before this one
	Acked int

	// LastNack is the last rejection, nil when the last attempt timed out
	LastNack *protocol.AckError

	// Cause is ErrNegativeAck or ErrAckTimeout, after the last attempt
	Cause error
}

func (e *RetriesExhaustedError) Error() string {
	msg := fmt.Sprintf("record %d (%s) not acknowledged after %d attempts (%d nacks, %d timeouts)",
		e.Index, e.Record, e.Attempts, e.Nacks, e.Timeouts)
	if e.LastNack != nil {
		return msg + ": " + e.LastNack.Error()
	}
	return msg + ": " + e.Cause.Error()
}

func (e *RetriesExhaustedError) Unwrap() []error {
	errs := []error{e.Cause}
	if e.LastNack != nil {
		errs = append(errs, e.LastNack)
	}
	return errs
}
