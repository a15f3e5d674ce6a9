package flasher

import (
	"time"

	"github.com/moffa90/go-hexflash/ihex"
)

// Progress phases.
const (
	PhaseTransmitting = "transmitting"
	PhaseComplete     = "complete"
)

// Progress contains information about the transfer progress.
// Passed to ProgressCallback after every acknowledged record.
type Progress struct {
	// Phase describes the current operation phase:
	//   "transmitting" - Sending records
	//   "complete"     - Every record was acknowledged
	Phase string

	// CurrentRecord is the number of records acknowledged so far
	CurrentRecord int

	// TotalRecords is the number of records in the sequence
	TotalRecords int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesSent is the number of image bytes acknowledged so far
	BytesSent int

	// ElapsedTime is the time elapsed since the transfer started
	ElapsedTime time.Duration
}

// ProgressCallback is called during the transfer to report progress.
// Implementations should return quickly to avoid stalling the link.
//
// Example:
//
//	session := flasher.New(port,
//	    flasher.WithProgressCallback(func(p flasher.Progress) {
//	        fmt.Printf("[%s] %.1f%% - Record %d/%d\n",
//	            p.Phase, p.Percentage, p.CurrentRecord, p.TotalRecords)
//	    }),
//	)
type ProgressCallback func(Progress)

// EventKind identifies a step of the per-record handshake.
type EventKind string

// Event kinds.
const (
	// EventSent is reported after a record was written and flushed
	EventSent EventKind = "sent"

	// EventAcked is reported when the device acknowledged a record
	EventAcked EventKind = "acked"

	// EventNack is reported when the device replied with any other byte
	EventNack EventKind = "nack"

	// EventTimeout is reported when no reply arrived within the read timeout
	EventTimeout EventKind = "timeout"
)

// Event describes one step of the handshake for a record.
type Event struct {
	Kind EventKind

	// TransferID identifies the Transmit call that produced the event
	TransferID string

	// Index is the position of the record in the sequence
	Index int

	// Record is the record being delivered
	Record ihex.Record

	// Attempt counts sends of this record, starting at 1
	Attempt int

	// Reply is the first byte received (EventAcked and EventNack only)
	Reply byte
}

// EventCallback observes handshake events.
type EventCallback func(Event)

// Stats summarizes a transfer.
type Stats struct {
	TransferID string

	// Records is the number of records in the sequence
	Records int

	// Acked is the number of records acknowledged by the device
	Acked int

	// Nacks counts negative acknowledgements over all records
	Nacks int

	// Timeouts counts attempts that received no reply
	Timeouts int

	// Bytes is the number of image bytes acknowledged
	Bytes int

	Elapsed time.Duration
}

// Logger is an optional logging interface that can be provided to the session.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	session := flasher.New(port, flasher.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
