package flasher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-hexflash/ihex"
	"github.com/moffa90/go-hexflash/protocol"
)

// Transport is the byte link to the bootloader.
//
// Read must return (0, nil) when no byte arrived within the read timeout.
// A read error matching os.ErrDeadlineExceeded is treated the same way.
type Transport interface {
	Write(p []byte) (int, error)
	Flush() error
	Read(p []byte) (int, error)
	ClearInput() error
}

// Session delivers record sequences over a Transport, one acknowledged
// record at a time.
//
// A Session must not be used by more than one Transmit call at a time.
type Session struct {
	transport Transport
	config    Config
}

// New creates a new Session with the given transport and options.
//
// Example:
//
//	port, _ := serialport.Open(serialport.Config{Name: "/dev/ttyUSB0"})
//	session := flasher.New(port,
//	    flasher.WithRetries(5),
//	    flasher.WithProgressCallback(progressFunc),
//	)
func New(transport Transport, opts ...Option) *Session {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		transport: transport,
		config:    cfg,
	}
}

// transfer holds the running state of one Transmit call.
type transfer struct {
	id    string
	start time.Time
	total int
	stats Stats
}

// Transmit sends every record of seq in order. Each record is resent until
// the device acknowledges it or the retries run out.
//
// The sequence is validated before anything is written. On failure the
// returned Stats describe the records acknowledged so far.
//
// Example:
//
//	seq, _ := ihex.EncodeFile("firmware.bin", 0)
//	stats, err := session.Transmit(ctx, seq)
//	var exhausted *flasher.RetriesExhaustedError
//	if errors.As(err, &exhausted) {
//	    fmt.Printf("record %d rejected %d times\n", exhausted.Index, exhausted.Nacks)
//	}
func (s *Session) Transmit(ctx context.Context, seq *ihex.Sequence) (Stats, error) {
	if seq == nil {
		return Stats{}, fmt.Errorf("sequence cannot be nil")
	}
	if err := seq.Validate(); err != nil {
		return Stats{}, err
	}

	t := &transfer{
		id:    uuid.NewString(),
		start: time.Now(),
		total: seq.Len(),
	}
	t.stats = Stats{TransferID: t.id, Records: t.total}

	s.logInfo("starting transfer",
		"transfer", t.id,
		"records", t.total,
		"bytes", seq.DataBytes(),
		"acks", s.config.AckTable.String(),
	)

	for i := 0; i < t.total; i++ {
		rec := seq.At(i)
		if err := s.deliver(ctx, t, i, rec); err != nil {
			t.stats.Elapsed = time.Since(t.start)
			s.logError("transfer aborted",
				"transfer", t.id,
				"record", i,
				"acked", t.stats.Acked,
				"error", err,
			)
			return t.stats, err
		}

		t.stats.Acked++
		if rec.Type() == ihex.Data {
			t.stats.Bytes += rec.Len()
		}

		s.reportProgress(Progress{
			Phase:         PhaseTransmitting,
			CurrentRecord: t.stats.Acked,
			TotalRecords:  t.total,
			Percentage:    float64(t.stats.Acked) / float64(t.total) * 100,
			BytesSent:     t.stats.Bytes,
			ElapsedTime:   time.Since(t.start),
		})
	}

	t.stats.Elapsed = time.Since(t.start)

	s.reportProgress(Progress{
		Phase:         PhaseComplete,
		CurrentRecord: t.stats.Acked,
		TotalRecords:  t.total,
		Percentage:    100,
		BytesSent:     t.stats.Bytes,
		ElapsedTime:   t.stats.Elapsed,
	})

	s.logInfo("transfer complete",
		"transfer", t.id,
		"records", t.stats.Acked,
		"bytes", t.stats.Bytes,
		"nacks", t.stats.Nacks,
		"timeouts", t.stats.Timeouts,
		"elapsed", t.stats.Elapsed.String(),
	)

	return t.stats, nil
}

// deliver sends one record until it is acknowledged.
func (s *Session) deliver(ctx context.Context, t *transfer, index int, rec ihex.Record) error {
	line := rec.String()
	expected, _ := s.config.AckTable.Expected(rec.Type())
	attempts := s.config.Retries + 1

	var (
		nacks    int
		timeouts int
		lastNack *protocol.AckError
		cause    error
	)

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := s.backoff(ctx, attempt-1); err != nil {
				return fmt.Errorf("cancelled after %d acknowledged records: %w", t.stats.Acked, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled after %d acknowledged records: %w", t.stats.Acked, err)
		}

		if err := s.send(line); err != nil {
			return t.transportError(err, index, line)
		}
		s.emit(Event{Kind: EventSent, TransferID: t.id, Index: index, Record: rec, Attempt: attempt})
		s.logDebug("record sent", "record", index, "attempt", attempt, "line", line)

		reply, ok, err := s.awaitReply()
		if err != nil {
			return t.transportError(&opError{op: "read", err: err}, index, line)
		}

		if !ok {
			timeouts++
			t.stats.Timeouts++
			lastNack = nil
			cause = ErrAckTimeout
			s.emit(Event{Kind: EventTimeout, TransferID: t.id, Index: index, Record: rec, Attempt: attempt})
			s.logDebug("no reply", "record", index, "attempt", attempt)
		} else if s.config.AckTable.Classify(rec.Type(), reply) == protocol.Ack {
			s.emit(Event{Kind: EventAcked, TransferID: t.id, Index: index, Record: rec, Attempt: attempt, Reply: reply})
			s.logDebug("record acknowledged",
				"record", index,
				"attempt", attempt,
				"reply", fmt.Sprintf("0x%02X", reply),
			)
			return nil
		} else {
			nacks++
			t.stats.Nacks++
			lastNack = &protocol.AckError{RecordType: rec.Type(), Expected: expected, Got: reply}
			cause = ErrNegativeAck
			s.emit(Event{Kind: EventNack, TransferID: t.id, Index: index, Record: rec, Attempt: attempt, Reply: reply})
			s.logDebug("record rejected",
				"record", index,
				"attempt", attempt,
				"reply", fmt.Sprintf("0x%02X", reply),
			)
		}

		if err := s.transport.ClearInput(); err != nil {
			return t.transportError(&opError{op: "clear", err: err}, index, line)
		}
	}

	return &RetriesExhaustedError{
		Index:    index,
		Record:   line,
		Attempts: attempts,
		Nacks:    nacks,
		Timeouts: timeouts,
		Acked:    t.stats.Acked,
		LastNack: lastNack,
		Cause:    cause,
	}
}

// send writes the full line and flushes the transport.
func (s *Session) send(line string) error {
	n, err := s.transport.Write([]byte(line))
	if err != nil {
		return &opError{op: "write", err: err}
	}
	if n != len(line) {
		return &opError{op: "write", err: fmt.Errorf("wrote %d of %d bytes: %w", n, len(line), io.ErrShortWrite)}
	}
	if err := s.transport.Flush(); err != nil {
		return &opError{op: "flush", err: err}
	}
	return nil
}

// awaitReply reads once and returns the first byte received.
// ok is false when the read timed out.
func (s *Session) awaitReply() (reply byte, ok bool, err error) {
	buf := make([]byte, protocol.ReplyBufferSize)
	n, err := s.transport.Read(buf)
	if n > 0 {
		return buf[0], true, nil
	}
	if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
		return 0, false, err
	}
	return 0, false, nil
}

// backoff waits before resend number retry, or until ctx is done.
func (s *Session) backoff(ctx context.Context, retry int) error {
	delay := s.config.backoffDelay(retry)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// opError names the transport operation that failed.
type opError struct {
	op  string
	err error
}

func (e *opError) Error() string {
	return e.op + ": " + e.err.Error()
}

func (t *transfer) transportError(err error, index int, line string) error {
	var oe *opError
	if !errors.As(err, &oe) {
		oe = &opError{op: "transport", err: err}
	}
	return &TransportError{
		Op:     oe.op,
		Index:  index,
		Record: line,
		Acked:  t.stats.Acked,
		Err:    oe.err,
	}
}

// reportProgress calls the progress callback if configured.
func (s *Session) reportProgress(progress Progress) {
	if s.config.ProgressCallback != nil {
		s.config.ProgressCallback(progress)
	}
}

// emit passes an event to every configured observer.
func (s *Session) emit(ev Event) {
	for _, cb := range s.config.EventCallbacks {
		cb(ev)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Session) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
