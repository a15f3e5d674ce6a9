package flasher

import (
	"time"

	"github.com/moffa90/go-hexflash/protocol"
)

// Config holds the session configuration.
type Config struct {
	// ProgressCallback is called after every acknowledged record (optional)
	ProgressCallback ProgressCallback

	// EventCallbacks observe every handshake step (optional)
	EventCallbacks []EventCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// AckTable holds the expected reply byte per record type
	AckTable protocol.AckTable

	// Retries is the number of times a record is resent after a negative
	// acknowledgement or a missing reply
	Retries int

	// BackoffInitial is the delay before the first resend of a record.
	// Zero disables the delay.
	BackoffInitial time.Duration

	// BackoffMax caps the delay, which doubles on every resend
	BackoffMax time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		AckTable:       protocol.DefaultAckTable(),
		Retries:        3,
		BackoffInitial: 50 * time.Millisecond,
		BackoffMax:     1 * time.Second,
	}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithProgressCallback sets a callback function to track transfer progress.
//
// Example:
//
//	session := flasher.New(port,
//	    flasher.WithProgressCallback(func(p flasher.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithEventCallback adds an observer for handshake events.
// It may be given more than once.
//
// Example:
//
//	session := flasher.New(port,
//	    flasher.WithEventCallback(func(e flasher.Event) {
//	        if e.Kind == flasher.EventNack {
//	            fmt.Printf("record %d rejected with 0x%02X\n", e.Index, e.Reply)
//	        }
//	    }),
//	)
func WithEventCallback(callback EventCallback) Option {
	return func(c *Config) {
		if callback != nil {
			c.EventCallbacks = append(c.EventCallbacks, callback)
		}
	}
}

// WithLogger sets a logger for the session operations.
//
// Example:
//
//	session := flasher.New(port, flasher.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithAckTable sets the acknowledgement expected for each record type.
//
// Example:
//
//	table, _ := protocol.ParseAckTable("data=.,eof=!,ext=.")
//	session := flasher.New(port, flasher.WithAckTable(table))
func WithAckTable(table protocol.AckTable) Option {
	return func(c *Config) {
		if table != nil {
			c.AckTable = table
		}
	}
}

// WithRetries sets the number of resends allowed per record.
//
// Example:
//
//	session := flasher.New(port, flasher.WithRetries(10))
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.Retries = retries
		}
	}
}

// WithBackoff sets the delay before resending a record. The delay starts at
// initial and doubles on every resend up to max. A zero initial delay
// resends immediately.
//
// Example:
//
//	session := flasher.New(port, flasher.WithBackoff(10*time.Millisecond, 500*time.Millisecond))
func WithBackoff(initial, max time.Duration) Option {
	return func(c *Config) {
		if initial < 0 || max < 0 {
			return
		}
		c.BackoffInitial = initial
		c.BackoffMax = max
		if c.BackoffMax < c.BackoffInitial {
			c.BackoffMax = c.BackoffInitial
		}
	}
}

// backoffDelay returns the wait before resend number retry (1-based).
func (c Config) backoffDelay(retry int) time.Duration {
	delay := c.BackoffInitial
	for i := 1; i < retry && delay < c.BackoffMax; i++ {
		delay *= 2
	}
	if delay > c.BackoffMax {
		delay = c.BackoffMax
	}
	return delay
}
