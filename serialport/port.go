// Package serialport connects a flasher.Session to a serial port.
//
// Ports are opened 8N1 without flow control. Reads return (0, nil) when the
// read timeout expires, which is what flasher.Transport expects.
package serialport

import (
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/moffa90/go-hexflash/protocol"
)

// Config describes the serial link.
type Config struct {
	// Name is the port name, e.g. /dev/ttyUSB0 or COM3
	Name string

	// BaudRate defaults to protocol.DefaultBaudRate
	BaudRate int

	// ReadTimeout bounds each wait for a reply, defaults to
	// protocol.DefaultReadTimeout
	ReadTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaudRate <= 0 {
		c.BaudRate = protocol.DefaultBaudRate
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = protocol.DefaultReadTimeout
	}
	return c
}

// mode returns the 8N1 line settings for c.
func (c Config) mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: protocol.DefaultDataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// device is the part of serial.Port used by Port.
type device interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Drain() error
	ResetInputBuffer() error
	ResetOutputBuffer() error
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Port is an open serial port. It implements flasher.Transport.
type Port struct {
	name string
	dev  device
}

// openPort is replaced in tests.
var openPort = func(name string, mode *serial.Mode) (device, error) {
	return serial.Open(name, mode)
}

// Open opens the port described by cfg and clears both buffers.
//
// Example:
//
//	port, err := serialport.Open(serialport.Config{Name: "/dev/ttyUSB0"})
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
func Open(cfg Config) (*Port, error) {
	if cfg.Name == "" {
		return nil, errors.New("port name cannot be empty")
	}
	cfg = cfg.withDefaults()

	dev, err := openPort(cfg.Name, cfg.mode())
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Name)
	}

	if err := dev.SetReadTimeout(cfg.ReadTimeout); err != nil {
		dev.Close()
		return nil, errors.Wrapf(err, "set read timeout on %s", cfg.Name)
	}

	p := &Port{name: cfg.Name, dev: dev}
	if err := p.reset(); err != nil {
		dev.Close()
		return nil, err
	}
	return p, nil
}

func (p *Port) reset() error {
	if err := p.dev.ResetInputBuffer(); err != nil {
		return errors.Wrapf(err, "clear input buffer on %s", p.name)
	}
	if err := p.dev.ResetOutputBuffer(); err != nil {
		return errors.Wrapf(err, "clear output buffer on %s", p.name)
	}
	return nil
}

// Name returns the port name.
func (p *Port) Name() string { return p.name }

func (p *Port) Write(b []byte) (int, error) {
	n, err := p.dev.Write(b)
	if err != nil {
		return n, errors.Wrapf(err, "write %s", p.name)
	}
	return n, nil
}

// Flush waits until all written bytes have been transmitted.
func (p *Port) Flush() error {
	return errors.Wrapf(p.dev.Drain(), "drain %s", p.name)
}

func (p *Port) Read(b []byte) (int, error) {
	n, err := p.dev.Read(b)
	if err != nil {
		return n, errors.Wrapf(err, "read %s", p.name)
	}
	return n, nil
}

// ClearInput discards bytes received but not yet read.
func (p *Port) ClearInput() error {
	return errors.Wrapf(p.dev.ResetInputBuffer(), "clear input buffer on %s", p.name)
}

func (p *Port) Close() error {
	return errors.Wrapf(p.dev.Close(), "close %s", p.name)
}
