package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"

	"github.com/moffa90/go-hexflash/flasher"
	"github.com/moffa90/go-hexflash/ihex"
	"github.com/moffa90/go-hexflash/protocol"
	"github.com/moffa90/go-hexflash/serialport"
)

type FlashCmd struct {
	File string `arg:"" name:"file" help:"Binary image to send."`

	Port string `optional:"" short:"p" help:"Serial port. The first port found is used when empty."`
	Base uint32 `optional:"" type:"addr" default:"0" help:"Address of the first image byte, decimal or 0x prefixed."`

	Dry    bool   `optional:"" help:"Print the records instead of sending them."`
	Out    string `optional:"" short:"o" help:"With --dry, write the records to this file."`
	Verify bool   `optional:"" help:"Decode the records and compare them with the image first."`

	ChunkSize int           `optional:"" name:"chunk-size" default:"255" help:"Data bytes per record (1-255)."`
	Ack       string        `optional:"" help:"Acknowledgement per record type, e.g. data=.,eof=!,ext=0x06."`
	Retries   int           `optional:"" default:"3" help:"Resends per record after a NAK or a timeout."`
	Timeout   time.Duration `optional:"" default:"1s" help:"Wait for each reply."`
	Baud      int           `optional:"" default:"115200" help:"Baud rate."`
}

func (f *FlashCmd) Run(c *Context) error {
	if f.ChunkSize < 1 || f.ChunkSize > ihex.MaxDataLength {
		return fmt.Errorf("chunk size must be between 1 and %d, got %d", ihex.MaxDataLength, f.ChunkSize)
	}
	if f.Retries < 0 {
		return fmt.Errorf("retries cannot be negative")
	}
	if f.Out != "" && !f.Dry {
		return fmt.Errorf("--out requires --dry")
	}

	table, err := protocol.ParseAckTable(f.Ack)
	if err != nil {
		return err
	}

	seq, err := ihex.EncodeFile(f.File, f.Base, ihex.WithChunkSize(f.ChunkSize))
	if err != nil {
		return err
	}
	c.log.Info("encoded image",
		"file", f.File,
		"base", fmt.Sprintf("0x%08X", f.Base),
		"records", seq.Len(),
		"bytes", seq.DataBytes(),
	)

	if f.Verify {
		image, err := os.ReadFile(f.File)
		if err != nil {
			return err
		}
		if err := seq.Verify(image, f.Base); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Verification OK.")
	}

	if f.Dry {
		return f.writeRecords(seq)
	}

	name := f.Port
	if name == "" {
		name, err = serialport.Discover()
		if err != nil {
			return err
		}
	}
	c.log.Debug("selected serial port", "port", name)

	port, err := serialport.Open(serialport.Config{
		Name:        name,
		BaudRate:    f.Baud,
		ReadTimeout: f.Timeout,
	})
	if err != nil {
		return err
	}
	defer port.Close()

	out := newConsole(os.Stderr, seq.DataBytes(), isTerminal(os.Stderr))
	session := flasher.New(port,
		flasher.WithLogger(c.log),
		flasher.WithAckTable(table),
		flasher.WithRetries(f.Retries),
		flasher.WithEventCallback(c.metrics.Observe),
		flasher.WithEventCallback(out.event),
		flasher.WithProgressCallback(out.progress),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := session.Transmit(ctx, seq)
	c.metrics.ObserveTransfer(stats, err)
	out.finish(err == nil)
	if err != nil {
		return fmt.Errorf("flashing stopped after %d of %d records: %w", stats.Acked, stats.Records, err)
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "Sent %d records (%d bytes) to %s in %s",
		stats.Acked, stats.Bytes, name, stats.Elapsed.Round(time.Millisecond))
	if stats.Nacks > 0 || stats.Timeouts > 0 {
		fmt.Fprintf(os.Stderr, ", %d nacks, %d timeouts", stats.Nacks, stats.Timeouts)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

func (f *FlashCmd) writeRecords(seq *ihex.Sequence) (err error) {
	var w io.Writer = os.Stdout
	if f.Out != "" {
		file, cerr := os.Create(f.Out)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}

	if _, err := seq.WriteTo(w); err != nil {
		return err
	}
	if f.Out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d records to %s.\n", seq.Len(), f.Out)
	}
	return nil
}
