package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/moffa90/go-hexflash/flasher"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// console shows transfer progress on the terminal.
type console struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	warn *color.Color
}

func newConsole(w io.Writer, total int, interactive bool) *console {
	c := &console{
		w:    w,
		warn: color.New(color.FgYellow),
	}
	if interactive {
		c.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Writing"),
			progressbar.OptionShowBytes(true),
		)
	}
	return c
}

func (c *console) progress(p flasher.Progress) {
	if c.bar != nil {
		c.bar.Set(p.BytesSent)
	}
}

func (c *console) event(e flasher.Event) {
	switch e.Kind {
	case flasher.EventNack:
		c.clear()
		c.warn.Fprintf(c.w, "Record %d rejected on attempt %d (reply 0x%02X)\n", e.Index, e.Attempt, e.Reply)
	case flasher.EventTimeout:
		c.clear()
		c.warn.Fprintf(c.w, "Record %d not answered on attempt %d\n", e.Index, e.Attempt)
	}
}

func (c *console) clear() {
	if c.bar != nil {
		c.bar.Clear()
	}
}

func (c *console) finish(ok bool) {
	if c.bar == nil {
		return
	}
	if ok {
		c.bar.Finish()
	}
	io.WriteString(c.w, "\n")
}
