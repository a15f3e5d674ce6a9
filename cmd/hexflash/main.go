package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/moffa90/go-hexflash/internal/logging"
	"github.com/moffa90/go-hexflash/internal/metrics"
)

type Context struct {
	log     *logging.Logger
	metrics *metrics.Collector
}

var CLI struct {
	LogLevel    string `optional:"" help:"Log level: debug, info, warn, error or disabled." default:"warn"`
	NoColor     bool   `optional:"" help:"Disable colored output."`
	MetricsFile string `optional:"" help:"Write Prometheus metrics to this file when done."`

	Flash FlashCmd `cmd:"" help:"Encode a binary image as Intel HEX and send it to the bootloader."`
	Ports PortsCmd `cmd:"" help:"List serial ports."`
}

func main() {
	k, err := kong.New(&CLI,
		kong.Name("hexflash"),
		kong.Description("Send binary images to Intel HEX bootloaders over a serial port."),
		kong.NamedMapper("addr", addrMapper{bits: 32}))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	ctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	if CLI.NoColor {
		color.NoColor = true
	}

	logger, err := logging.New(os.Stderr, CLI.LogLevel, color.NoColor)
	if err != nil {
		fmt.Println("Invalid log level:", err)
		os.Exit(2)
	}

	c := &Context{
		log:     logger,
		metrics: metrics.New(),
	}

	err = ctx.Run(c)

	if CLI.MetricsFile != "" {
		if werr := c.metrics.WriteTextfile(CLI.MetricsFile); werr != nil {
			logger.Error("failed to write metrics", "file", CLI.MetricsFile, "error", werr)
		}
	}

	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
