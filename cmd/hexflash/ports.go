package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/moffa90/go-hexflash/serialport"
)

type PortsCmd struct{}

func (p PortsCmd) Run(c *Context) error {
	ports, err := serialport.List()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		color.New(color.FgRed).Println("No serial port found")
		return nil
	}

	for _, port := range ports {
		fmt.Println(port)
	}
	c.log.Debug("listed serial ports", "count", len(ports))
	return nil
}
