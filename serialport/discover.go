package serialport

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"go.bug.st/serial/enumerator"
)

// ErrNoPort is returned by Discover when the system has no serial port.
var ErrNoPort = errors.New("no serial port found")

// PortInfo describes a serial port found on the system.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

func (p PortInfo) String() string {
	if !p.IsUSB {
		return p.Name
	}
	s := fmt.Sprintf("%s [%s:%s]", p.Name, p.VID, p.PID)
	if p.Product != "" {
		s += " " + p.Product
	}
	if p.SerialNumber != "" {
		s += " (" + p.SerialNumber + ")"
	}
	return s
}

// detailedPorts is replaced in tests.
var detailedPorts = enumerator.GetDetailedPortsList

// List returns the serial ports on the system sorted by name.
func List() ([]PortInfo, error) {
	details, err := detailedPorts()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate serial ports")
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		ports = append(ports, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Name < ports[j].Name })
	return ports, nil
}

// Discover returns the name of the first serial port, or ErrNoPort.
func Discover() (string, error) {
	ports, err := List()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", ErrNoPort
	}
	return ports[0].Name, nil
}
