package main

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/alecthomas/kong"
)

// addrMapper decodes integers written in decimal or with a 0x prefix.
type addrMapper struct {
	bits int
}

func (m addrMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("address", &value)
	if err != nil {
		return err
	}

	switch target.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 0, m.bits)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", value, err)
		}
		target.SetUint(u)
	default:
		i, err := strconv.ParseInt(value, 0, m.bits)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", value, err)
		}
		target.SetInt(i)
	}
	return nil
}
