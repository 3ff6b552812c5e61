// Package gpioreset drives a device's hardware reset line from the
// host side of a bus, for the one step the protocol itself leaves to
// external hardware: forcing a device back into its bootloader before
// a firmware or config upgrade. original_source assumes a human or a
// programmer jig holds the device in reset already; this package is
// the host-CLI equivalent of that jig.
package gpioreset

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/warthog618/go-gpiocdev"
)

// outputLine is the capability Line needs from a requested GPIO line:
// a *gpiocdev.Line in production, a fake in tests that have no real
// gpiochip to request.
type outputLine interface {
	SetValue(value int) error
	Close() error
}

// Line drives one GPIO line, active-low by convention (pulling it low
// asserts reset), matching how most reset circuits on these boards are
// wired.
type Line struct {
	line outputLine
}

// Open requests offset on chip (e.g. "gpiochip0") as an output, idle
// high (reset deasserted).
func Open(chip string, offset int) (*Line, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(1))
	if err != nil {
		return nil, eris.Wrapf(err, "gpioreset: request %s:%d", chip, offset)
	}
	return &Line{line: line}, nil
}

// Close releases the line, leaving it at its last driven value.
func (l *Line) Close() error {
	return l.line.Close()
}

// Assert pulls the line low (reset asserted).
func (l *Line) Assert() error {
	return eris.Wrap(l.line.SetValue(0), "gpioreset: assert")
}

// Deassert releases the line back high (reset deasserted).
func (l *Line) Deassert() error {
	return eris.Wrap(l.line.SetValue(1), "gpioreset: deassert")
}

// Pulse asserts reset, holds it for hold, then deasserts it: the
// sequence that reboots a device into its bootloader ahead of a
// firmware or config upgrade. Nothing in this module calls it; busctl
// has no upgrade subcommand.
func (l *Line) Pulse(hold time.Duration) error {
	if err := l.Assert(); err != nil {
		return err
	}
	time.Sleep(hold)
	return l.Deassert()
}
