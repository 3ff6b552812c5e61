//go:build linux

package serial

import (
	"github.com/jochenvg/go-udev"
	"github.com/rotisserie/eris"
)

// Candidate is one USB-serial device Discover found: a device node
// (e.g. "/dev/ttyUSB0") plus whatever vendor/product id udev reports
// for it, so a caller can pick the right one out of several connected
// adapters without hardcoding a path.
type Candidate struct {
	DevNode string
	Vendor  string
	Product string
}

// Discover enumerates tty devices backed by a USB device on the local
// system via udev. busctl does not call it; its serial transport is
// always a device path given on the command line or in the config
// file. It returns no error for "nothing plugged in" — an empty slice is a
// normal outcome, not a failure.
func Discover() ([]Candidate, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("tty"); err != nil {
		return nil, eris.Wrap(err, "serial: udev match subsystem")
	}
	if err := enum.AddMatchIsInitialized(); err != nil {
		return nil, eris.Wrap(err, "serial: udev match initialized")
	}

	devices, err := enum.Devices()
	if err != nil {
		return nil, eris.Wrap(err, "serial: udev enumerate")
	}

	var candidates []Candidate
	for _, d := range devices {
		if d.Devnode() == "" {
			continue
		}
		parent := d.ParentWithSubsystemDevtype("usb", "usb_device")
		if parent == nil {
			continue // not USB-backed, e.g. a platform UART
		}
		candidates = append(candidates, Candidate{
			DevNode: d.Devnode(),
			Vendor:  parent.PropertyValue("ID_VENDOR_ID"),
			Product: parent.PropertyValue("ID_MODEL_ID"),
		})
	}
	return candidates, nil
}
