package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"

	ross "github.com/linasdev/ross-protocol"
)

// runMonitor is runListen plus, when capturePattern is non-empty, a
// capture file holding one timestamped decoded line (describe's output)
// per packet, named by expanding capturePattern as a
// strftime pattern against the moment monitor started (e.g.
// "bus-%Y%m%d-%H%M%S.log" for one file per run).
func runMonitor(d *ross.Dispatcher, logger *log.Logger, capturePattern string) {
	var capture *os.File
	if capturePattern != "" {
		f, err := strftime.New(capturePattern)
		if err != nil {
			logger.Fatal("parse capture pattern", "err", err)
		}
		name := f.FormatString(time.Now())

		file, err := os.Create(name)
		if err != nil {
			logger.Fatal("create capture file", "err", err)
		}
		capture = file
		defer capture.Close()
		logger.Info("capturing", "file", name)
	}

	d.AddPacketHandler(func(packet *ross.Packet, d *ross.Dispatcher) {
		line := describe(packet)
		logger.Info(line)
		if capture != nil {
			fmt.Fprintf(capture, "%s %s\n", time.Now().Format(time.RFC3339Nano), line)
		}
	}, true)

	for {
		if err := d.Tick(); err != nil {
			logger.Error("tick", "err", err)
		}
	}
}
