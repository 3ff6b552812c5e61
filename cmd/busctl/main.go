// Command busctl is a small host-side tool for talking to devices over
// a ross-protocol bus: send one event, listen for traffic, or monitor
// the bus to a capture file while printing a live decode.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	ross "github.com/linasdev/ross-protocol"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a YAML config file")
		transport  = pflag.StringP("transport", "t", "", "named transport from the config file, a CAN interface name, or a serial device path")
		address    = pflag.StringP("address", "a", "0x0001", "this tool's own device address")
		baud       = pflag.Int("baud", 115200, "baud rate, for serial transports")
		capture    = pflag.String("capture", "", "strftime pattern for monitor's capture file of decoded packets")
		verbose    = pflag.BoolP("verbose", "v", false, "debug-level logging")
	)
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: busctl [flags] send <kind> <args...> | listen | monitor")
		os.Exit(2)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", "err", err)
	}

	local, err := parseAddress(*address)
	if err != nil {
		logger.Fatal("parse address", "err", err)
	}
	if cfg.LocalAddress != 0 && *address == "0x0001" {
		local = cfg.LocalAddress
	}

	wire, err := openTransport(cfg, *transport, *baud)
	if err != nil {
		logger.Fatal("open transport", "err", err)
	}

	dispatcher := ross.NewDispatcher(local, wire)

	switch cmd := args[0]; cmd {
	case "send":
		if len(args) < 2 {
			logger.Fatal("send needs an event kind")
		}
		event, err := buildEvent(args[1], local, args[2:])
		if err != nil {
			logger.Fatal("build event", "err", err)
		}
		packet := event.ToPacket()
		if err := dispatcher.SendPacket(&packet); err != nil {
			logger.Fatal("send packet", "err", err)
		}
		logger.Info("sent", "event", describe(&packet))

	case "listen":
		runListen(dispatcher, logger)

	case "monitor":
		runMonitor(dispatcher, logger, *capture)

	default:
		logger.Fatal("unknown subcommand", "cmd", cmd)
	}
}

// runListen ticks the dispatcher forever, logging every packet it
// sees regardless of address (a bus sniffer, not just this device's
// own traffic).
func runListen(d *ross.Dispatcher, logger *log.Logger) {
	d.AddPacketHandler(func(packet *ross.Packet, d *ross.Dispatcher) {
		logger.Info(describe(packet))
	}, true)

	for {
		if err := d.Tick(); err != nil {
			logger.Error("tick", "err", err)
		}
	}
}
