package main

import (
	"fmt"
	"strconv"

	ross "github.com/linasdev/ross-protocol"
)

// parseAddress parses a device address given as hex ("0x1234"),
// decimal, or the literal "broadcast".
func parseAddress(s string) (uint16, error) {
	if s == "broadcast" {
		return ross.BroadcastAddress, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("busctl: bad address %q: %w", s, err)
	}
	return uint16(v), nil
}

// buildEvent turns a send subcommand's positional arguments into the
// PacketEncoder to dispatch. local is this CLI's own address, used as
// the transmitter/programmer address of events that carry one.
func buildEvent(kind string, local uint16, args []string) (ross.PacketEncoder, error) {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("busctl: %q needs %d argument(s), got %d", kind, n, len(args))
		}
		return nil
	}

	switch kind {
	case "ack":
		if err := need(1); err != nil {
			return nil, err
		}
		receiver, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return ross.AckEvent{ReceiverAddress: receiver, TransmitterAddress: local}, nil

	case "data":
		if err := need(2); err != nil {
			return nil, err
		}
		receiver, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return ross.DataEvent{ReceiverAddress: receiver, TransmitterAddress: local, Data: []byte(args[1])}, nil

	case "bootloader-hello":
		if err := need(1); err != nil {
			return nil, err
		}
		programmer, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return ross.BootloaderHelloEvent{ProgrammerAddress: programmer, BootloaderAddress: local}, nil

	case "programmer-hello":
		return ross.ProgrammerHelloEvent{ProgrammerAddress: local}, nil

	case "configurator-hello":
		return ross.ConfiguratorHelloEvent{}, nil

	case "programmer-set-device-address":
		if err := need(2); err != nil {
			return nil, err
		}
		receiver, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		newAddr, err := parseAddress(args[1])
		if err != nil {
			return nil, err
		}
		return ross.ProgrammerSetDeviceAddressEvent{ReceiverAddress: receiver, ProgrammerAddress: local, NewAddress: newAddr}, nil

	case "relay-set":
		if err := need(3); err != nil {
			return nil, err
		}
		receiver, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		index, err := strconv.ParseUint(args[1], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("busctl: bad index %q: %w", args[1], err)
		}
		state, err := strconv.ParseUint(args[2], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("busctl: bad state %q: %w", args[2], err)
		}
		return ross.RelaySetStateEvent{
			ReceiverAddress:    receiver,
			TransmitterAddress: local,
			Index:              uint8(index),
			State:              ross.RelayValue(state),
		}, nil

	case "relay-flip":
		if err := need(2); err != nil {
			return nil, err
		}
		receiver, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		index, err := strconv.ParseUint(args[1], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("busctl: bad index %q: %w", args[1], err)
		}
		return ross.RelayFlipStateEvent{ReceiverAddress: receiver, TransmitterAddress: local, Index: uint8(index)}, nil

	case "bcm-single":
		if err := need(3); err != nil {
			return nil, err
		}
		receiver, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		index, err := strconv.ParseUint(args[1], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("busctl: bad index %q: %w", args[1], err)
		}
		value, err := strconv.ParseUint(args[2], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("busctl: bad value %q: %w", args[2], err)
		}
		return ross.BcmChangeBrightnessEvent{
			ReceiverAddress:    receiver,
			TransmitterAddress: local,
			Index:              uint8(index),
			Value:              ross.BcmSingle{Value: uint8(value)},
		}, nil

	case "message-u8":
		if err := need(3); err != nil {
			return nil, err
		}
		receiver, code, value, err := parseMessageHeader(args)
		if err != nil {
			return nil, err
		}
		return ross.MessageEvent{ReceiverAddress: receiver, TransmitterAddress: local, Code: code, Value: ross.MessageU8{Value: uint8(value)}}, nil

	case "message-u16":
		if err := need(3); err != nil {
			return nil, err
		}
		receiver, code, value, err := parseMessageHeader(args)
		if err != nil {
			return nil, err
		}
		return ross.MessageEvent{ReceiverAddress: receiver, TransmitterAddress: local, Code: code, Value: ross.MessageU16{Value: uint16(value)}}, nil

	case "message-u32":
		if err := need(3); err != nil {
			return nil, err
		}
		receiver, code, value, err := parseMessageHeader(args)
		if err != nil {
			return nil, err
		}
		return ross.MessageEvent{ReceiverAddress: receiver, TransmitterAddress: local, Code: code, Value: ross.MessageU32{Value: uint32(value)}}, nil

	case "message-bool":
		if err := need(3); err != nil {
			return nil, err
		}
		receiver, code, value, err := parseMessageHeader(args)
		if err != nil {
			return nil, err
		}
		return ross.MessageEvent{ReceiverAddress: receiver, TransmitterAddress: local, Code: code, Value: ross.MessageBool{Value: value != 0}}, nil

	default:
		return nil, fmt.Errorf("busctl: unknown event kind %q", kind)
	}
}

// parseMessageHeader parses the receiver/code/value arguments common to
// every message-* send kind.
func parseMessageHeader(args []string) (receiver uint16, code uint16, value uint64, err error) {
	receiver, err = parseAddress(args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("busctl: bad message code %q: %w", args[1], err)
	}
	value, err = strconv.ParseUint(args[2], 0, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("busctl: bad message value %q: %w", args[2], err)
	}
	return receiver, uint16(c), value, nil
}
