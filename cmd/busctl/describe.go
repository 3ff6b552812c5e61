package main

import (
	"fmt"

	ross "github.com/linasdev/ross-protocol"
)

// describe renders packet as a human-readable line for listen/monitor.
// It is best-effort: a packet whose data is too short to even carry an
// event code, or whose code this CLI doesn't recognise, still prints
// with its raw bytes rather than being dropped.
func describe(packet *ross.Packet) string {
	if len(packet.Data) < 2 {
		return fmt.Sprintf("address=%s error=%v raw=%x (too short for an event code)", ross.FormatAddress(packet.DeviceAddress), packet.IsError, packet.Data)
	}

	code := ross.EventCode(uint16(packet.Data[0])<<8 | uint16(packet.Data[1]))

	switch code {
	case ross.AckEventCode:
		if e, err := ross.DecodeAckEvent(packet); err == nil {
			return fmt.Sprintf("ACK receiver=%s transmitter=%s", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.TransmitterAddress))
		}
	case ross.DataEventCode:
		if e, err := ross.DecodeDataEvent(packet); err == nil {
			return fmt.Sprintf("DATA receiver=%s transmitter=%s data=%x", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.TransmitterAddress), e.Data)
		}
	case ross.BootloaderHelloEventCode:
		if e, err := ross.DecodeBootloaderHelloEvent(packet); err == nil {
			return fmt.Sprintf("BOOTLOADER_HELLO address=%s", ross.FormatAddress(e.BootloaderAddress))
		}
	case ross.ProgrammerHelloEventCode:
		if e, err := ross.DecodeProgrammerHelloEvent(packet); err == nil {
			return fmt.Sprintf("PROGRAMMER_HELLO address=%s", ross.FormatAddress(e.ProgrammerAddress))
		}
	case ross.ConfiguratorHelloEventCode:
		if _, err := ross.DecodeConfiguratorHelloEvent(packet); err == nil {
			return "CONFIGURATOR_HELLO broadcast"
		}
	case ross.ButtonPressedEventCode:
		if e, err := ross.DecodeButtonPressedEvent(packet); err == nil {
			return fmt.Sprintf("BUTTON_PRESSED receiver=%s button=%s index=%d", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.ButtonAddress), e.Index)
		}
	case ross.ButtonReleasedEventCode:
		if e, err := ross.DecodeButtonReleasedEvent(packet); err == nil {
			return fmt.Sprintf("BUTTON_RELEASED receiver=%s button=%s index=%d", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.ButtonAddress), e.Index)
		}
	case ross.RelaySetStateEventCode:
		if e, err := ross.DecodeRelaySetStateEvent(packet); err == nil {
			return fmt.Sprintf("RELAY_SET_STATE receiver=%s transmitter=%s index=%d state=%d", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.TransmitterAddress), e.Index, e.State)
		}
	case ross.RelayFlipStateEventCode:
		if e, err := ross.DecodeRelayFlipStateEvent(packet); err == nil {
			return fmt.Sprintf("RELAY_FLIP_STATE receiver=%s transmitter=%s index=%d", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.TransmitterAddress), e.Index)
		}
	case ross.BcmChangeBrightnessEventCode:
		if e, err := ross.DecodeBcmChangeBrightnessEvent(packet); err == nil {
			return fmt.Sprintf("BCM_CHANGE_BRIGHTNESS receiver=%s transmitter=%s index=%d value=%+v", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.TransmitterAddress), e.Index, e.Value)
		}
	case ross.BcmAnimateBrightnessEventCode:
		if e, err := ross.DecodeBcmAnimateBrightnessEvent(packet); err == nil {
			return fmt.Sprintf("BCM_ANIMATE_BRIGHTNESS receiver=%s transmitter=%s index=%d target=%+v duration=%dms", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.TransmitterAddress), e.Index, e.Target, e.Duration)
		}
	case ross.MessageEventCode:
		if e, err := ross.DecodeMessageEvent(packet); err == nil {
			return fmt.Sprintf("MESSAGE receiver=%s transmitter=%s code=0x%04x value=%+v", ross.FormatAddress(e.ReceiverAddress), ross.FormatAddress(e.TransmitterAddress), e.Code, e.Value)
		}
	case ross.ProgrammerSetDeviceAddressEventCode:
		if e, err := ross.DecodeProgrammerSetDeviceAddressEvent(packet); err == nil {
			return fmt.Sprintf("PROGRAMMER_SET_DEVICE_ADDRESS programmer=%s new=%s", ross.FormatAddress(e.ProgrammerAddress), ross.FormatAddress(e.NewAddress))
		}
	}

	return fmt.Sprintf("address=%s error=%v code=0x%04x raw=%x", ross.FormatAddress(packet.DeviceAddress), packet.IsError, code, packet.Data)
}
