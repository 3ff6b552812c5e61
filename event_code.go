package ross

// EventCode is the 16-bit discriminator occupying bytes 0..=1 of a
// packet's data, identifying which event variant the packet carries.
type EventCode uint16

// The closed set of event codes. SystemTickEventCode is
// internal to a dispatcher implementation and is never transmitted or
// decoded from a packet.
const (
	BootloaderHelloEventCode                EventCode = 0x0000
	ProgrammerHelloEventCode                EventCode = 0x0001
	ProgrammerStartFirmwareUpgradeEventCode EventCode = 0x0002
	AckEventCode                            EventCode = 0x0003
	DataEventCode                           EventCode = 0x0004
	ConfiguratorHelloEventCode              EventCode = 0x0005
	BcmChangeBrightnessEventCode            EventCode = 0x0006
	ButtonPressedEventCode                  EventCode = 0x0007
	ButtonReleasedEventCode                 EventCode = 0x0008
	SystemTickEventCode                     EventCode = 0x0009
	ProgrammerStartConfigUpgradeEventCode   EventCode = 0x000a
	ProgrammerSetDeviceAddressEventCode     EventCode = 0x000b
	MessageEventCode                        EventCode = 0x000c
	BcmAnimateBrightnessEventCode           EventCode = 0x000d
	RelaySetStateEventCode                  EventCode = 0x000e
	RelayFlipStateEventCode                 EventCode = 0x000f
)
