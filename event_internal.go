package ross

// SystemTickEventCode is reserved for a dispatcher
// implementation's own internal bookkeeping. It is never transmitted or
// parsed from a packet, so it has no accompanying event type or
// PacketEncoder — its only role is to keep the event code space aware
// that 0x0009 is taken.
