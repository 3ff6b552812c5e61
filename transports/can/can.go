// Package can implements ross.Transport over a Linux SocketCAN raw
// socket: an AF_CAN/SOCK_RAW/CAN_RAW socket bound to one network
// interface (can0, vcan0, ...), speaking the classic 16-byte
// struct can_frame wire layout directly through golang.org/x/sys/unix
// rather than through a kernel driver's own Go binding.
package can

import (
	"encoding/binary"
	"errors"

	"github.com/rotisserie/eris"
	"golang.org/x/sys/unix"

	ross "github.com/linasdev/ross-protocol"
)

// can_id flags, from linux/can.h.
const (
	canEFFFlag = 0x80000000 // extended frame format
	canRTRFlag = 0x40000000 // remote transmission request
	canErrFlag = 0x20000000 // error frame
	canEFFMask = 0x1fffffff
)

// frameSize is sizeof(struct can_frame): 4-byte can_id, 1-byte can_dlc,
// 3 reserved/pad bytes, 8 bytes of data.
const frameSize = 16

// ErrShortRead is returned when a read from the CAN socket returned
// fewer than frameSize bytes: SocketCAN never does partial struct
// can_frame reads, so this means the socket is misconfigured (CAN FD
// enabled without requesting the larger frame, for instance).
var ErrShortRead = errors.New("can: short read from socket, wrong frame size")

// Can is a ross.Transport backed by one SocketCAN interface.
type Can struct {
	fd            int
	packetBuilder *ross.PacketBuilder
}

// Open binds a CAN_RAW socket to the named interface (e.g. "can0") and
// sets it non-blocking so TryGetPacket can poll it on every call
// without stalling the caller.
func Open(ifname string) (*Can, error) {
	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, eris.Wrap(err, "can: open socket")
	}

	ifi, err := unix.IfNameToIndex(ifname)
	if err != nil {
		unix.Close(fd)
		return nil, eris.Wrapf(err, "can: resolve interface %q", ifname)
	}

	addr := &unix.SockaddrCAN{Ifindex: int(ifi)}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, eris.Wrapf(err, "can: bind to %q", ifname)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, eris.Wrap(err, "can: set non-blocking")
	}

	return &Can{fd: fd}, nil
}

// Close releases the underlying socket.
func (c *Can) Close() error {
	return unix.Close(c.fd)
}

// decodeWireFrame parses one raw struct can_frame buffer into a
// ross.Frame, reporting ok=false (and a nil error) for a controller
// error frame, which carries no protocol data.
func decodeWireFrame(buf []byte) (frame ross.Frame, ok bool, err error) {
	canID := binary.LittleEndian.Uint32(buf[0:4])
	if canID&canErrFlag != 0 {
		return ross.Frame{}, false, nil
	}

	dlc := buf[4]
	if dlc > 8 {
		dlc = 8
	}
	data := buf[8 : 8+dlc]
	extended := canID&canEFFFlag != 0
	remote := canID&canRTRFlag != 0

	frame, err = ross.DecodeCANFrame(canID&canEFFMask, extended, remote, data)
	return frame, err == nil, err
}

// encodeWireFrame renders a ross.Frame as a raw struct can_frame
// buffer, always as an extended frame.
func encodeWireFrame(frame ross.Frame) []byte {
	id, data := ross.EncodeCANFrame(frame)

	buf := make([]byte, frameSize)
	binary.LittleEndian.PutUint32(buf[0:4], id|canEFFFlag)
	buf[4] = byte(len(data))
	copy(buf[8:8+len(data)], data)
	return buf
}

// feed hands one decoded Frame to the transport's in-progress
// PacketBuilder (starting a new one if none is in progress), resetting
// the builder on any error so the next frame starts a fresh
// reassembly. ok is true only once a packet has fully arrived.
func (c *Can) feed(frame ross.Frame) (packet ross.Packet, ok bool, err error) {
	if c.packetBuilder == nil {
		builder, err := ross.NewPacketBuilder(frame)
		if err != nil {
			return ross.Packet{}, false, err
		}
		c.packetBuilder = builder
	} else if err := c.packetBuilder.AddFrame(frame); err != nil {
		c.packetBuilder = nil
		return ross.Packet{}, false, err
	}

	if c.packetBuilder.FramesLeft() != 0 {
		return ross.Packet{}, false, nil
	}

	packet, err = c.packetBuilder.Build()
	c.packetBuilder = nil
	return packet, err == nil, err
}

// TryGetPacket implements ross.Transport. It drains every CAN frame
// currently queued on the socket, feeding each into the transport's
// internal PacketBuilder, and returns as soon as one packet completes.
// A frame or builder error discards the in-progress builder and is
// returned as-is, mirroring the original embedded driver's behaviour of
// giving up on a malformed reassembly rather than trying to resync
// mid-packet.
func (c *Can) TryGetPacket() (ross.Packet, error) {
	for {
		buf := make([]byte, frameSize)
		n, err := unix.Read(c.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return ross.Packet{}, ross.ErrNoPacketReceived
			}
			return ross.Packet{}, eris.Wrap(err, "can: read")
		}
		if n != frameSize {
			return ross.Packet{}, ErrShortRead
		}

		frame, decoded, err := decodeWireFrame(buf)
		if err != nil {
			c.packetBuilder = nil
			return ross.Packet{}, err
		}
		if !decoded {
			continue // controller error frame, not protocol data
		}

		packet, done, err := c.feed(frame)
		if err != nil {
			return ross.Packet{}, err
		}
		if done {
			return packet, nil
		}
	}
}

// TrySendPacket implements ross.Transport. It splits packet into
// frames and writes each as a struct can_frame. A write that would
// block (the controller's TX mailboxes are all full) is retried until
// it succeeds or fails for another reason, matching the blocking
// transmit the embedded driver performs against its own mailbox.
func (c *Can) TrySendPacket(packet *ross.Packet) error {
	for _, frame := range packet.ToFrames() {
		buf := encodeWireFrame(frame)

		for {
			_, err := unix.Write(c.fd, buf)
			if err == nil {
				break
			}
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				continue
			}
			return eris.Wrap(err, "can: write")
		}
	}
	return nil
}
