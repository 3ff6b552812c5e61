// Package serial implements ross.Transport over a host serial port
// (a USB-CDC bridge, an FTDI adapter, a real UART) using the
// length-delimited byte-stream framing of ross.EncodeByteStream /
// ross.DecodeByteStream: a 0x00 delimiter byte, a one-byte length, then
// that many COBS-encoded bytes.
package serial

import (
	"errors"
	"io"

	"github.com/pkg/term"
	"github.com/rotisserie/eris"

	ross "github.com/linasdev/ross-protocol"
)

// ErrFrameTooLarge is returned when a frame is longer than maxFrameLen,
// the most the wire format's one-byte length field can express. An
// encoded frame of this protocol is at most 14 bytes long.
var ErrFrameTooLarge = errors.New("serial: declared frame length is implausibly large")

const maxFrameLen = 255

// port is the capability Serial needs from the underlying device: a
// *term.Term in production, a pty end or anything else
// io.ReadWriteCloser-shaped in tests.
type port interface {
	io.Reader
	io.Writer
	io.Closer
}

// Serial is a ross.Transport backed by a host serial port opened in
// raw mode.
type Serial struct {
	port          port
	packetBuilder *ross.PacketBuilder
}

// Open opens device (e.g. "/dev/ttyUSB0") in raw mode at baud bits per
// second.
func Open(device string, baud int) (*Serial, error) {
	p, err := term.Open(device, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, eris.Wrapf(err, "serial: open %q", device)
	}
	return &Serial{port: p}, nil
}

// newSerial wraps an already-open port, for tests that stand a serial
// port in with a pty.
func newSerial(p port) *Serial {
	return &Serial{port: p}
}

// Close releases the underlying port.
func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) readByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s.port, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// feed hands one decoded Frame to the transport's in-progress
// PacketBuilder, starting a new one if none is in progress and
// resetting it on any error.
func (s *Serial) feed(frame ross.Frame) (packet ross.Packet, ok bool, err error) {
	if s.packetBuilder == nil {
		builder, err := ross.NewPacketBuilder(frame)
		if err != nil {
			return ross.Packet{}, false, err
		}
		s.packetBuilder = builder
	} else if err := s.packetBuilder.AddFrame(frame); err != nil {
		s.packetBuilder = nil
		return ross.Packet{}, false, err
	}

	if s.packetBuilder.FramesLeft() != 0 {
		return ross.Packet{}, false, nil
	}

	packet, err = s.packetBuilder.Build()
	s.packetBuilder = nil
	return packet, err == nil, err
}

// TryGetPacket implements ross.Transport. It blocks on the port for one
// delimiter-framed record at a time — a 0x00 byte, a length byte, then
// that many bytes — decodes it into a Frame and feeds it to the
// transport's PacketBuilder, returning as soon as one packet completes.
// An EOF while waiting for a delimiter is reported as
// ErrNoPacketReceived, a normal empty tick rather than a failure. Open
// sets no read timeout, so on a real port the call waits until data
// arrives.
func (s *Serial) TryGetPacket() (ross.Packet, error) {
	for {
		b, err := s.readByte()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return ross.Packet{}, ross.ErrNoPacketReceived
			}
			return ross.Packet{}, eris.Wrap(err, "serial: read")
		}
		if b != 0x00 {
			continue // resynchronising: anything before the next delimiter is noise
		}

		length, err := s.readByte()
		if err != nil {
			return ross.Packet{}, eris.Wrap(err, "serial: read length byte")
		}
		if int(length) > maxFrameLen {
			return ross.Packet{}, ErrFrameTooLarge
		}

		record := make([]byte, length)
		if _, err := io.ReadFull(s.port, record); err != nil {
			return ross.Packet{}, eris.Wrap(err, "serial: read frame body")
		}

		frame, err := ross.DecodeByteStream(record)
		if err != nil {
			s.packetBuilder = nil
			return ross.Packet{}, err
		}

		packet, done, err := s.feed(frame)
		if err != nil {
			return ross.Packet{}, err
		}
		if done {
			return packet, nil
		}
	}
}

// TrySendPacket implements ross.Transport. It splits packet into
// frames and writes each as a delimiter, a length byte, and the
// COBS-encoded record, straight to the port; there is no separate
// flush step.
func (s *Serial) TrySendPacket(packet *ross.Packet) error {
	for _, frame := range packet.ToFrames() {
		encoded := ross.EncodeByteStream(frame)
		if len(encoded) > maxFrameLen {
			return ErrFrameTooLarge
		}

		header := []byte{0x00, byte(len(encoded))}
		if _, err := s.port.Write(header); err != nil {
			return eris.Wrap(err, "serial: write frame header")
		}
		if _, err := s.port.Write(encoded); err != nil {
			return eris.Wrap(err, "serial: write frame body")
		}
	}
	return nil
}
