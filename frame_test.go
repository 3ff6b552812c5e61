package ross

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func canonicalFrame() Frame {
	return Frame{
		NotErrorFlag:   true,
		StartFrameFlag: false,
		MultiFrameFlag: true,
		FrameID:        CurrentFrameID(0x0555),
		DeviceAddress:  0x5555,
		DataLen:        8,
		Data:           [8]byte{0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55},
	}
}

// TestCANIDEncode checks a known-good extended CAN identifier encoding.
func TestCANIDEncode(t *testing.T) {
	id, data := EncodeCANFrame(canonicalFrame())
	assert.Equal(t, uint32(0x14055555), id)
	assert.Equal(t, []byte{0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}, data)
}

func TestCANFrameRoundTrip(t *testing.T) {
	type suite struct {
		name  string
		frame Frame
	}

	testCases := []suite{
		{name: "multi_frame", frame: canonicalFrame()},
		{
			name: "single_frame",
			frame: Frame{
				NotErrorFlag:   true,
				StartFrameFlag: true,
				MultiFrameFlag: false,
				FrameID:        LastFrameID(0),
				DeviceAddress:  0xabab,
				DataLen:        4,
				Data:           [8]byte{0x00, 0x03, 0x01, 0x23},
			},
		},
		{
			name: "start_of_multi_frame",
			frame: Frame{
				NotErrorFlag:   true,
				StartFrameFlag: true,
				MultiFrameFlag: true,
				FrameID:        LastFrameID(1),
				DeviceAddress:  0xabab,
				DataLen:        8,
				Data:           [8]byte{0x01, 0x00, 0x04, 0x01, 0x23, 0x00, 0x05, 0x00},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, data := EncodeCANFrame(tc.frame)
			got, err := DecodeCANFrame(id, true, false, data)
			assert.NoError(t, err)
			assert.Equal(t, tc.frame.canonicalize(), got)
		})
	}
}

func TestDecodeCANFrameRejectsStandardAndRemote(t *testing.T) {
	_, err := DecodeCANFrame(0, false, false, nil)
	assert.ErrorIs(t, err, ErrFrameIsStandard)

	_, err = DecodeCANFrame(0, true, true, nil)
	assert.ErrorIs(t, err, ErrFrameIsRemote)
}

func TestDecodeCANFrameMissingID(t *testing.T) {
	// multi_frame_flag set but no data byte to carry the low id byte.
	id := uint32(1<<28 | 1<<26)
	_, err := DecodeCANFrame(id, true, false, nil)
	assert.ErrorIs(t, err, ErrFrameIDMissing)
}

func TestDecodeCANFrameCanonicalisesSingleFrame(t *testing.T) {
	id := uint32(1<<28 | 1<<27) // not_error, start, no multi
	f, err := DecodeCANFrame(id, true, false, []byte{0x01, 0x02})
	assert.NoError(t, err)
	assert.True(t, f.StartFrameFlag)
	assert.Equal(t, LastFrameID(0), f.FrameID)
}

// TestByteStreamEncode checks a known-good byte-stream record encoding.
func TestByteStreamEncode(t *testing.T) {
	want := []byte{0x0e, 0xa5, 0x55, 0x55, 0x55, 0x08, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}
	assert.Equal(t, want, EncodeByteStream(canonicalFrame()))
}

func TestByteStreamRoundTrip(t *testing.T) {
	for _, f := range []Frame{
		canonicalFrame(),
		{
			NotErrorFlag:   false,
			StartFrameFlag: true,
			MultiFrameFlag: false,
			FrameID:        LastFrameID(0),
			DeviceAddress:  0x0000,
			DataLen:        0,
		},
	} {
		encoded := EncodeByteStream(f)
		got, err := DecodeByteStream(encoded)
		assert.NoError(t, err)
		assert.Equal(t, f.canonicalize(), got)
	}
}

func TestDecodeByteStreamWrongSize(t *testing.T) {
	record := []byte{0xa5, 0x55, 0x55, 0x55, 0x09, 0x55, 0x55, 0x55} // data_len claims 9, only 3 bytes follow
	_, err := DecodeByteStream(cobsEncode(record))
	assert.ErrorIs(t, err, ErrFrameWrongSize)
}

func TestDecodeByteStreamCobsError(t *testing.T) {
	_, err := DecodeByteStream([]byte{0x05, 0x01})
	assert.ErrorIs(t, err, ErrCOBS)
}
