package ross

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCOBSRoundTrip(t *testing.T) {
	type suite struct {
		name string
		data []byte
	}

	testCases := []suite{
		{name: "empty", data: []byte{}},
		{name: "no_zeroes", data: []byte{0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}},
		{name: "single_zero", data: []byte{0x00}},
		{name: "leading_zero", data: []byte{0x00, 0x01, 0x02}},
		{name: "trailing_zero", data: []byte{0x01, 0x02, 0x00}},
		{name: "interior_zeroes", data: []byte{0x11, 0x00, 0x00, 0x22, 0x00, 0x33}},
		{name: "long_run", data: make([]byte, 600)},
	}

	for i := range testCases[len(testCases)-1].data {
		testCases[len(testCases)-1].data[i] = byte(i + 1)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := cobsEncode(tc.data)
			for _, b := range encoded {
				assert.NotZero(t, b, "cobs output must never contain a zero byte")
			}

			decoded, err := cobsDecode(encoded)
			assert.NoError(t, err)
			assert.Equal(t, tc.data, decoded)
		})
	}
}

func TestCOBSEncodeVector(t *testing.T) {
	// A frame's inner record with no zero bytes in its 13 bytes encodes
	// to a single run of length 14.
	record := []byte{0xa5, 0x55, 0x55, 0x55, 0x08, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}
	want := []byte{0x0e, 0xa5, 0x55, 0x55, 0x55, 0x08, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}

	assert.Equal(t, want, cobsEncode(record))

	got, err := cobsDecode(want)
	assert.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestCOBSDecodeTruncated(t *testing.T) {
	_, err := cobsDecode([]byte{0x05, 0x01, 0x02})
	assert.ErrorIs(t, err, ErrCOBS)
}

func TestCOBSDecodeEmbeddedZero(t *testing.T) {
	_, err := cobsDecode([]byte{0x03, 0x01, 0x00})
	assert.ErrorIs(t, err, ErrCOBS)
}
