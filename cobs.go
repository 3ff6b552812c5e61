package ross

import "errors"

// ErrCOBS is returned when a byte-stream frame fails Consistent Overhead
// Byte Stuffing decoding: a zero byte found before the announced run
// length, or a run length that overruns the buffer.
var ErrCOBS = errors.New("ross: cobs decoding failed")

// cobsEncode applies Consistent Overhead Byte Stuffing to src, producing
// a buffer that contains no zero bytes. The scheme is the classic one:
// the output is a sequence of (length, data...) runs, each run's length
// byte giving the distance to the next zero byte in src (or to the end
// of a 254-byte chunk, whichever comes first), with the zero itself
// omitted from the output.
func cobsEncode(src []byte) []byte {
	dst := make([]byte, 0, len(src)+len(src)/254+1)

	codeIdx := len(dst)
	dst = append(dst, 0) // placeholder for the first run's length
	code := byte(1)

	for _, b := range src {
		if b == 0 {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
			continue
		}

		dst = append(dst, b)
		code++

		if code == 0xff {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
		}
	}

	dst[codeIdx] = code
	return dst
}

// cobsDecode reverses cobsEncode. It returns ErrCOBS if src is not a
// well-formed COBS encoding (a run claims more bytes than remain, or a
// literal zero byte appears where only the run-length byte should be).
func cobsDecode(src []byte) ([]byte, error) {
	dst := make([]byte, 0, len(src))

	i := 0
	for i < len(src) {
		code := src[i]
		if code == 0 {
			return nil, ErrCOBS
		}
		i++

		runLen := int(code) - 1
		if i+runLen > len(src) {
			return nil, ErrCOBS
		}

		for _, b := range src[i : i+runLen] {
			if b == 0 {
				return nil, ErrCOBS
			}
		}

		dst = append(dst, src[i:i+runLen]...)
		i += runLen

		if code < 0xff && i < len(src) {
			dst = append(dst, 0)
		}
	}

	return dst, nil
}
