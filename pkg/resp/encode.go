package resp

import (
	"math"
	"strconv"
)

// Encode renders a frame into its wire representation. Encoding is
// total: every constructible frame has exactly one canonical byte
// form, and Decode(Encode(f)) yields a frame equal to f.
func Encode(f Frame) []byte {
	return f.appendRESP(make([]byte, 0, 64))
}

const crlf = "\r\n"

func (s SimpleString) appendRESP(dst []byte) []byte {
	dst = append(dst, '+')
	dst = append(dst, s...)
	return append(dst, crlf...)
}

func (e SimpleError) appendRESP(dst []byte) []byte {
	dst = append(dst, '-')
	dst = append(dst, e...)
	return append(dst, crlf...)
}

func (i Integer) appendRESP(dst []byte) []byte {
	dst = append(dst, ':')
	dst = strconv.AppendInt(dst, int64(i), 10)
	return append(dst, crlf...)
}

func (b BulkString) appendRESP(dst []byte) []byte {
	dst = append(dst, '$')
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, crlf...)
	dst = append(dst, b...)
	return append(dst, crlf...)
}

func (a Array) appendRESP(dst []byte) []byte {
	dst = append(dst, '*')
	dst = strconv.AppendInt(dst, int64(len(a)), 10)
	dst = append(dst, crlf...)
	for _, f := range a {
		dst = f.appendRESP(dst)
	}
	return dst
}

func (Null) appendRESP(dst []byte) []byte {
	return append(dst, '_', '\r', '\n')
}

func (b Boolean) appendRESP(dst []byte) []byte {
	if b {
		return append(dst, '#', 't', '\r', '\n')
	}
	return append(dst, '#', 'f', '\r', '\n')
}

func (d Double) appendRESP(dst []byte) []byte {
	dst = append(dst, ',')
	dst = appendDouble(dst, float64(d))
	return append(dst, crlf...)
}

// appendDouble writes the canonical text form of a double. NaN and
// the infinities use fixed spellings, and negative zero collapses to
// zero so that equal doubles share one encoding.
func appendDouble(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "nan"...)
	case math.IsInf(f, 1):
		return append(dst, "inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-inf"...)
	}
	if f == 0 {
		f = 0
	}
	return strconv.AppendFloat(dst, f, 'g', -1, 64)
}

func (m Map) appendRESP(dst []byte) []byte {
	dst = append(dst, '%')
	dst = strconv.AppendInt(dst, int64(len(m)), 10)
	dst = append(dst, crlf...)
	// Keys go out as bulk strings: a key may contain CRLF, which the
	// line-oriented simple string form cannot carry.
	for _, k := range m.Keys() {
		dst = BulkString(k).appendRESP(dst)
		dst = m[k].appendRESP(dst)
	}
	return dst
}

func (s Set) appendRESP(dst []byte) []byte {
	dst = append(dst, '~')
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, crlf...)
	for _, f := range sortedCopy(s) {
		dst = f.appendRESP(dst)
	}
	return dst
}
