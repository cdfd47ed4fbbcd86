package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Protocol limits, to bound memory taken by a single frame.
const (
	// MaxElements limits the element count of a composite frame
	// (array, map pair count, set).
	MaxElements = 64 * 1024

	// MaxBulkLen limits the payload of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxDepth limits composite nesting, bounding the recursion of
	// the measuring pass on adversarial input.
	MaxDepth = 32
)

var (
	// ErrNotComplete means the buffer does not yet hold a complete
	// frame. It is a retry signal, not a parse failure: the buffer is
	// left untouched.
	ErrNotComplete = errors.New("resp: frame not complete")

	// ErrInvalidFrameType means the leading type marker byte is not
	// one of the known markers.
	ErrInvalidFrameType = errors.New("resp: invalid frame type")

	// ErrInvalidFrame means the frame shape is malformed (bad boolean
	// literal, payload after a null marker, non-text map key, missing
	// bulk terminator).
	ErrInvalidFrame = errors.New("resp: invalid frame")

	// ErrInvalidFrameLength means a declared length or count is
	// negative or exceeds the protocol limits.
	ErrInvalidFrameLength = errors.New("resp: invalid frame length")

	// ErrInvalidUTF8 means a text-typed frame carries malformed UTF-8.
	ErrInvalidUTF8 = errors.New("resp: invalid utf-8")
)

// Decode extracts one complete frame from the front of buf, removing
// exactly the bytes the frame occupied. If buf does not yet contain a
// complete frame it returns ErrNotComplete and consumes nothing, so
// the caller can append more bytes and retry. Any other error is a
// protocol violation; the stream cannot be resynchronized after one.
func Decode(buf *bytes.Buffer) (Frame, error) {
	n, err := expectLength(buf.Bytes(), 0)
	if err != nil {
		return nil, err
	}
	f, rest, err := parseFrame(buf.Next(n))
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after frame", ErrInvalidFrame, len(rest))
	}
	return f, nil
}

// expectLength scans b and reports how many bytes the complete frame
// at the front will occupy, without consuming anything. Composite
// frames recurse into their elements; an element that is not fully
// buffered propagates ErrNotComplete for the whole frame. depth is
// the current composite nesting level; exceeding MaxDepth rejects the
// frame before any unbounded recursion. parseFrame never sees deeper
// nesting than this pass has accepted.
func expectLength(b []byte, depth int) (int, error) {
	if len(b) == 0 {
		return 0, ErrNotComplete
	}

	switch b[0] {
	case '+', '-', ':', '#', ',', '_':
		end := indexCRLF(b, 1)
		if end < 0 {
			return 0, ErrNotComplete
		}
		return end + 2, nil

	case '$':
		header := indexCRLF(b, 1)
		if header < 0 {
			return 0, ErrNotComplete
		}
		n, err := parseLength(b[1:header])
		if err != nil {
			return 0, err
		}
		if n == -1 {
			// Null bulk string: header only.
			return header + 2, nil
		}
		if n < 0 || n > MaxBulkLen {
			return 0, fmt.Errorf("%w: bulk length %d", ErrInvalidFrameLength, n)
		}
		total := header + 2 + n + 2
		if len(b) < total {
			return 0, ErrNotComplete
		}
		return total, nil

	case '*', '~', '%':
		if depth >= MaxDepth {
			return 0, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidFrameLength, MaxDepth)
		}
		header := indexCRLF(b, 1)
		if header < 0 {
			return 0, ErrNotComplete
		}
		n, err := parseLength(b[1:header])
		if err != nil {
			return 0, err
		}
		if n < 0 || n > MaxElements {
			return 0, fmt.Errorf("%w: element count %d", ErrInvalidFrameLength, n)
		}
		if b[0] == '%' {
			// One key frame and one value frame per pair.
			n *= 2
		}
		total := header + 2
		for i := 0; i < n; i++ {
			m, err := expectLength(b[total:], depth+1)
			if err != nil {
				return 0, err
			}
			total += m
		}
		return total, nil

	default:
		return 0, fmt.Errorf("%w: marker %q", ErrInvalidFrameType, b[0])
	}
}

// parseFrame parses one frame from the front of b, which is known to
// hold at least one complete frame, and returns the unparsed tail.
func parseFrame(b []byte) (Frame, []byte, error) {
	switch b[0] {
	case '+':
		line, rest := splitLine(b)
		s, err := textPayload(line)
		if err != nil {
			return nil, nil, err
		}
		return SimpleString(s), rest, nil

	case '-':
		line, rest := splitLine(b)
		s, err := textPayload(line)
		if err != nil {
			return nil, nil, err
		}
		return SimpleError(s), rest, nil

	case ':':
		line, rest := splitLine(b)
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("resp: parse integer %q: %w", line, err)
		}
		return Integer(n), rest, nil

	case '#':
		line, rest := splitLine(b)
		switch string(line) {
		case "t":
			return Boolean(true), rest, nil
		case "f":
			return Boolean(false), rest, nil
		}
		return nil, nil, fmt.Errorf("%w: boolean literal %q", ErrInvalidFrame, line)

	case ',':
		line, rest := splitLine(b)
		f, err := strconv.ParseFloat(string(line), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("resp: parse double %q: %w", line, err)
		}
		return Double(f), rest, nil

	case '_':
		line, rest := splitLine(b)
		if len(line) != 0 {
			return nil, nil, fmt.Errorf("%w: payload after null marker", ErrInvalidFrame)
		}
		return Null{}, rest, nil

	case '$':
		line, rest := splitLine(b)
		n, err := parseLength(line)
		if err != nil {
			return nil, nil, err
		}
		if n == -1 {
			return Null{}, rest, nil
		}
		payload := rest[:n]
		if string(rest[n:n+2]) != crlf {
			return nil, nil, fmt.Errorf("%w: bulk string missing terminator", ErrInvalidFrame)
		}
		return BulkString(append([]byte(nil), payload...)), rest[n+2:], nil

	case '*':
		line, rest := splitLine(b)
		n, err := parseLength(line)
		if err != nil {
			return nil, nil, err
		}
		out := make(Array, 0, n)
		for i := 0; i < n; i++ {
			var f Frame
			f, rest, err = parseFrame(rest)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, f)
		}
		return out, rest, nil

	case '~':
		line, rest := splitLine(b)
		n, err := parseLength(line)
		if err != nil {
			return nil, nil, err
		}
		out := make(Set, 0, n)
		for i := 0; i < n; i++ {
			var f Frame
			f, rest, err = parseFrame(rest)
			if err != nil {
				return nil, nil, err
			}
			out = append(out, f)
		}
		return out, rest, nil

	case '%':
		line, rest := splitLine(b)
		n, err := parseLength(line)
		if err != nil {
			return nil, nil, err
		}
		out := make(Map, n)
		for i := 0; i < n; i++ {
			var kf, vf Frame
			kf, rest, err = parseFrame(rest)
			if err != nil {
				return nil, nil, err
			}
			key, err := mapKey(kf)
			if err != nil {
				return nil, nil, err
			}
			vf, rest, err = parseFrame(rest)
			if err != nil {
				return nil, nil, err
			}
			out[key] = vf
		}
		return out, rest, nil
	}

	return nil, nil, fmt.Errorf("%w: marker %q", ErrInvalidFrameType, b[0])
}

// mapKey extracts the text of a map key frame. Keys must be one of
// the text-typed variants.
func mapKey(f Frame) (string, error) {
	switch k := f.(type) {
	case SimpleString:
		return string(k), nil
	case BulkString:
		if !utf8.Valid(k) {
			return "", fmt.Errorf("%w: map key", ErrInvalidUTF8)
		}
		return string(k), nil
	}
	return "", fmt.Errorf("%w: map key must be a string, got %s", ErrInvalidFrame, f.Kind())
}

// splitLine splits b (starting with a marker byte followed by a
// CRLF-terminated line) into the line payload and the remainder.
// Callers run after expectLength, so the terminator is present.
func splitLine(b []byte) (line, rest []byte) {
	end := indexCRLF(b, 1)
	return b[1:end], b[end+2:]
}

func textPayload(line []byte) (string, error) {
	if !utf8.Valid(line) {
		return "", ErrInvalidUTF8
	}
	return string(line), nil
}

func parseLength(line []byte) (int, error) {
	n, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, fmt.Errorf("resp: parse length %q: %w", line, err)
	}
	return n, nil
}

// indexCRLF returns the index of the first CRLF at or after from,
// or -1 if none is present.
func indexCRLF(b []byte, from int) int {
	if from >= len(b) {
		return -1
	}
	i := bytes.Index(b[from:], []byte(crlf))
	if i < 0 {
		return -1
	}
	return from + i
}
