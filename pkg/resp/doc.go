// Package resp implements the RESP wire protocol: the frame value
// domain, a stream-safe decoder, and a canonical encoder.
//
// Frames form a closed set of ten variants. The package defines a
// total structural ordering over frames (Compare) and a canonical
// byte key (Key) so frames can be used as set members and map values
// elsewhere in the system.
//
// The decoder follows a two-phase measure/consume discipline: it
// first computes the exact byte span a complete frame will occupy,
// and only then removes those bytes from the caller's buffer. When
// the buffer does not yet hold a complete frame it returns
// ErrNotComplete and leaves the buffer untouched, so the caller can
// retry after more bytes arrive from the stream.
package resp
