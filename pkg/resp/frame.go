package resp

// Kind identifies a frame variant. The ordinal participates in the
// total ordering over frames: variants compare by Kind first.
type Kind int

const (
	KindSimpleString Kind = iota
	KindSimpleError
	KindInteger
	KindBulkString
	KindArray
	KindNull
	KindBoolean
	KindDouble
	KindMap
	KindSet
)

// String returns the variant name, for logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "simple-string"
	case KindSimpleError:
		return "simple-error"
	case KindInteger:
		return "integer"
	case KindBulkString:
		return "bulk-string"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindDouble:
		return "double"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// Frame is one decoded unit of the wire protocol. The set of
// implementations is closed; the unexported method keeps it that way.
type Frame interface {
	Kind() Kind
	appendRESP(dst []byte) []byte
}

// SimpleString is a short line of text without embedded terminators.
type SimpleString string

// SimpleError carries an error message to the peer. It is a value,
// not a Go error.
type SimpleError string

// Integer is a 64-bit signed integer.
type Integer int64

// BulkString is a length-prefixed byte string, the only binary-safe
// scalar variant.
type BulkString []byte

// Array is an ordered sequence of frames.
type Array []Frame

// Null represents the absence of a value.
type Null struct{}

// Boolean is a true/false value.
type Boolean bool

// Double is a 64-bit float. Two NaN doubles compare equal, and NaN
// occupies a fixed position in the total ordering.
type Double float64

// Map associates text keys with frames. Iteration and encoding order
// is always sorted by key, regardless of insertion order.
type Map map[string]Frame

// Set is an unordered collection of frames. Comparison, hashing and
// encoding operate on a sorted copy of the elements, so two sets with
// the same members are indistinguishable.
type Set []Frame

func (SimpleString) Kind() Kind { return KindSimpleString }
func (SimpleError) Kind() Kind  { return KindSimpleError }
func (Integer) Kind() Kind      { return KindInteger }
func (BulkString) Kind() Kind   { return KindBulkString }
func (Array) Kind() Kind        { return KindArray }
func (Null) Kind() Kind         { return KindNull }
func (Boolean) Kind() Kind      { return KindBoolean }
func (Double) Kind() Kind       { return KindDouble }
func (Map) Kind() Kind          { return KindMap }
func (Set) Kind() Kind          { return KindSet }

// Bulk converts a native string into a BulkString frame.
func Bulk(s string) BulkString { return BulkString([]byte(s)) }

// CommandArray builds the request frame for a command and its
// arguments: an Array of BulkStrings.
func CommandArray(name string, args ...string) Array {
	out := make(Array, 0, 1+len(args))
	out = append(out, Bulk(name))
	for _, a := range args {
		out = append(out, Bulk(a))
	}
	return out
}
