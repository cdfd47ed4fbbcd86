package resp

import (
	"bytes"
	"math"
	"sort"
	"strings"
)

// Compare defines a total ordering over frames. Variants order by
// Kind first, then by payload. Map contents compare in key order;
// Set contents compare on sorted copies; NaN doubles compare equal
// to each other and sort after every other double.
func Compare(a, b Frame) int {
	if ka, kb := a.Kind(), b.Kind(); ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case SimpleString:
		return strings.Compare(string(av), string(b.(SimpleString)))
	case SimpleError:
		return strings.Compare(string(av), string(b.(SimpleError)))
	case Integer:
		bv := b.(Integer)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case BulkString:
		return bytes.Compare(av, b.(BulkString))
	case Array:
		return compareFrames(av, b.(Array))
	case Null:
		return 0
	case Boolean:
		bv := b.(Boolean)
		switch {
		case !bool(av) && bool(bv):
			return -1
		case bool(av) && !bool(bv):
			return 1
		}
		return 0
	case Double:
		return compareDouble(float64(av), float64(b.(Double)))
	case Map:
		return compareMaps(av, b.(Map))
	case Set:
		return compareFrames(sortedCopy(av), sortedCopy(b.(Set)))
	}
	return 0
}

// Equal reports whether two frames are structurally equal.
func Equal(a, b Frame) bool { return Compare(a, b) == 0 }

// Key returns the canonical wire encoding of f as a string, suitable
// for use as a Go map key. Equal frames always produce equal keys:
// the encoder emits Map and Set contents in sorted order and
// normalizes NaN and negative zero.
func Key(f Frame) string { return string(Encode(f)) }

func compareDouble(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFrames(a, b []Frame) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func compareMaps(a, b Map) int {
	ak, bk := a.Keys(), b.Keys()
	n := len(ak)
	if len(bk) < n {
		n = len(bk)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			return c
		}
		if c := Compare(a[ak[i]], b[bk[i]]); c != 0 {
			return c
		}
	}
	switch {
	case len(ak) < len(bk):
		return -1
	case len(ak) > len(bk):
		return 1
	}
	return 0
}

// Keys returns the map keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCopy(s []Frame) []Frame {
	out := make([]Frame, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return Compare(out[i], out[j]) < 0 })
	return out
}
