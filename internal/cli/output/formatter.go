// Package output renders RESP reply frames for the terminal.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yndnr/framekv-go/pkg/resp"
)

// Frame renders a reply frame in a redis-cli style text form.
// Composite frames are rendered one element per line; map entries are
// sorted by key so output is stable.
func Frame(f resp.Frame) string {
	switch v := f.(type) {
	case resp.SimpleString:
		return string(v)
	case resp.SimpleError:
		return "(error) " + string(v)
	case resp.Integer:
		return fmt.Sprintf("(integer) %d", int64(v))
	case resp.BulkString:
		return string(v)
	case resp.Null:
		return "(nil)"
	case resp.Boolean:
		if v {
			return "(true)"
		}
		return "(false)"
	case resp.Double:
		return fmt.Sprintf("(double) %v", float64(v))
	case resp.Array:
		return numbered([]resp.Frame(v), "(empty array)")
	case resp.Set:
		return numbered([]resp.Frame(v), "(empty set)")
	case resp.Map:
		if len(v) == 0 {
			return "(empty map)"
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s: %s", k, Frame(v[k]))
		}
		return b.String()
	default:
		return fmt.Sprintf("%v", f)
	}
}

func numbered(frames []resp.Frame, empty string) string {
	if len(frames) == 0 {
		return empty
	}
	var b strings.Builder
	for i, el := range frames {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d) %s", i+1, Frame(el))
	}
	return b.String()
}
