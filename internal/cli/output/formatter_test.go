package output

import (
	"math"
	"testing"

	"github.com/yndnr/framekv-go/pkg/resp"
)

func TestFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame resp.Frame
		want  string
	}{
		{"simple string", resp.SimpleString("OK"), "OK"},
		{"error", resp.SimpleError("ERR bad"), "(error) ERR bad"},
		{"integer", resp.Integer(42), "(integer) 42"},
		{"bulk string", resp.Bulk("hello"), "hello"},
		{"null", resp.Null{}, "(nil)"},
		{"true", resp.Boolean(true), "(true)"},
		{"false", resp.Boolean(false), "(false)"},
		{"double", resp.Double(1.5), "(double) 1.5"},
		{"nan double", resp.Double(math.NaN()), "(double) NaN"},
		{"empty array", resp.Array{}, "(empty array)"},
		{
			"array",
			resp.Array{resp.Bulk("a"), resp.Integer(2)},
			"1) a\n2) (integer) 2",
		},
		{"empty map", resp.Map{}, "(empty map)"},
		{
			"map sorted by key",
			resp.Map{"b": resp.Integer(2), "a": resp.Integer(1)},
			"a: (integer) 1\nb: (integer) 2",
		},
		{"empty set", resp.Set{}, "(empty set)"},
		{
			"nested array",
			resp.Array{resp.Array{resp.Bulk("x")}},
			"1) 1) x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Frame(tt.frame); got != tt.want {
				t.Errorf("Frame() = %q, want %q", got, tt.want)
			}
		})
	}
}
