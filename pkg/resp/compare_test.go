package resp

import (
	"math"
	"sort"
	"testing"
)

func TestCompare_KindOrdering(t *testing.T) {
	// One frame per variant, in discriminant order.
	ordered := []Frame{
		SimpleString("s"),
		SimpleError("e"),
		Integer(1),
		BulkString("b"),
		Array{},
		Null{},
		Boolean(false),
		Double(1),
		Map{},
		Set{},
	}

	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			got := Compare(ordered[i], ordered[j])
			switch {
			case i < j && got >= 0:
				t.Errorf("Compare(%s, %s) = %d, want < 0", ordered[i].Kind(), ordered[j].Kind(), got)
			case i > j && got <= 0:
				t.Errorf("Compare(%s, %s) = %d, want > 0", ordered[i].Kind(), ordered[j].Kind(), got)
			case i == j && got != 0:
				t.Errorf("Compare(%s, %s) = %d, want 0", ordered[i].Kind(), ordered[j].Kind(), got)
			}
		}
	}
}

func TestCompare_Payloads(t *testing.T) {
	tests := []struct {
		name string
		a, b Frame
		want int
	}{
		{"equal strings", SimpleString("a"), SimpleString("a"), 0},
		{"string order", SimpleString("a"), SimpleString("b"), -1},
		{"integer order", Integer(-1), Integer(1), -1},
		{"bulk bytes order", BulkString("abc"), BulkString("abd"), -1},
		{"bool order", Boolean(false), Boolean(true), -1},
		{"double order", Double(1.5), Double(2.5), -1},
		{"array prefix shorter", Array{Integer(1)}, Array{Integer(1), Integer(2)}, -1},
		{"array element order", Array{Integer(2)}, Array{Integer(1), Integer(9)}, 1},
		{"null equal", Null{}, Null{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("reversed Compare() = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestCompare_NaN(t *testing.T) {
	nan := Double(math.NaN())

	if !Equal(nan, Double(math.NaN())) {
		t.Error("two NaN doubles should be equal")
	}
	if Key(nan) != Key(Double(math.NaN())) {
		t.Error("two NaN doubles should share a canonical key")
	}
	if Compare(nan, Double(math.Inf(1))) != 1 {
		t.Error("NaN should sort after +inf")
	}
	if Compare(Double(1), nan) != -1 {
		t.Error("finite doubles should sort before NaN")
	}

	// NaN must not break sorting of a mixed collection.
	frames := []Frame{nan, Double(2), Integer(5), nan, Double(-1), SimpleString("x")}
	sort.SliceStable(frames, func(i, j int) bool { return Compare(frames[i], frames[j]) < 0 })
	for i := 1; i < len(frames); i++ {
		if Compare(frames[i-1], frames[i]) > 0 {
			t.Fatalf("sorted slice out of order at %d", i)
		}
	}
}

func TestSet_OrderIndependent(t *testing.T) {
	a := Set{Integer(1), SimpleString("x"), Double(2.5)}
	b := Set{Double(2.5), Integer(1), SimpleString("x")}

	if !Equal(a, b) {
		t.Error("sets with the same members should be equal regardless of insertion order")
	}
	if Key(a) != Key(b) {
		t.Error("equal sets should share a canonical key")
	}

	c := Set{Integer(1), SimpleString("x")}
	if Equal(a, c) {
		t.Error("sets with different members should not be equal")
	}
}

func TestMap_OrderIndependent(t *testing.T) {
	a := Map{"k1": Integer(1), "k2": Integer(2)}
	b := Map{"k2": Integer(2), "k1": Integer(1)}

	if !Equal(a, b) {
		t.Error("maps with the same entries should be equal")
	}
	if Key(a) != Key(b) {
		t.Error("equal maps should share a canonical key")
	}
	if Equal(a, Map{"k1": Integer(1), "k2": Integer(3)}) {
		t.Error("maps with different values should not be equal")
	}
}

func TestKey_DistinguishesFrames(t *testing.T) {
	frames := []Frame{
		SimpleString("1"),
		BulkString("1"),
		Integer(1),
		Double(1),
		Boolean(true),
		Null{},
	}
	seen := make(map[string]Frame, len(frames))
	for _, f := range frames {
		k := Key(f)
		if prev, ok := seen[k]; ok {
			t.Errorf("frames %#v and %#v share key %q", prev, f, k)
		}
		seen[k] = f
	}
}
