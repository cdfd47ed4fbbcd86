package command

import (
	"bytes"
	"errors"
	"testing"

	"github.com/yndnr/framekv-go/internal/backend"
	"github.com/yndnr/framekv-go/pkg/resp"
)

// decodeFrame decodes one wire frame for test input.
func decodeFrame(t *testing.T, wire string) resp.Frame {
	t.Helper()
	f, err := resp.Decode(bytes.NewBufferString(wire))
	if err != nil {
		t.Fatalf("decode %q: %v", wire, err)
	}
	return f
}

// ============================================================
// Parse Tests
// ============================================================

func TestParse_KnownCommands(t *testing.T) {
	tests := []struct {
		name string
		wire string
		want Command
	}{
		{
			name: "get",
			wire: "*2\r\n$3\r\nget\r\n$5\r\nhello\r\n",
			want: Get{Key: "hello"},
		},
		{
			name: "get uppercase name",
			wire: "*2\r\n$3\r\nGET\r\n$5\r\nhello\r\n",
			want: Get{Key: "hello"},
		},
		{
			name: "set",
			wire: "*3\r\n$3\r\nset\r\n$3\r\nfoo\r\n$3\r\nbar\r\n",
			want: Set{Key: "foo", Value: resp.BulkString("bar")},
		},
		{
			name: "hget",
			wire: "*3\r\n$4\r\nhget\r\n$1\r\nk\r\n$1\r\nf\r\n",
			want: HGet{Key: "k", Field: "f"},
		},
		{
			name: "hset",
			wire: "*4\r\n$4\r\nhset\r\n$1\r\nk\r\n$1\r\nf\r\n$1\r\nv\r\n",
			want: HSet{Key: "k", Field: "f", Value: resp.BulkString("v")},
		},
		{
			name: "hgetall",
			wire: "*2\r\n$7\r\nhgetall\r\n$1\r\nk\r\n",
			want: HGetAll{Key: "k"},
		},
		{
			name: "hmget multiple fields",
			wire: "*4\r\n$5\r\nhmget\r\n$1\r\nk\r\n$2\r\nf1\r\n$2\r\nf2\r\n",
			want: HMGet{Key: "k", Fields: []string{"f1", "f2"}},
		},
		{
			name: "echo",
			wire: "*2\r\n$4\r\necho\r\n$2\r\nhi\r\n",
			want: Echo{Text: "hi"},
		},
		{
			name: "sadd",
			wire: "*3\r\n$4\r\nsadd\r\n$1\r\ns\r\n$1\r\nm\r\n",
			want: SAdd{Key: "s", Member: resp.BulkString("m")},
		},
		{
			name: "sismember",
			wire: "*3\r\n$9\r\nsismember\r\n$1\r\ns\r\n$1\r\nm\r\n",
			want: SIsMember{Key: "s", Member: resp.BulkString("m")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(decodeFrame(t, tt.wire))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			assertCommandEqual(t, got, tt.want)
		})
	}
}

func assertCommandEqual(t *testing.T, got, want Command) {
	t.Helper()
	if got.Name() != want.Name() {
		t.Fatalf("Parse() = %s, want %s", got.Name(), want.Name())
	}
	switch g := got.(type) {
	case Get:
		if g != want.(Get) {
			t.Errorf("Parse() = %#v, want %#v", g, want)
		}
	case Set:
		w := want.(Set)
		if g.Key != w.Key || !resp.Equal(g.Value, w.Value) {
			t.Errorf("Parse() = %#v, want %#v", g, w)
		}
	case HGet:
		if g != want.(HGet) {
			t.Errorf("Parse() = %#v, want %#v", g, want)
		}
	case HSet:
		w := want.(HSet)
		if g.Key != w.Key || g.Field != w.Field || !resp.Equal(g.Value, w.Value) {
			t.Errorf("Parse() = %#v, want %#v", g, w)
		}
	case HGetAll:
		if g != want.(HGetAll) {
			t.Errorf("Parse() = %#v, want %#v", g, want)
		}
	case HMGet:
		w := want.(HMGet)
		if g.Key != w.Key || len(g.Fields) != len(w.Fields) {
			t.Fatalf("Parse() = %#v, want %#v", g, w)
		}
		for i := range g.Fields {
			if g.Fields[i] != w.Fields[i] {
				t.Errorf("field %d = %q, want %q", i, g.Fields[i], w.Fields[i])
			}
		}
	case Echo:
		if g != want.(Echo) {
			t.Errorf("Parse() = %#v, want %#v", g, want)
		}
	case SAdd:
		w := want.(SAdd)
		if g.Key != w.Key || !resp.Equal(g.Member, w.Member) {
			t.Errorf("Parse() = %#v, want %#v", g, w)
		}
	case SIsMember:
		w := want.(SIsMember)
		if g.Key != w.Key || !resp.Equal(g.Member, w.Member) {
			t.Errorf("Parse() = %#v, want %#v", g, w)
		}
	}
}

func TestParse_UnknownCommandTolerated(t *testing.T) {
	got, err := Parse(decodeFrame(t, "*1\r\n$4\r\nnoop\r\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := got.(Unrecognized); !ok {
		t.Errorf("Parse() = %T, want Unrecognized", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		frame   resp.Frame
		wantErr error
	}{
		{"not an array", resp.SimpleString("get"), ErrInvalidCommand},
		{"empty array", resp.Array{}, ErrInvalidCommand},
		{"name not a bulk string", resp.Array{resp.Integer(1)}, ErrInvalidCommand},
		{
			"get with extra argument",
			decodeFrameRaw("*3\r\n$3\r\nget\r\n$5\r\nhello\r\n$5\r\nbogus\r\n"),
			ErrInvalidArgument,
		},
		{
			"get with no arguments",
			decodeFrameRaw("*1\r\n$3\r\nget\r\n"),
			ErrInvalidArgument,
		},
		{
			"hmget without fields",
			decodeFrameRaw("*2\r\n$5\r\nhmget\r\n$1\r\nk\r\n"),
			ErrInvalidArgument,
		},
		{
			"set key wrong frame type",
			resp.Array{resp.BulkString("set"), resp.Integer(1), resp.BulkString("v")},
			ErrInvalidArgument,
		},
		{
			"sadd key not utf-8",
			resp.Array{resp.BulkString("sadd"), resp.BulkString([]byte{0xff, 0xfe}), resp.BulkString("m")},
			ErrInvalidUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.frame)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func decodeFrameRaw(wire string) resp.Frame {
	f, err := resp.Decode(bytes.NewBufferString(wire))
	if err != nil {
		panic(err)
	}
	return f
}

// ============================================================
// Execute Tests
// ============================================================

func TestExecute_GetSet(t *testing.T) {
	b := backend.New()

	// Miss on an empty store replies Null.
	reply := mustExec(t, b, "*2\r\n$3\r\nget\r\n$5\r\nhello\r\n")
	if !resp.Equal(reply, resp.Null{}) {
		t.Errorf("get miss reply = %#v, want Null", reply)
	}

	reply = mustExec(t, b, "*3\r\n$3\r\nset\r\n$3\r\nfoo\r\n$3\r\nbar\r\n")
	if !resp.Equal(reply, resp.SimpleString("OK")) {
		t.Errorf("set reply = %#v, want +OK", reply)
	}

	reply = mustExec(t, b, "*2\r\n$3\r\nget\r\n$3\r\nfoo\r\n")
	if !resp.Equal(reply, resp.BulkString("bar")) {
		t.Errorf("get reply = %#v, want bar", reply)
	}
}

func TestExecute_HashCommands(t *testing.T) {
	b := backend.New()

	mustExec(t, b, "*4\r\n$4\r\nhset\r\n$3\r\nkey\r\n$5\r\nfield\r\n$5\r\nvalue\r\n")
	mustExec(t, b, "*4\r\n$4\r\nhset\r\n$3\r\nkey\r\n$2\r\nf2\r\n$2\r\nv2\r\n")

	reply := mustExec(t, b, "*3\r\n$4\r\nhget\r\n$3\r\nkey\r\n$5\r\nfield\r\n")
	if !resp.Equal(reply, resp.BulkString("value")) {
		t.Errorf("hget reply = %#v", reply)
	}

	reply = mustExec(t, b, "*3\r\n$4\r\nhget\r\n$3\r\nkey\r\n$4\r\nnope\r\n")
	if !resp.Equal(reply, resp.Null{}) {
		t.Errorf("hget miss reply = %#v, want Null", reply)
	}

	reply = mustExec(t, b, "*2\r\n$7\r\nhgetall\r\n$3\r\nkey\r\n")
	want := resp.Map{"field": resp.BulkString("value"), "f2": resp.BulkString("v2")}
	if !resp.Equal(reply, want) {
		t.Errorf("hgetall reply = %#v, want %#v", reply, want)
	}

	reply = mustExec(t, b, "*2\r\n$7\r\nhgetall\r\n$7\r\nmissing\r\n")
	if !resp.Equal(reply, resp.Array{}) {
		t.Errorf("hgetall miss reply = %#v, want empty array", reply)
	}

	// hmget omits the missing field rather than padding with Null.
	reply = mustExec(t, b, "*4\r\n$5\r\nhmget\r\n$3\r\nkey\r\n$5\r\nfield\r\n$5\r\nother\r\n")
	if !resp.Equal(reply, resp.Array{resp.BulkString("value")}) {
		t.Errorf("hmget reply = %#v, want one-element array", reply)
	}
}

func TestExecute_SetCommands(t *testing.T) {
	b := backend.New()

	reply := mustExec(t, b, "*3\r\n$4\r\nsadd\r\n$4\r\nskey\r\n$7\r\nsvalue1\r\n")
	if !resp.Equal(reply, resp.Integer(1)) {
		t.Errorf("first sadd reply = %#v, want :1", reply)
	}
	reply = mustExec(t, b, "*3\r\n$4\r\nsadd\r\n$4\r\nskey\r\n$7\r\nsvalue1\r\n")
	if !resp.Equal(reply, resp.Integer(0)) {
		t.Errorf("repeated sadd reply = %#v, want :0", reply)
	}

	reply = mustExec(t, b, "*3\r\n$9\r\nsismember\r\n$4\r\nskey\r\n$7\r\nsvalue1\r\n")
	if !resp.Equal(reply, resp.Integer(1)) {
		t.Errorf("sismember reply = %#v, want :1", reply)
	}
	reply = mustExec(t, b, "*3\r\n$9\r\nsismember\r\n$4\r\nskey\r\n$5\r\nnever\r\n")
	if !resp.Equal(reply, resp.Integer(0)) {
		t.Errorf("sismember miss reply = %#v, want :0", reply)
	}
	reply = mustExec(t, b, "*3\r\n$9\r\nsismember\r\n$5\r\nnoset\r\n$1\r\nm\r\n")
	if !resp.Equal(reply, resp.Integer(0)) {
		t.Errorf("sismember on missing set = %#v, want :0", reply)
	}
}

func TestExecute_EchoAndUnrecognized(t *testing.T) {
	b := backend.New()

	reply := mustExec(t, b, "*2\r\n$4\r\necho\r\n$5\r\nmecho\r\n")
	if !resp.Equal(reply, resp.SimpleString("mecho")) {
		t.Errorf("echo reply = %#v", reply)
	}

	reply = mustExec(t, b, "*1\r\n$4\r\nnoop\r\n")
	if !resp.Equal(reply, resp.SimpleString("OK")) {
		t.Errorf("unknown command reply = %#v, want +OK", reply)
	}
}

func mustExec(t *testing.T, b *backend.Backend, wire string) resp.Frame {
	t.Helper()
	cmd, err := Parse(decodeFrame(t, wire))
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", wire, err)
	}
	return cmd.Execute(b)
}
