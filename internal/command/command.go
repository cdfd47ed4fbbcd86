// Package command turns decoded RESP frames into typed commands and
// executes them against the backend store.
//
// Parsing is strict about shape: a command is always an Array whose
// first element is a BulkString naming the command, matched
// case-insensitively against a fixed table. Known commands enforce an
// exact argument count; names outside the table parse to Unrecognized
// rather than failing, so unknown commands are tolerated.
package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yndnr/framekv-go/internal/backend"
	"github.com/yndnr/framekv-go/pkg/resp"
)

var (
	// ErrInvalidCommand means the frame is not an Array, or its first
	// element is not a BulkString.
	ErrInvalidCommand = errors.New("command: invalid command")

	// ErrInvalidArgument means an argument count or argument frame
	// type does not match what the command expects.
	ErrInvalidArgument = errors.New("command: invalid argument")

	// ErrInvalidUTF8 means a text argument carries malformed UTF-8.
	ErrInvalidUTF8 = errors.New("command: invalid utf-8 in argument")
)

// Command is one typed, validated client request. Execute applies it
// to the backend and always produces a reply frame: a miss is a Null
// or empty-Array reply, never an error.
type Command interface {
	Name() string
	Execute(b *backend.Backend) resp.Frame
}

// parsers maps lowercase command names to their constructors. Names
// outside this table parse to Unrecognized.
var parsers = map[string]func(args resp.Array) (Command, error){
	"get":       parseGet,
	"set":       parseSet,
	"hget":      parseHGet,
	"hset":      parseHSet,
	"hgetall":   parseHGetAll,
	"hmget":     parseHMGet,
	"echo":      parseEcho,
	"sadd":      parseSAdd,
	"sismember": parseSIsMember,
}

// Parse validates a decoded frame as a command.
func Parse(f resp.Frame) (Command, error) {
	arr, ok := f.(resp.Array)
	if !ok {
		return nil, fmt.Errorf("%w: must be an array, got %s", ErrInvalidCommand, f.Kind())
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrInvalidCommand)
	}

	name, ok := arr[0].(resp.BulkString)
	if !ok {
		return nil, fmt.Errorf("%w: name must be a bulk string, got %s", ErrInvalidCommand, arr[0].Kind())
	}

	parse, ok := parsers[strings.ToLower(string(name))]
	if !ok {
		return Unrecognized{}, nil
	}
	return parse(arr[1:])
}

// requireArity checks the exact argument count for a command.
func requireArity(name string, args resp.Array, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s expects exactly %d argument(s), got %d",
			ErrInvalidArgument, name, want, len(args))
	}
	return nil
}

// stringArg extracts a text argument, which must be a BulkString
// holding valid UTF-8.
func stringArg(name string, args resp.Array, i int) (string, error) {
	bs, ok := args[i].(resp.BulkString)
	if !ok {
		return "", fmt.Errorf("%w: %s argument %d must be a bulk string, got %s",
			ErrInvalidArgument, name, i+1, args[i].Kind())
	}
	if !utf8.Valid(bs) {
		return "", fmt.Errorf("%w: %s argument %d", ErrInvalidUTF8, name, i+1)
	}
	return string(bs), nil
}

// Get fetches the value of a key from the flat namespace.
type Get struct {
	Key string
}

// Set stores a value under a key in the flat namespace.
type Set struct {
	Key   string
	Value resp.Frame
}

// HGet fetches one field of a hash.
type HGet struct {
	Key   string
	Field string
}

// HSet stores one field of a hash.
type HSet struct {
	Key   string
	Field string
	Value resp.Frame
}

// HGetAll fetches every field of a hash.
type HGetAll struct {
	Key string
}

// HMGet fetches one or more fields of a hash. Missing fields are
// omitted from the reply.
type HMGet struct {
	Key    string
	Fields []string
}

// Echo replies with its argument.
type Echo struct {
	Text string
}

// SAdd adds a member to a set.
type SAdd struct {
	Key    string
	Member resp.Frame
}

// SIsMember tests membership of a set.
type SIsMember struct {
	Key    string
	Member resp.Frame
}

// Unrecognized stands in for any command name outside the known set.
// It is tolerated, not rejected.
type Unrecognized struct{}

func parseGet(args resp.Array) (Command, error) {
	if err := requireArity("get", args, 1); err != nil {
		return nil, err
	}
	key, err := stringArg("get", args, 0)
	if err != nil {
		return nil, err
	}
	return Get{Key: key}, nil
}

func parseSet(args resp.Array) (Command, error) {
	if err := requireArity("set", args, 2); err != nil {
		return nil, err
	}
	key, err := stringArg("set", args, 0)
	if err != nil {
		return nil, err
	}
	return Set{Key: key, Value: args[1]}, nil
}

func parseHGet(args resp.Array) (Command, error) {
	if err := requireArity("hget", args, 2); err != nil {
		return nil, err
	}
	key, err := stringArg("hget", args, 0)
	if err != nil {
		return nil, err
	}
	field, err := stringArg("hget", args, 1)
	if err != nil {
		return nil, err
	}
	return HGet{Key: key, Field: field}, nil
}

func parseHSet(args resp.Array) (Command, error) {
	if err := requireArity("hset", args, 3); err != nil {
		return nil, err
	}
	key, err := stringArg("hset", args, 0)
	if err != nil {
		return nil, err
	}
	field, err := stringArg("hset", args, 1)
	if err != nil {
		return nil, err
	}
	return HSet{Key: key, Field: field, Value: args[2]}, nil
}

func parseHGetAll(args resp.Array) (Command, error) {
	if err := requireArity("hgetall", args, 1); err != nil {
		return nil, err
	}
	key, err := stringArg("hgetall", args, 0)
	if err != nil {
		return nil, err
	}
	return HGetAll{Key: key}, nil
}

// parseHMGet is the one variable-arity command: one key plus one or
// more field names.
func parseHMGet(args resp.Array) (Command, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: hmget expects a key and at least one field, got %d argument(s)",
			ErrInvalidArgument, len(args))
	}
	key, err := stringArg("hmget", args, 0)
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(args)-1)
	for i := 1; i < len(args); i++ {
		f, err := stringArg("hmget", args, i)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return HMGet{Key: key, Fields: fields}, nil
}

func parseEcho(args resp.Array) (Command, error) {
	if err := requireArity("echo", args, 1); err != nil {
		return nil, err
	}
	text, err := stringArg("echo", args, 0)
	if err != nil {
		return nil, err
	}
	return Echo{Text: text}, nil
}

func parseSAdd(args resp.Array) (Command, error) {
	if err := requireArity("sadd", args, 2); err != nil {
		return nil, err
	}
	key, err := stringArg("sadd", args, 0)
	if err != nil {
		return nil, err
	}
	return SAdd{Key: key, Member: args[1]}, nil
}

func parseSIsMember(args resp.Array) (Command, error) {
	if err := requireArity("sismember", args, 2); err != nil {
		return nil, err
	}
	key, err := stringArg("sismember", args, 0)
	if err != nil {
		return nil, err
	}
	return SIsMember{Key: key, Member: args[1]}, nil
}
