// Package backend holds the process-wide mutable store shared by all
// connections.
//
// The store has three independent namespaces, each keyed by string: a
// flat frame map, a hash-of-hashes, and a map of frame sets. A key
// may exist in more than one namespace at once with unrelated values.
// Every namespace is a sharded concurrent map, so unrelated keys are
// read and written in parallel and no global lock exists.
package backend

import (
	"github.com/yndnr/framekv-go/pkg/cmap"
	"github.com/yndnr/framekv-go/pkg/resp"
)

// Backend is created once at startup and handed to every connection.
// The zero value is not usable; use New.
type Backend struct {
	data   *cmap.Map[resp.Frame]
	hashes *cmap.Map[*cmap.Map[resp.Frame]]
	// Inner set maps are keyed by the member's canonical encoding,
	// so structurally equal frames occupy one slot.
	sets *cmap.Map[*cmap.Map[resp.Frame]]
}

// New creates an empty backend with the default shard count.
func New() *Backend {
	return NewWithShards(cmap.DefaultShardCount)
}

// NewWithShards creates an empty backend whose namespaces use the
// given shard count.
func NewWithShards(shards int) *Backend {
	return &Backend{
		data:   cmap.NewWithShards[resp.Frame](shards),
		hashes: cmap.NewWithShards[*cmap.Map[resp.Frame]](shards),
		sets:   cmap.NewWithShards[*cmap.Map[resp.Frame]](shards),
	}
}

// Get returns the value stored under key in the flat namespace.
func (b *Backend) Get(key string) (resp.Frame, bool) {
	return b.data.Get(key)
}

// Set stores value under key, last writer wins.
func (b *Backend) Set(key string, value resp.Frame) {
	b.data.Set(key, value)
}

// HGet returns the value of one field of the hash at key.
func (b *Backend) HGet(key, field string) (resp.Frame, bool) {
	h, ok := b.hashes.Get(key)
	if !ok {
		return nil, false
	}
	return h.Get(field)
}

// HSet stores value under field of the hash at key. The hash is
// created on first write and never removed.
func (b *Backend) HSet(key, field string, value resp.Frame) {
	h := b.hashes.GetOrCompute(key, cmap.New[resp.Frame])
	h.Set(field, value)
}

// HGetAll returns a snapshot of the full hash at key, or absence if
// the key was never written.
func (b *Backend) HGetAll(key string) (map[string]resp.Frame, bool) {
	h, ok := b.hashes.Get(key)
	if !ok {
		return nil, false
	}
	return h.Snapshot(), true
}

// HMGet returns the values of the requested fields that are present,
// silently omitting missing fields: the result may be shorter than
// the request. A key that was never written reports absence.
func (b *Backend) HMGet(key string, fields []string) ([]resp.Frame, bool) {
	h, ok := b.hashes.Get(key)
	if !ok {
		return nil, false
	}
	out := make([]resp.Frame, 0, len(fields))
	for _, f := range fields {
		if v, ok := h.Get(f); ok {
			out = append(out, v)
		}
	}
	return out, true
}

// Echo wraps text as a SimpleString frame. It touches no state and
// exists only for symmetry with the other accessors. The reply is
// line-oriented: text containing CRLF goes out verbatim and is the
// sender's problem, matching the command's wire contract.
func (b *Backend) Echo(text string) resp.Frame {
	return resp.SimpleString(text)
}

// SAdd adds member to the set at key, creating the set if absent.
// It returns 1 when the member was newly added and 0 when it was
// already present.
func (b *Backend) SAdd(key string, member resp.Frame) int {
	s := b.sets.GetOrCompute(key, cmap.New[resp.Frame])
	if s.SetIfAbsent(resp.Key(member), member) {
		return 1
	}
	return 0
}

// SIsMember reports membership as 1 or 0. A key that was never added
// to reports 0, never absence.
func (b *Backend) SIsMember(key string, member resp.Frame) int {
	s, ok := b.sets.Get(key)
	if !ok {
		return 0
	}
	if s.Has(resp.Key(member)) {
		return 1
	}
	return 0
}

// Counts reports the number of keys in each namespace, for metrics.
func (b *Backend) Counts() (data, hashes, sets int) {
	return b.data.Count(), b.hashes.Count(), b.sets.Count()
}
