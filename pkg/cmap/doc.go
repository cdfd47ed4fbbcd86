// Package cmap provides a concurrent-safe sharded map keyed by
// strings.
//
// Keys are distributed over a fixed set of shards by murmur3 hash,
// so operations on unrelated keys proceed in parallel and contention
// is limited to keys that land in the same shard. No lock is ever
// held across more than one call.
package cmap
