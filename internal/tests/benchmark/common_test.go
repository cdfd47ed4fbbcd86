package benchmark

import (
	"fmt"

	"github.com/yndnr/framekv-go/internal/backend"
	"github.com/yndnr/framekv-go/pkg/resp"
)

// KeyCounts defines the preloaded key counts for store benchmarks.
var KeyCounts = []int{1000, 10000, 100000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000}

// prefill loads count plain keys into the backend.
func prefill(b *backend.Backend, count int) {
	for i := 0; i < count; i++ {
		b.Set(fmt.Sprintf("key-%d", i), resp.Bulk(fmt.Sprintf("value-%d", i)))
	}
}

// sampleCommand is a typical inbound request frame.
func sampleCommand() resp.Array {
	return resp.CommandArray("set", "session:12345", "a-moderately-sized-value")
}
