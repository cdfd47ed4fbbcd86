// Package benchmark holds cross-package benchmarks for framekv: wire
// codec throughput, backend operation cost at various key counts, and
// the full request/reply path over TCP.
//
// Run with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/
package benchmark
