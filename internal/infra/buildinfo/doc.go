// Package buildinfo exposes build-time version information for framekv
// binaries, injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/framekv-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo
