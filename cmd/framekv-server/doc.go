// Package main provides the entry point for framekv-server.
//
// framekv-server is an in-memory key-value server speaking a RESP
// style wire protocol, with plain keys, hashes, and sets.
//
// Usage:
//
//	framekv-server [flags]
//	framekv-server --config /path/to/framekv.yaml
//
// Configuration is merged from defaults, the optional YAML file, and
// FRAMEKV_ environment variables. While running, the server watches the
// config file and applies log level changes without a restart.
package main
