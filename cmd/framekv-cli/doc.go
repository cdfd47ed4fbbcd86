// Package main provides the entry point for framekv-cli.
//
// framekv-cli is a small command-line client for framekv-server. Each
// subcommand maps to one server command:
//
//	framekv-cli -s localhost:7379 set greeting hello
//	framekv-cli get greeting
//	framekv-cli hset user:1 name alice
//	framekv-cli sadd tags urgent
package main
