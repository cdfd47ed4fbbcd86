// Package shutdown coordinates graceful teardown of framekv processes.
//
// A Handler collects cleanup hooks (stop the RESP listener, close the
// metrics server, flush logs) and runs them in reverse registration
// order once SIGINT or SIGTERM arrives, bounded by a timeout.
package shutdown
