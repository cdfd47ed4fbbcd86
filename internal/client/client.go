// Package client implements a minimal RESP client used by framekv-cli
// and by end-to-end tests.
package client

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/framekv-go/pkg/resp"
)

// DefaultTimeout bounds each request/response exchange.
const DefaultTimeout = 30 * time.Second

// Client is a RESP client over a single TCP connection. It is not safe
// for concurrent use; callers that need concurrency dial one client per
// goroutine.
type Client struct {
	conn    net.Conn
	recv    bytes.Buffer
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Dial connects to a framekv server.
func Dial(addr string, opts ...Option) (*Client, error) {
	c := &Client{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}

	conn, err := net.DialTimeout("tcp", addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}
	c.conn = conn
	return c, nil
}

// Do sends a command as an array of bulk strings and returns the reply
// frame. A SimpleError reply is returned as a frame, not an error;
// callers decide how to surface it.
func (c *Client) Do(name string, args ...string) (resp.Frame, error) {
	return c.DoFrame(resp.CommandArray(name, args...))
}

// DoFrame sends an arbitrary frame and returns the reply.
func (c *Client) DoFrame(f resp.Frame) (resp.Frame, error) {
	deadline := time.Now().Add(c.timeout)
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("client: set deadline: %w", err)
	}

	if _, err := c.conn.Write(resp.Encode(f)); err != nil {
		return nil, fmt.Errorf("client: write: %w", err)
	}
	return c.readReply()
}

// readReply accumulates bytes until a complete frame decodes. Bytes
// beyond the first frame stay buffered for the next call.
func (c *Client) readReply() (resp.Frame, error) {
	chunk := make([]byte, 4096)
	for {
		if c.recv.Len() > 0 {
			reply, err := resp.Decode(&c.recv)
			if err == nil {
				return reply, nil
			}
			if !errors.Is(err, resp.ErrNotComplete) {
				return nil, fmt.Errorf("client: decode reply: %w", err)
			}
		}

		n, err := c.conn.Read(chunk)
		if n > 0 {
			c.recv.Write(chunk[:n])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("client: read: %w", err)
		}
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
