package server

import (
	"bytes"
	"errors"
	"io"
	"net"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/framekv-go/internal/command"
	"github.com/yndnr/framekv-go/pkg/resp"
)

// readChunkSize is the size of the temporary read buffer; decoded
// frames may be larger, the receive buffer grows as needed.
const readChunkSize = 4096

// serveConn runs the decode/execute/encode loop for one connection.
func (s *Server) serveConn(c net.Conn) {
	defer c.Close()

	log := s.logger.With(
		"conn", ulid.Make().String(),
		"remote", c.RemoteAddr().String(),
	)
	log.Debug("connection accepted")

	s.metrics.ConnectionsTotal.Inc()
	s.metrics.ConnectionsActive.Inc()
	defer s.metrics.ConnectionsActive.Dec()

	ip := remoteIP(c)
	recv := &bytes.Buffer{}
	chunk := make([]byte, readChunkSize)

	for {
		// Drain every complete frame already buffered before reading
		// more, so pipelined requests are answered in order.
		for {
			frame, err := resp.Decode(recv)
			if errors.Is(err, resp.ErrNotComplete) {
				break
			}
			if err != nil {
				// The byte stream cannot be resynchronized after a
				// protocol violation; report and close.
				s.metrics.DecodeErrors.Inc()
				log.Warn("protocol error", "error", err)
				s.writeReply(c, resp.SimpleError("ERR protocol error: "+err.Error()))
				return
			}

			reply := s.dispatch(frame, ip)
			if err := s.writeReply(c, reply); err != nil {
				log.Debug("write failed", "error", err)
				return
			}
		}

		// An empty buffer means the connection is between commands
		// and may idle; a partial frame gets the tighter read timeout.
		deadline := s.cfg.ReadTimeout
		if recv.Len() == 0 {
			deadline = s.cfg.IdleTimeout
		}
		if err := c.SetReadDeadline(time.Now().Add(deadline)); err != nil {
			return
		}

		n, err := c.Read(chunk)
		if n > 0 {
			recv.Write(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("connection closed by peer")
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection timed out")
				return
			}
			log.Debug("connection read error", "error", err)
			return
		}
	}
}

// dispatch parses and executes one request frame, always producing a
// reply frame. Command-level failures reply with a SimpleError and
// keep the connection alive.
func (s *Server) dispatch(frame resp.Frame, ip string) resp.Frame {
	if s.limiters != nil && !s.limiters.allow(ip) {
		s.metrics.RateLimited.Inc()
		return resp.SimpleError("ERR rate limit exceeded")
	}

	cmd, err := command.Parse(frame)
	if err != nil {
		s.metrics.CommandErrors.Inc()
		return resp.SimpleError("ERR " + err.Error())
	}

	start := time.Now()
	reply := cmd.Execute(s.backend)
	s.metrics.CommandsTotal.WithLabelValues(cmd.Name()).Inc()
	s.metrics.CommandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())

	data, hashes, sets := s.backend.Counts()
	s.metrics.ObserveKeyCounts(data, hashes, sets)

	return reply
}

func (s *Server) writeReply(c net.Conn, reply resp.Frame) error {
	if err := c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		return err
	}
	_, err := c.Write(resp.Encode(reply))
	return err
}

// remoteIP extracts the client IP without the port.
func remoteIP(c net.Conn) string {
	host, _, err := net.SplitHostPort(c.RemoteAddr().String())
	if err != nil {
		return c.RemoteAddr().String()
	}
	return host
}
