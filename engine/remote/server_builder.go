package remote

import (
	"log"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
)

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithBus enqueues client input on an existing bus.
func WithBus(bus *input.Bus) ServerOption {
	return func(s *Server) {
		s.bus = bus
	}
}

// WithPath sets the WebSocket endpoint path. Default "/ws".
func WithPath(path string) ServerOption {
	return func(s *Server) {
		s.path = path
	}
}

// WithOrigins sets the Origin values allowed to connect. "*" allows any origin.
// With no origins configured only same-host requests are accepted.
//
// Parameters:
//   - origins: allowed Origin header values
//
// Returns:
//   - ServerOption: option function to apply
func WithOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		s.origins = append([]string(nil), origins...)
	}
}

// WithSendBuffer sets how many outgoing messages may queue per client before it is dropped.
func WithSendBuffer(size int) ServerOption {
	return func(s *Server) {
		if size > 0 {
			s.sendSize = size
		}
	}
}

// WithLogger enables connection logging.
func WithLogger(logger *log.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClientPage toggles serving the bundled browser client at "/". Enabled by default.
func WithClientPage(enabled bool) ServerOption {
	return func(s *Server) {
		s.serveUI = enabled
	}
}
