package connector

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/logging"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
)

// Client is a client connector candidate: the protocols it requires and
// an optional exact helper-name filter.
type Client struct {
	// ID identifies the client instance.
	ID string

	// Protocols is the non-empty set of protocols the client requires a
	// single helper to support.
	Protocols protocol.Set

	// Helper optionally pins selection to one helper implementation by
	// its descriptor name.
	Helper string

	// Timeout bounds individual dispatches. Zero means no bound.
	Timeout time.Duration

	// Log receives connector diagnostics. Nil means silent.
	Log *slog.Logger
}

// Logger returns the client's logger, or a no-op logger.
func (c *Client) Logger() *slog.Logger {
	if c == nil || c.Log == nil {
		return logging.Nop()
	}
	return c.Log
}

// Server is a server connector candidate.
type Server struct {
	// ID identifies the server instance.
	ID string

	// Protocols is the non-empty set of protocols the server requires a
	// single helper to support.
	Protocols protocol.Set

	// Helper optionally pins selection to one helper implementation by
	// its descriptor name.
	Helper string

	// Address is the listen address for network servers, or the
	// loopback authority for in-process servers.
	Address string

	// Next receives every inbound request.
	Next message.Handler

	// Log receives connector diagnostics. Nil means silent.
	Log *slog.Logger
}

// Logger returns the server's logger, or a no-op logger.
func (s *Server) Logger() *slog.Logger {
	if s == nil || s.Log == nil {
		return logging.Nop()
	}
	return s.Log
}

// ClientHelper is a client-side connector implementation. It dispatches
// outbound requests for the protocols its descriptor declares.
type ClientHelper interface {
	helper.Helper
	message.Handler

	// Bind returns a new helper instance bound to the client.
	Bind(c *Client) (ClientHelper, error)

	// Start activates the helper.
	Start(ctx context.Context) error

	// Stop releases the helper's resources within the timeout.
	Stop(ctx context.Context, timeout time.Duration) error
}

// ServerHelper is a server-side connector implementation. It accepts
// inbound traffic and forwards it to the owner's Next handler.
type ServerHelper interface {
	helper.Helper

	// Bind returns a new helper instance bound to the server.
	Bind(s *Server) (ServerHelper, error)

	// Start begins accepting traffic.
	Start(ctx context.Context) error

	// Stop drains and shuts down within the timeout.
	Stop(ctx context.Context, timeout time.Duration) error
}

// LoopNetwork routes loop:// requests between in-process clients and
// servers. It is engine-scoped, not process-global: each engine owns one
// network shared by its default loopback helpers.
type LoopNetwork struct {
	mu     sync.RWMutex
	routes map[string]message.Handler
}

// NewLoopNetwork creates an empty loopback network.
func NewLoopNetwork() *LoopNetwork {
	return &LoopNetwork{routes: make(map[string]message.Handler)}
}

// Register routes requests for the authority to the handler.
func (n *LoopNetwork) Register(authority string, h message.Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes[authority] = h
}

// Unregister removes the route for the authority.
func (n *LoopNetwork) Unregister(authority string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.routes, authority)
}

// Handle dispatches the request to the handler registered for the URL's
// authority. Unknown authorities yield 404; malformed URLs yield 400.
func (n *LoopNetwork) Handle(ctx context.Context, req *message.Request) *message.Response {
	u, err := url.Parse(req.URL)
	if err != nil {
		return message.NewResponse(message.StatusBadRequest)
	}
	n.mu.RLock()
	h := n.routes[u.Host]
	n.mu.RUnlock()
	if h == nil {
		return message.NewResponse(message.StatusNotFound)
	}
	return h.Handle(ctx, req)
}
