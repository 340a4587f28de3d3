package connector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/logging"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
)

// WSClient dispatches a request as a single WebSocket exchange: dial,
// send the request entity as one message, read one message back.
type WSClient struct {
	owner  *Client
	dialer *websocket.Dialer
	log    *slog.Logger
}

// NewWSClient creates a WebSocket client helper.
func NewWSClient(owner *Client) *WSClient {
	h := &WSClient{owner: owner, dialer: websocket.DefaultDialer, log: logging.Nop()}
	if owner != nil {
		h.log = owner.Logger()
		if owner.Timeout > 0 {
			d := *websocket.DefaultDialer
			d.HandshakeTimeout = owner.Timeout
			h.dialer = &d
		}
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *WSClient) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindClientConnector,
		Name:      "websocket-client",
		Protocols: protocol.NewSet(protocol.WS, protocol.WSS),
	}
}

// Bind implements ClientHelper.
func (h *WSClient) Bind(c *Client) (ClientHelper, error) { return NewWSClient(c), nil }

// Start implements ClientHelper.
func (h *WSClient) Start(ctx context.Context) error { return nil }

// Stop implements ClientHelper.
func (h *WSClient) Stop(ctx context.Context, timeout time.Duration) error { return nil }

// Handle performs one request/response exchange over a fresh WebSocket
// connection. Dial or read failures map to 502.
func (h *WSClient) Handle(ctx context.Context, req *message.Request) *message.Response {
	conn, _, err := h.dialer.DialContext(ctx, req.URL, req.Header)
	if err != nil {
		h.log.Warn("websocket dial failed", "url", req.URL, "error", err)
		return message.NewResponse(message.StatusBadGateway)
	}
	defer func() { _ = conn.Close() }()

	if req.Entity != nil && req.Entity.Available() {
		stream, err := req.Entity.Stream()
		if err != nil {
			return message.NewResponse(message.StatusInternalServerError)
		}
		payload, err := io.ReadAll(stream)
		_ = stream.Close()
		if err != nil {
			return message.NewResponse(message.StatusInternalServerError)
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.Warn("websocket write failed", "url", req.URL, "error", err)
			return message.NewResponse(message.StatusBadGateway)
		}
	}

	if h.owner != nil && h.owner.Timeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(h.owner.Timeout))
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		h.log.Warn("websocket read failed", "url", req.URL, "error", err)
		return message.NewResponse(message.StatusBadGateway)
	}

	resp := message.NewResponse(message.StatusOK)
	resp.Entity = content.NewBytes(data, "application/octet-stream")
	return resp
}

// WSServer accepts WebSocket connections and forwards each inbound
// message to the owner's handler as a POST request, writing the response
// entity back as one message.
type WSServer struct {
	owner    *Server
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.Mutex
	srv     *http.Server
	ln      net.Listener
	running bool
}

// NewWSServer creates a WebSocket server helper.
func NewWSServer(owner *Server) *WSServer {
	h := &WSServer{owner: owner, log: logging.Nop()}
	if owner != nil {
		h.log = owner.Logger()
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *WSServer) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindServerConnector,
		Name:      "websocket-server",
		Protocols: protocol.NewSet(protocol.WS),
	}
}

// Bind implements ServerHelper.
func (h *WSServer) Bind(s *Server) (ServerHelper, error) { return NewWSServer(s), nil }

// Start begins listening on the owner's address.
func (h *WSServer) Start(ctx context.Context) error {
	if h.owner == nil {
		return helper.ErrNotBound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return errors.New("websocket server is already running")
	}

	ln, err := net.Listen("tcp", h.owner.Address)
	if err != nil {
		return err
	}
	h.ln = ln
	h.srv = &http.Server{Handler: http.HandlerFunc(h.serveHTTP)}
	h.running = true

	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Error("websocket server error", "address", h.owner.Address, "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down within the timeout. Open connections are
// closed by the shutdown.
func (h *WSServer) Stop(ctx context.Context, timeout time.Duration) error {
	h.mu.Lock()
	srv := h.srv
	h.srv = nil
	h.ln = nil
	h.running = false
	h.mu.Unlock()

	if srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return srv.Close()
	}
	return nil
}

// Addr returns the actual listen address, or "" when not running.
func (h *WSServer) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ln == nil {
		return ""
	}
	return h.ln.Addr().String()
}

func (h *WSServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		req := message.NewRequest(message.POST, "ws://"+r.Host+r.RequestURI)
		req.Header = r.Header
		req.Entity = content.NewBytes(data, "application/octet-stream")

		var payload []byte
		if h.owner.Next != nil {
			if resp := h.owner.Next.Handle(r.Context(), req); resp != nil && resp.Entity != nil {
				text, err := resp.Entity.Text()
				if err == nil {
					payload = []byte(text)
				}
			}
		}
		if err := conn.WriteMessage(msgType, payload); err != nil {
			return
		}
	}
}
