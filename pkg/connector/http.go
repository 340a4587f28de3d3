package connector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/logging"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
)

// HTTPClient is the built-in HTTP/HTTPS client connector helper, backed
// by net/http.
type HTTPClient struct {
	owner  *Client
	client *http.Client
	log    *slog.Logger
}

// NewHTTPClient creates an HTTP client helper. owner may be nil for the
// unbound prototype held in the registry.
func NewHTTPClient(owner *Client) *HTTPClient {
	h := &HTTPClient{owner: owner, client: &http.Client{}, log: logging.Nop()}
	if owner != nil {
		h.client.Timeout = owner.Timeout
		h.log = owner.Logger()
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *HTTPClient) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindClientConnector,
		Name:      "http-client",
		Protocols: protocol.NewSet(protocol.HTTP, protocol.HTTPS),
	}
}

// Bind implements ClientHelper.
func (h *HTTPClient) Bind(c *Client) (ClientHelper, error) {
	return NewHTTPClient(c), nil
}

// Start implements ClientHelper.
func (h *HTTPClient) Start(ctx context.Context) error { return nil }

// Stop closes idle connections.
func (h *HTTPClient) Stop(ctx context.Context, timeout time.Duration) error {
	h.client.CloseIdleConnections()
	return nil
}

// Handle dispatches the request over HTTP. Transport failures map to a
// 502 response rather than an error: callers deal in statuses.
func (h *HTTPClient) Handle(ctx context.Context, req *message.Request) *message.Response {
	var body io.Reader
	if req.Entity != nil && req.Entity.Available() {
		stream, err := req.Entity.Stream()
		if err != nil {
			h.log.Warn("unable to read request entity", "url", req.URL, "error", err)
			return message.NewResponse(message.StatusInternalServerError)
		}
		defer func() { _ = stream.Close() }()
		body = stream
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), req.URL, body)
	if err != nil {
		h.log.Warn("invalid request", "url", req.URL, "error", err)
		return message.NewResponse(message.StatusBadRequest)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Entity != nil {
		if mt := req.Entity.MediaType(); mt != "" && httpReq.Header.Get("Content-Type") == "" {
			httpReq.Header.Set("Content-Type", mt)
		}
	}

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		h.log.Warn("http dispatch failed", "url", req.URL, "error", err)
		return message.NewResponse(message.StatusBadGateway)
	}

	resp := message.NewResponse(message.Status(httpResp.StatusCode))
	resp.Header = httpResp.Header
	resp.Entity = entityFromHTTP(httpResp.Body, httpResp.ContentLength, httpResp.Header.Get("Content-Type"))
	return resp
}

// entityFromHTTP wraps an HTTP body in a one-shot representation,
// splitting the charset parameter out of the Content-Type header.
func entityFromHTTP(body io.ReadCloser, length int64, contentType string) content.Representation {
	mediaType := contentType
	charset := ""
	if contentType != "" {
		if mt, params, err := mime.ParseMediaType(contentType); err == nil {
			mediaType = mt
			charset = params["charset"]
		}
	}
	if length < 0 {
		length = content.SizeUnknown
	}
	rep := content.NewReader(body, length, mediaType)
	rep.SetCharacterSet(charset)
	return rep
}

// HTTPServer is the built-in HTTP server connector helper.
type HTTPServer struct {
	owner *Server
	log   *slog.Logger

	mu      sync.Mutex
	srv     *http.Server
	ln      net.Listener
	running bool
}

// NewHTTPServer creates an HTTP server helper. owner may be nil for the
// unbound prototype held in the registry.
func NewHTTPServer(owner *Server) *HTTPServer {
	h := &HTTPServer{owner: owner, log: logging.Nop()}
	if owner != nil {
		h.log = owner.Logger()
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *HTTPServer) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindServerConnector,
		Name:      "http-server",
		Protocols: protocol.NewSet(protocol.HTTP),
	}
}

// Bind implements ServerHelper.
func (h *HTTPServer) Bind(s *Server) (ServerHelper, error) {
	return NewHTTPServer(s), nil
}

// Start begins listening on the owner's address.
func (h *HTTPServer) Start(ctx context.Context) error {
	if h.owner == nil {
		return helper.ErrNotBound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return errors.New("http server is already running")
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
			h.log.Error("http server error", "address", h.owner.Address, "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the server down within the timeout.
func (h *HTTPServer) Stop(ctx context.Context, timeout time.Duration) error {
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
	return srv.Shutdown(shutdownCtx)
}

// Addr returns the actual listen address, or "" when not running.
func (h *HTTPServer) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ln == nil {
		return ""
	}
	return h.ln.Addr().String()
}

func (h *HTTPServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if h.owner.Next == nil {
		w.WriteHeader(int(message.StatusServiceUnavailable))
		return
	}

	req := message.NewRequest(message.Method(r.Method), "http://"+r.Host+r.RequestURI)
	req.Header = r.Header
	if r.ContentLength != 0 {
		req.Entity = entityFromHTTP(r.Body, r.ContentLength, r.Header.Get("Content-Type"))
	}

	resp := h.owner.Next.Handle(r.Context(), req)
	if resp == nil {
		w.WriteHeader(int(message.StatusInternalServerError))
		return
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if resp.Entity != nil {
		if mt := resp.Entity.MediaType(); mt != "" && w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", mt)
		}
	}
	w.WriteHeader(int(resp.Status))
	if resp.Entity != nil && resp.Entity.Available() {
		if _, err := resp.Entity.WriteTo(w); err != nil {
			h.log.Debug("unable to write response entity", "error", err)
		}
	}
}
