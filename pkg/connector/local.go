package connector

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/logging"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
)

// FileClient serves file:// URLs from the local filesystem. Read-only:
// only GET and HEAD are supported.
type FileClient struct {
	owner *Client
	log   *slog.Logger
}

// NewFileClient creates a file client helper.
func NewFileClient(owner *Client) *FileClient {
	h := &FileClient{owner: owner, log: logging.Nop()}
	if owner != nil {
		h.log = owner.Logger()
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *FileClient) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindClientConnector,
		Name:      "file-client",
		Protocols: protocol.NewSet(protocol.File),
	}
}

// Bind implements ClientHelper.
func (h *FileClient) Bind(c *Client) (ClientHelper, error) { return NewFileClient(c), nil }

// Start implements ClientHelper.
func (h *FileClient) Start(ctx context.Context) error { return nil }

// Stop implements ClientHelper.
func (h *FileClient) Stop(ctx context.Context, timeout time.Duration) error { return nil }

// Handle serves the file named by the URL path.
func (h *FileClient) Handle(ctx context.Context, req *message.Request) *message.Response {
	if req.Method != message.GET && req.Method != message.HEAD {
		return message.NewResponse(message.StatusMethodNotAllowed)
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return message.NewResponse(message.StatusBadRequest)
	}

	info, err := os.Stat(u.Path)
	if err != nil || info.IsDir() {
		return message.NewResponse(message.StatusNotFound)
	}

	resp := message.NewResponse(message.StatusOK)
	if req.Method == message.HEAD {
		return resp
	}
	f, err := os.Open(u.Path)
	if err != nil {
		h.log.Warn("unable to open file", "path", u.Path, "error", err)
		return message.NewResponse(message.StatusNotFound)
	}
	resp.Entity = content.NewReader(f, info.Size(), typeByName(u.Path))
	return resp
}

// ZipClient serves entries inside zip archives. URLs take the form
// zip:/path/to/archive.zip!/entry/within.
type ZipClient struct {
	owner *Client
	log   *slog.Logger
}

// NewZipClient creates a zip client helper.
func NewZipClient(owner *Client) *ZipClient {
	h := &ZipClient{owner: owner, log: logging.Nop()}
	if owner != nil {
		h.log = owner.Logger()
	}
	return h
}

// Descriptor implements helper.Helper.
func (h *ZipClient) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindClientConnector,
		Name:      "zip-client",
		Protocols: protocol.NewSet(protocol.Zip),
	}
}

// Bind implements ClientHelper.
func (h *ZipClient) Bind(c *Client) (ClientHelper, error) { return NewZipClient(c), nil }

// Start implements ClientHelper.
func (h *ZipClient) Start(ctx context.Context) error { return nil }

// Stop implements ClientHelper.
func (h *ZipClient) Stop(ctx context.Context, timeout time.Duration) error { return nil }

// Handle serves an entry from the archive. The entry bytes are read
// into memory so the archive can be closed before returning.
func (h *ZipClient) Handle(ctx context.Context, req *message.Request) *message.Response {
	if req.Method != message.GET && req.Method != message.HEAD {
		return message.NewResponse(message.StatusMethodNotAllowed)
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return message.NewResponse(message.StatusBadRequest)
	}

	archivePath, entryPath, ok := strings.Cut(u.Path, "!")
	if !ok {
		return message.NewResponse(message.StatusBadRequest)
	}
	entryPath = strings.TrimPrefix(entryPath, "/")

	rc, err := zip.OpenReader(archivePath)
	if err != nil {
		return message.NewResponse(message.StatusNotFound)
	}
	defer func() { _ = rc.Close() }()

	f, err := rc.Open(entryPath)
	if err != nil {
		return message.NewResponse(message.StatusNotFound)
	}
	defer func() { _ = f.Close() }()

	resp := message.NewResponse(message.StatusOK)
	if req.Method == message.HEAD {
		return resp
	}
	data, err := io.ReadAll(f)
	if err != nil {
		h.log.Warn("unable to read zip entry", "archive", archivePath, "entry", entryPath, "error", err)
		return message.NewResponse(message.StatusInternalServerError)
	}
	resp.Entity = content.NewBytes(data, typeByName(entryPath))
	return resp
}

// typeByName guesses a media type from a file extension.
func typeByName(name string) string {
	mt := mime.TypeByExtension(filepath.Ext(name))
	if mt == "" {
		return "application/octet-stream"
	}
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}

// LoopClient dispatches loop:// requests onto an in-process network.
type LoopClient struct {
	owner   *Client
	network *LoopNetwork
}

// NewLoopClient creates a loopback client helper on the given network.
func NewLoopClient(owner *Client, network *LoopNetwork) *LoopClient {
	return &LoopClient{owner: owner, network: network}
}

// Descriptor implements helper.Helper.
func (h *LoopClient) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindClientConnector,
		Name:      "loop-client",
		Protocols: protocol.NewSet(protocol.Loop),
	}
}

// Bind implements ClientHelper. The bound instance shares the
// prototype's network.
func (h *LoopClient) Bind(c *Client) (ClientHelper, error) {
	return NewLoopClient(c, h.network), nil
}

// Start implements ClientHelper.
func (h *LoopClient) Start(ctx context.Context) error { return nil }

// Stop implements ClientHelper.
func (h *LoopClient) Stop(ctx context.Context, timeout time.Duration) error { return nil }

// Handle routes the request through the loopback network.
func (h *LoopClient) Handle(ctx context.Context, req *message.Request) *message.Response {
	if h.network == nil {
		return message.NewResponse(message.StatusServiceUnavailable)
	}
	return h.network.Handle(ctx, req)
}

// LoopServer exposes its owner's handler on an in-process network under
// the owner's address as authority.
type LoopServer struct {
	owner   *Server
	network *LoopNetwork
}

// NewLoopServer creates a loopback server helper on the given network.
func NewLoopServer(owner *Server, network *LoopNetwork) *LoopServer {
	return &LoopServer{owner: owner, network: network}
}

// Descriptor implements helper.Helper.
func (h *LoopServer) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindServerConnector,
		Name:      "loop-server",
		Protocols: protocol.NewSet(protocol.Loop),
	}
}

// Bind implements ServerHelper.
func (h *LoopServer) Bind(s *Server) (ServerHelper, error) {
	return NewLoopServer(s, h.network), nil
}

// Start registers the owner's handler on the network.
func (h *LoopServer) Start(ctx context.Context) error {
	if h.owner == nil {
		return helper.ErrNotBound
	}
	if h.network == nil {
		return helper.Error("loop server has no network")
	}
	h.network.Register(h.owner.Address, h.owner.Next)
	return nil
}

// Stop removes the owner's route from the network.
func (h *LoopServer) Stop(ctx context.Context, timeout time.Duration) error {
	if h.owner != nil && h.network != nil {
		h.network.Unregister(h.owner.Address)
	}
	return nil
}
