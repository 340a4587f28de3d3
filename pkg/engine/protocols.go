package engine

import (
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
)

// WebDAV request methods, contributed by the WebDAV protocol helper.
const (
	PROPFIND  message.Method = "PROPFIND"
	PROPPATCH message.Method = "PROPPATCH"
	MKCOL     message.Method = "MKCOL"
	COPY      message.Method = "COPY"
	MOVE      message.Method = "MOVE"
	LOCK      message.Method = "LOCK"
	UNLOCK    message.Method = "UNLOCK"
)

// HTTPProtocolHelper contributes the core HTTP request methods.
type HTTPProtocolHelper struct{}

// NewHTTPProtocolHelper creates the HTTP protocol helper.
func NewHTTPProtocolHelper() *HTTPProtocolHelper { return &HTTPProtocolHelper{} }

// Descriptor implements helper.Helper.
func (h *HTTPProtocolHelper) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindProtocol,
		Name:      "http",
		Protocols: protocol.NewSet(protocol.HTTP, protocol.HTTPS),
	}
}

// Methods implements helper.ProtocolHelper.
func (h *HTTPProtocolHelper) Methods() []message.Method {
	return []message.Method{
		message.GET, message.HEAD, message.POST, message.PUT,
		message.PATCH, message.DELETE, message.OPTIONS,
		message.TRACE, message.CONNECT,
	}
}

// WebDAVProtocolHelper contributes the WebDAV extension methods.
type WebDAVProtocolHelper struct{}

// NewWebDAVProtocolHelper creates the WebDAV protocol helper.
func NewWebDAVProtocolHelper() *WebDAVProtocolHelper { return &WebDAVProtocolHelper{} }

// Descriptor implements helper.Helper.
func (h *WebDAVProtocolHelper) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:      helper.KindProtocol,
		Name:      "webdav",
		Protocols: protocol.NewSet(protocol.HTTP, protocol.HTTPS),
	}
}

// Methods implements helper.ProtocolHelper.
func (h *WebDAVProtocolHelper) Methods() []message.Method {
	return []message.Method{PROPFIND, PROPPATCH, MKCOL, COPY, MOVE, LOCK, UNLOCK}
}
