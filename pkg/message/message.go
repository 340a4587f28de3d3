// Package message defines the minimal request/response plumbing shared by
// connectors, the ambient context, and the fetch adapter. Parsing wire
// messages is a connector concern; this package only carries them.
package message

import (
	"context"
	"net/http"

	"github.com/plugboard/plugboard/pkg/content"
)

// Method is a request method name, e.g. "GET" or "PROPFIND".
type Method string

// Core request methods.
const (
	GET     Method = "GET"
	HEAD    Method = "HEAD"
	POST    Method = "POST"
	PUT     Method = "PUT"
	PATCH   Method = "PATCH"
	DELETE  Method = "DELETE"
	OPTIONS Method = "OPTIONS"
	TRACE   Method = "TRACE"
	CONNECT Method = "CONNECT"
)

// String returns the method name.
func (m Method) String() string { return string(m) }

// Status is a response status code.
type Status int

// Common statuses used by the built-in connectors.
const (
	StatusOK                  Status = 200
	StatusNoContent           Status = 204
	StatusBadRequest          Status = 400
	StatusUnauthorized        Status = 401
	StatusNotFound            Status = 404
	StatusMethodNotAllowed    Status = 405
	StatusInternalServerError Status = 500
	StatusBadGateway          Status = 502
	StatusServiceUnavailable  Status = 503
)

// IsSuccess reports whether the status is in the 2xx range.
func (s Status) IsSuccess() bool {
	return s >= 200 && s < 300
}

// IsError reports whether the status is in the 4xx or 5xx range.
func (s Status) IsError() bool {
	return s >= 400
}

// Request is a protocol-independent request.
type Request struct {
	Method Method
	URL    string
	Header http.Header
	Entity content.Representation
}

// NewRequest creates a request with an empty header.
func NewRequest(method Method, url string) *Request {
	return &Request{Method: method, URL: url, Header: make(http.Header)}
}

// Response is a protocol-independent response.
type Response struct {
	Status Status
	Header http.Header
	Entity content.Representation
}

// NewResponse creates a response with an empty header.
func NewResponse(status Status) *Response {
	return &Response{Status: status, Header: make(http.Header)}
}

// Handler dispatches a request and produces a response. Implementations
// must not return nil; failures are expressed as error statuses.
type Handler interface {
	Handle(ctx context.Context, req *Request) *Response
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) *Response

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) *Response {
	return f(ctx, req)
}
