// Package fetch resolves arbitrary resource URLs through a dispatch
// pipeline. Instead of a process-wide protocol hook, callers receive an
// injectable Fetcher and decide themselves where it is consulted.
package fetch

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/plugboard/plugboard/pkg/ambient"
	"github.com/plugboard/plugboard/pkg/logging"
	"github.com/plugboard/plugboard/pkg/message"
)

// Error is a simple error type for fetch errors.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors.
var (
	// ErrNoDispatcher is returned when the ambient context carries no
	// client dispatcher to fetch through.
	ErrNoDispatcher = Error("no ambient dispatcher available")

	// ErrUnavailable is returned when the dispatched fetch did not
	// produce a successful response.
	ErrUnavailable = Error("resource is not available")
)

// Fetcher opens arbitrary resource URLs. Opening performs the whole
// fetch; there is no separate connect step.
type Fetcher interface {
	// Open returns the resource's content stream. The caller owns
	// closing it.
	Open(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// DispatchFetcher fetches by issuing a GET through the ambient
// context's client dispatcher. The body stream is handed out only when
// the response status indicates success; any other outcome yields no
// stream.
type DispatchFetcher struct {
	log *slog.Logger
}

// NewDispatchFetcher creates a dispatch-backed fetcher. log may be nil.
func NewDispatchFetcher(log *slog.Logger) *DispatchFetcher {
	if log == nil {
		log = logging.Nop()
	}
	return &DispatchFetcher{log: log}
}

// Open implements Fetcher.
func (f *DispatchFetcher) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	dispatcher := ambient.DispatcherFrom(ctx)
	if dispatcher == nil {
		return nil, ErrNoDispatcher
	}

	resp := dispatcher.Handle(ctx, message.NewRequest(message.GET, rawURL))
	if resp == nil || !resp.Status.IsSuccess() {
		status := 0
		if resp != nil {
			status = int(resp.Status)
		}
		f.log.Debug("fetch did not succeed", "url", rawURL, "status", status)
		return nil, ErrUnavailable
	}
	if resp.Entity == nil {
		return io.NopCloser(strings.NewReader("")), nil
	}
	return resp.Entity.Stream()
}
