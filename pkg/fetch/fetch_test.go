package fetch

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugboard/plugboard/pkg/ambient"
	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/message"
)

func stubDispatcher(status message.Status, body string) message.Handler {
	return message.HandlerFunc(func(ctx context.Context, req *message.Request) *message.Response {
		resp := message.NewResponse(status)
		if body != "" {
			resp.Entity = content.NewString(body, "text/plain")
		}
		return resp
	})
}

func TestDispatchFetcher(t *testing.T) {
	t.Parallel()

	f := NewDispatchFetcher(nil)

	t.Run("yields body on success", func(t *testing.T) {
		t.Parallel()
		ctx := ambient.WithDispatcher(context.Background(), stubDispatcher(message.StatusOK, "payload"))
		stream, err := f.Open(ctx, "loop://svc/doc")
		require.NoError(t, err)
		defer func() { _ = stream.Close() }()

		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("dispatches a GET", func(t *testing.T) {
		t.Parallel()
		var gotMethod message.Method
		dispatcher := message.HandlerFunc(func(ctx context.Context, req *message.Request) *message.Response {
			gotMethod = req.Method
			return message.NewResponse(message.StatusOK)
		})
		ctx := ambient.WithDispatcher(context.Background(), dispatcher)
		stream, err := f.Open(ctx, "loop://svc/doc")
		require.NoError(t, err)
		_ = stream.Close()
		assert.Equal(t, message.GET, gotMethod)
	})

	t.Run("no stream on error status", func(t *testing.T) {
		t.Parallel()
		ctx := ambient.WithDispatcher(context.Background(), stubDispatcher(message.StatusNotFound, "ignored"))
		_, err := f.Open(ctx, "loop://svc/missing")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("no ambient dispatcher", func(t *testing.T) {
		t.Parallel()
		_, err := f.Open(context.Background(), "loop://svc/doc")
		assert.ErrorIs(t, err, ErrNoDispatcher)
	})

	t.Run("success without entity yields empty stream", func(t *testing.T) {
		t.Parallel()
		ctx := ambient.WithDispatcher(context.Background(), stubDispatcher(message.StatusNoContent, ""))
		stream, err := f.Open(ctx, "loop://svc/empty")
		require.NoError(t, err)
		defer func() { _ = stream.Close() }()
		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}
