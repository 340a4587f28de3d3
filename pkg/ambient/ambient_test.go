package ambient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/plugboard/plugboard/pkg/message"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestContext() context.Context {
	ctx := WithApplication(context.Background(), "app-1")
	ctx = WithDispatcher(ctx, message.HandlerFunc(func(ctx context.Context, req *message.Request) *message.Response {
		return message.NewResponse(message.StatusOK)
	}))
	ctx = WithVirtualHost(ctx, "vh-9")
	return WithResponse(ctx, message.NewResponse(message.StatusNoContent))
}

func TestCaptureAttachRoundTrip(t *testing.T) {
	t.Parallel()

	snap := Capture(newTestContext())
	require.False(t, snap.IsZero())

	ctx := snap.Attach(context.Background())
	assert.Equal(t, "app-1", ApplicationFrom(ctx))
	assert.NotNil(t, DispatcherFrom(ctx))
	assert.Equal(t, "vh-9", VirtualHostFrom(ctx))
	require.NotNil(t, ResponseFrom(ctx))
	assert.Equal(t, message.StatusNoContent, ResponseFrom(ctx).Status)
}

func TestCaptureEmptyContext(t *testing.T) {
	t.Parallel()

	assert.True(t, Capture(context.Background()).IsZero())
}

func TestDetachMasksParentValues(t *testing.T) {
	t.Parallel()

	ctx := Detach(newTestContext())
	assert.True(t, Capture(ctx).IsZero())
}

func TestGoPropagatesSnapshot(t *testing.T) {
	t.Parallel()

	parent := newTestContext()
	var seen Snapshot
	err := <-Go(parent, func(ctx context.Context) error {
		seen = Capture(ctx)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "app-1", seen.Application)
	assert.Equal(t, "vh-9", seen.VirtualHost)
	assert.NotNil(t, seen.Dispatcher)
	assert.NotNil(t, seen.Response)
}

func TestAmbientValuesClearedAfterFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := <-Go(newTestContext(), func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	// After the failed unit finishes, no ambient state survives
	// anywhere a later unit could pick it up.
	assert.True(t, Capture(context.Background()).IsZero())
}

func TestRunRecoversPanic(t *testing.T) {
	t.Parallel()

	snap := Capture(newTestContext())
	err := snap.Run(context.Background(), func(ctx context.Context) error {
		panic("exploded")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exploded")
}

func TestGoDoesNotInheritParentCancellation(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(newTestContext())
	cancel()

	started := make(chan struct{})
	err := <-Go(parent, func(ctx context.Context) error {
		close(started)
		return ctx.Err()
	})
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("task never started")
	}
	assert.NoError(t, err)
}
