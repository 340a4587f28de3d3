package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandlerFansOut(t *testing.T) {
	t.Parallel()

	a := NewRecorder()
	b := NewRecorder()
	log := slog.New(NewMultiHandler(a, b))

	log.Info("registered helper", "name", "http-client")
	log.Warn("descriptor line skipped")

	require.Len(t, a.Records(), 2)
	require.Len(t, b.Records(), 2)
	assert.Equal(t, []string{"registered helper", "descriptor line skipped"}, a.Messages())
	assert.Equal(t, a.Messages(), b.Messages())
}

func TestMultiHandlerRespectsChildLevels(t *testing.T) {
	t.Parallel()

	var quiet, chatty bytes.Buffer
	multi := NewMultiHandler(
		NewHandler(Config{Level: LevelError, Output: &quiet}),
		NewHandler(Config{Level: LevelDebug, Output: &chatty}),
	)
	log := slog.New(multi)

	log.Debug("fine detail")
	log.Error("it broke")

	// Debug is enabled because at least one child accepts it.
	assert.NotContains(t, quiet.String(), "fine detail")
	assert.Contains(t, quiet.String(), "it broke")
	assert.Contains(t, chatty.String(), "fine detail")
	assert.Contains(t, chatty.String(), "it broke")
}

func TestMultiHandlerEnabledWhenAnyChildIs(t *testing.T) {
	t.Parallel()

	multi := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: LevelError}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: LevelInfo}),
	)
	assert.True(t, multi.Enabled(context.Background(), LevelInfo))
	assert.False(t, multi.Enabled(context.Background(), LevelDebug))
}

func TestMultiHandlerWithAttrsKeepsBothSinks(t *testing.T) {
	t.Parallel()

	a := NewRecorder()
	b := NewRecorder()
	log := slog.New(NewMultiHandler(a, b)).With("kind", "client-connector")

	log.Info("bound")

	require.Len(t, a.Records(), 1)
	require.Len(t, b.Records(), 1)
}
