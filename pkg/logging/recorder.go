package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Recorder is a slog.Handler that captures records in memory.
// It is used in tests to assert on the number and content of log
// entries emitted by components that absorb failures into logs,
// such as helper discovery.
type Recorder struct {
	store *recordStore
}

type recordStore struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{store: &recordStore{}}
}

// Enabled reports true for every level; filtering is left to callers.
func (r *Recorder) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

// Handle stores a clone of the record.
func (r *Recorder) Handle(ctx context.Context, rec slog.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append(r.store.records, rec.Clone())
	return nil
}

// WithAttrs returns a handler sharing the same record store.
// Attributes are not tracked; only the record itself is captured.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Recorder{store: r.store}
}

// WithGroup returns a handler sharing the same record store.
func (r *Recorder) WithGroup(name string) slog.Handler {
	return &Recorder{store: r.store}
}

// Records returns a copy of all captured records.
func (r *Recorder) Records() []slog.Record {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]slog.Record, len(r.store.records))
	copy(out, r.store.records)
	return out
}

// CountLevel returns the number of captured records at the given level.
func (r *Recorder) CountLevel(level slog.Level) int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, rec := range r.store.records {
		if rec.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the messages of all captured records, in order.
func (r *Recorder) Messages() []string {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]string, 0, len(r.store.records))
	for _, rec := range r.store.records {
		out = append(out, rec.Message)
	}
	return out
}
