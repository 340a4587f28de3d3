// Package ambient carries the execution state that follows a request
// across spawned work: the active application identity, the client
// dispatcher, the virtual host marker, and the in-flight response.
//
// The four values travel as explicit context values, never as hidden
// per-goroutine state. Before spawning concurrent work, Capture takes a
// Snapshot of the four values from the spawning context; the spawned
// unit receives them through a context built by Attach. Because the
// attached context is scoped to the spawned unit, the values cannot leak
// into whatever reuses the goroutine's resources afterwards — set on
// entry, gone on every exit path, including panics.
package ambient

import (
	"context"
	"fmt"

	"github.com/plugboard/plugboard/pkg/message"
)

type contextKey int

const (
	applicationKey contextKey = iota
	dispatcherKey
	virtualHostKey
	responseKey
)

// Snapshot holds the four ambient values of one unit of execution.
// The zero Snapshot means "no ambient state".
type Snapshot struct {
	// Application is the active application identity.
	Application string

	// Dispatcher is the active client dispatcher.
	Dispatcher message.Handler

	// VirtualHost is the active virtual host marker.
	VirtualHost string

	// Response is the in-flight response, if any.
	Response *message.Response
}

// IsZero reports whether the snapshot carries no ambient state.
func (s Snapshot) IsZero() bool {
	return s.Application == "" && s.Dispatcher == nil && s.VirtualHost == "" && s.Response == nil
}

// Capture snapshots the four ambient values from ctx.
func Capture(ctx context.Context) Snapshot {
	return Snapshot{
		Application: ApplicationFrom(ctx),
		Dispatcher:  DispatcherFrom(ctx),
		VirtualHost: VirtualHostFrom(ctx),
		Response:    ResponseFrom(ctx),
	}
}

// Attach returns a context carrying all four snapshot values. Values
// absent from the snapshot are attached as absent, masking whatever the
// parent context carried.
func (s Snapshot) Attach(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, applicationKey, s.Application)
	ctx = context.WithValue(ctx, dispatcherKey, s.Dispatcher)
	ctx = context.WithValue(ctx, virtualHostKey, s.VirtualHost)
	return context.WithValue(ctx, responseKey, s.Response)
}

// Detach masks all four ambient values on the context, so work receiving
// it starts with a clean slate regardless of what the parent carried.
func Detach(ctx context.Context) context.Context {
	return Snapshot{}.Attach(ctx)
}

// WithApplication returns a context carrying the application identity.
func WithApplication(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, applicationKey, id)
}

// WithDispatcher returns a context carrying the client dispatcher.
func WithDispatcher(ctx context.Context, d message.Handler) context.Context {
	return context.WithValue(ctx, dispatcherKey, d)
}

// WithVirtualHost returns a context carrying the virtual host marker.
func WithVirtualHost(ctx context.Context, marker string) context.Context {
	return context.WithValue(ctx, virtualHostKey, marker)
}

// WithResponse returns a context carrying the in-flight response.
func WithResponse(ctx context.Context, resp *message.Response) context.Context {
	return context.WithValue(ctx, responseKey, resp)
}

// ApplicationFrom returns the active application identity, or "".
func ApplicationFrom(ctx context.Context) string {
	id, _ := ctx.Value(applicationKey).(string)
	return id
}

// DispatcherFrom returns the active client dispatcher, or nil.
func DispatcherFrom(ctx context.Context) message.Handler {
	d, _ := ctx.Value(dispatcherKey).(message.Handler)
	return d
}

// VirtualHostFrom returns the active virtual host marker, or "".
func VirtualHostFrom(ctx context.Context) string {
	marker, _ := ctx.Value(virtualHostKey).(string)
	return marker
}

// ResponseFrom returns the in-flight response, or nil.
func ResponseFrom(ctx context.Context) *message.Response {
	resp, _ := ctx.Value(responseKey).(*message.Response)
	return resp
}

// Run executes task with the snapshot attached to a context derived from
// ctx. A panic inside the task is recovered and returned as an error, so
// the calling unit survives and the attached values still end with the
// task's scope.
func (s Snapshot) Run(ctx context.Context, task func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ambient task panicked: %v", r)
		}
	}()
	return task(s.Attach(ctx))
}

// Go captures the ambient state of ctx and spawns task on a new
// goroutine with that state restored onto a fresh root context. The
// returned channel yields the task's outcome exactly once. The spawned
// unit's ambient values exist only for the duration of the task,
// whether it completes normally, returns an error, or panics.
func Go(ctx context.Context, task func(context.Context) error) <-chan error {
	snap := Capture(ctx)
	done := make(chan error, 1)
	go func() {
		done <- snap.Run(context.Background(), task)
	}()
	return done
}
