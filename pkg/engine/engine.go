package engine

import (
	"context"
	"io/fs"
	"log/slog"
	"net/url"
	"time"

	"github.com/plugboard/plugboard/internal/id"
	"github.com/plugboard/plugboard/pkg/connector"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/loader"
	"github.com/plugboard/plugboard/pkg/logging"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
	"github.com/plugboard/plugboard/pkg/registry"
)

// Provider is a descriptor resource provider handed to the engine at
// construction, typically a plugin directory.
type Provider struct {
	// Name labels the provider in diagnostics.
	Name string

	// FS is the filesystem searched for descriptor resources.
	FS fs.FS
}

// Options configures engine construction.
type Options struct {
	// Logger receives engine diagnostics. Nil means silent.
	Logger *slog.Logger

	// Discover controls whether construction runs discovery. When false
	// the registries start empty and Discover can be called later.
	Discover bool

	// Providers are the descriptor resource providers scanned by
	// discovery, in priority order.
	Providers []Provider

	// UserResolver is the optional fallback resolver consulted by
	// discovery for provider names the engine resolver does not know.
	UserResolver loader.Resolver
}

// Engine owns the five helper registries and the machinery that
// populates and queries them.
type Engine struct {
	id    string
	log   *slog.Logger
	chain *loader.Chain
	loop  *connector.LoopNetwork

	clients        *registry.Registry[connector.ClientHelper]
	servers        *registry.Registry[connector.ServerHelper]
	protocols      *registry.Registry[helper.ProtocolHelper]
	authenticators *registry.Registry[helper.AuthenticatorHelper]
	converters     *registry.Registry[helper.ConverterHelper]
}

// New creates an engine with defaults registered and discovery run
// against no providers, which leaves the registries holding exactly the
// built-in helpers.
func New() *Engine {
	return NewWithOptions(Options{Discover: true})
}

// NewWithOptions creates an engine. The built-in helper factories are
// always registered on the loader chain; discovery, when enabled, runs
// synchronously before the constructor returns.
func NewWithOptions(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	e := &Engine{
		id:             id.UUID(),
		log:            log,
		chain:          loader.NewChain(),
		loop:           connector.NewLoopNetwork(),
		clients:        registry.New[connector.ClientHelper](),
		servers:        registry.New[connector.ServerHelper](),
		protocols:      registry.New[helper.ProtocolHelper](),
		authenticators: registry.New[helper.AuthenticatorHelper](),
		converters:     registry.New[helper.ConverterHelper](),
	}

	e.registerBuiltinFactories()
	e.chain.SetUser(opts.UserResolver)
	for _, p := range opts.Providers {
		e.chain.AddProvider(p.Name, p.FS)
	}

	if opts.Discover {
		e.Discover()
	}
	return e
}

// ID returns the engine instance identifier, a UUID assigned at
// construction.
func (e *Engine) ID() string { return e.id }

// Chain returns the engine's loader chain.
func (e *Engine) Chain() *loader.Chain { return e.chain }

// LoopNetwork returns the engine-scoped loopback network shared by the
// built-in loop connectors.
func (e *Engine) LoopNetwork() *connector.LoopNetwork { return e.loop }

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.log }

// RegisteredClients returns the current client connector snapshot.
func (e *Engine) RegisteredClients() []connector.ClientHelper {
	return e.clients.Items()
}

// SetRegisteredClients replaces the client connector registry contents.
// The caller's slice is copied, never retained; passing the registry's
// own current snapshot is a no-op.
func (e *Engine) SetRegisteredClients(items []connector.ClientHelper) {
	e.clients.Replace(items)
}

// RegisteredServers returns the current server connector snapshot.
func (e *Engine) RegisteredServers() []connector.ServerHelper {
	return e.servers.Items()
}

// SetRegisteredServers replaces the server connector registry contents.
func (e *Engine) SetRegisteredServers(items []connector.ServerHelper) {
	e.servers.Replace(items)
}

// RegisteredProtocols returns the current protocol helper snapshot.
func (e *Engine) RegisteredProtocols() []helper.ProtocolHelper {
	return e.protocols.Items()
}

// SetRegisteredProtocols replaces the protocol helper registry contents.
func (e *Engine) SetRegisteredProtocols(items []helper.ProtocolHelper) {
	e.protocols.Replace(items)
}

// RegisteredAuthenticators returns the current authenticator snapshot.
func (e *Engine) RegisteredAuthenticators() []helper.AuthenticatorHelper {
	return e.authenticators.Items()
}

// SetRegisteredAuthenticators replaces the authenticator registry
// contents.
func (e *Engine) SetRegisteredAuthenticators(items []helper.AuthenticatorHelper) {
	e.authenticators.Replace(items)
}

// RegisteredConverters returns the current converter snapshot.
func (e *Engine) RegisteredConverters() []helper.ConverterHelper {
	return e.converters.Items()
}

// SetRegisteredConverters replaces the converter registry contents.
func (e *Engine) SetRegisteredConverters(items []helper.ConverterHelper) {
	e.converters.Replace(items)
}

// Reset empties all five registries. A following Discover rebuilds them.
func (e *Engine) Reset() {
	e.clients.Clear()
	e.servers.Clear()
	e.protocols.Clear()
	e.authenticators.Clear()
	e.converters.Clear()
}

// Dispatcher returns a handler that routes each request to a client
// connector selected by the URL scheme. Requests no connector supports
// yield 503.
func (e *Engine) Dispatcher() message.Handler {
	return message.HandlerFunc(func(ctx context.Context, req *message.Request) *message.Response {
		u, err := url.Parse(req.URL)
		if err != nil || u.Scheme == "" {
			return message.NewResponse(message.StatusBadRequest)
		}
		client := &connector.Client{
			ID:        e.id,
			Protocols: protocol.NewSet(protocol.Protocol(u.Scheme)),
			Timeout:   30 * time.Second,
			Log:       e.log,
		}
		bound := e.SelectClient(client)
		if bound == nil {
			return message.NewResponse(message.StatusServiceUnavailable)
		}
		return bound.Handle(ctx, req)
	})
}
