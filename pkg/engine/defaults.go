package engine

import (
	"fmt"

	"github.com/plugboard/plugboard/pkg/auth"
	"github.com/plugboard/plugboard/pkg/connector"
	"github.com/plugboard/plugboard/pkg/converter"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/loader"
)

// clientFactory adapts a client helper constructor to the loader
// factory shape. A nil owner builds the unbound prototype.
func clientFactory[H connector.ClientHelper](build func(*connector.Client) H) loader.Factory {
	return func(owner any) (helper.Helper, error) {
		switch o := owner.(type) {
		case nil:
			return build(nil), nil
		case *connector.Client:
			return build(o), nil
		default:
			return nil, fmt.Errorf("%w: client connector owner %T", helper.ErrUnsupportedValue, owner)
		}
	}
}

// serverFactory adapts a server helper constructor to the loader
// factory shape.
func serverFactory[H connector.ServerHelper](build func(*connector.Server) H) loader.Factory {
	return func(owner any) (helper.Helper, error) {
		switch o := owner.(type) {
		case nil:
			return build(nil), nil
		case *connector.Server:
			return build(o), nil
		default:
			return nil, fmt.Errorf("%w: server connector owner %T", helper.ErrUnsupportedValue, owner)
		}
	}
}

// plainFactory adapts an ownerless helper constructor.
func plainFactory[H helper.Helper](build func() H) loader.Factory {
	return func(owner any) (helper.Helper, error) {
		return build(), nil
	}
}

// registerBuiltinFactories makes every built-in helper resolvable by
// name on the engine resolver, so descriptor resources and user code
// can name them. Registration does not put anything in the registries.
func (e *Engine) registerBuiltinFactories() {
	r := e.chain.Engine()

	r.Register(helper.KindClientConnector, "http-client", clientFactory(connector.NewHTTPClient))
	r.Register(helper.KindClientConnector, "file-client", clientFactory(connector.NewFileClient))
	r.Register(helper.KindClientConnector, "zip-client", clientFactory(connector.NewZipClient))
	r.Register(helper.KindClientConnector, "websocket-client", clientFactory(connector.NewWSClient))
	r.Register(helper.KindClientConnector, "mqtt-client", clientFactory(connector.NewMQTTClient))
	r.Register(helper.KindClientConnector, "loop-client", clientFactory(func(c *connector.Client) *connector.LoopClient {
		return connector.NewLoopClient(c, e.loop)
	}))

	r.Register(helper.KindServerConnector, "http-server", serverFactory(connector.NewHTTPServer))
	r.Register(helper.KindServerConnector, "websocket-server", serverFactory(connector.NewWSServer))
	r.Register(helper.KindServerConnector, "mqtt-server", serverFactory(connector.NewMQTTServer))
	r.Register(helper.KindServerConnector, "loop-server", serverFactory(func(s *connector.Server) *connector.LoopServer {
		return connector.NewLoopServer(s, e.loop)
	}))

	r.Register(helper.KindProtocol, "http", plainFactory(NewHTTPProtocolHelper))
	r.Register(helper.KindProtocol, "webdav", plainFactory(NewWebDAVProtocolHelper))

	r.Register(helper.KindAuthenticator, "basic", plainFactory(auth.NewBasicHelper))
	r.Register(helper.KindAuthenticator, "smtp-plain", plainFactory(auth.NewSMTPPlainHelper))
	r.Register(helper.KindAuthenticator, "bearer", plainFactory(func() *auth.BearerHelper {
		return auth.NewBearerHelper(nil, 0)
	}))

	r.Register(helper.KindConverter, "default", plainFactory(converter.NewDefaultConverter))
	r.Register(helper.KindConverter, "json", plainFactory(converter.NewJSONConverter))
	r.Register(helper.KindConverter, "xml", plainFactory(converter.NewXMLConverter))
	r.Register(helper.KindConverter, "status", plainFactory(converter.NewStatusConverter))
}

// registerDefaultClients appends the built-in client connectors. The
// append is unconditional: discovery may already have added an
// equivalent helper, and nothing de-duplicates.
func (e *Engine) registerDefaultClients() {
	e.clients.Add(
		connector.NewHTTPClient(nil),
		connector.NewFileClient(nil),
		connector.NewZipClient(nil),
		connector.NewLoopClient(nil, e.loop),
	)
}

// registerDefaultServers appends the built-in server connectors.
func (e *Engine) registerDefaultServers() {
	e.servers.Add(
		connector.NewHTTPServer(nil),
		connector.NewLoopServer(nil, e.loop),
	)
}

// registerDefaultProtocols appends the built-in protocol helpers.
func (e *Engine) registerDefaultProtocols() {
	e.protocols.Add(
		NewHTTPProtocolHelper(),
		NewWebDAVProtocolHelper(),
	)
}

// registerDefaultAuthenticators appends the built-in authenticators.
func (e *Engine) registerDefaultAuthenticators() {
	e.authenticators.Add(
		auth.NewBasicHelper(),
		auth.NewSMTPPlainHelper(),
	)
}

// registerDefaultConverters appends the built-in converters.
func (e *Engine) registerDefaultConverters() {
	e.converters.Add(
		converter.NewDefaultConverter(),
		converter.NewStatusConverter(),
	)
}
