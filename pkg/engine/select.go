package engine

import (
	"github.com/plugboard/plugboard/pkg/connector"
	"github.com/plugboard/plugboard/pkg/helper"
)

// SelectClient returns a client connector helper bound to the client,
// or nil when no registered helper qualifies. The first helper whose
// protocol set is a superset of the client's required set wins; the
// optional exact-name filter is applied only after a protocol-compatible
// helper is found. An empty required set never matches.
//
// No match is routine application state, reported as nil plus a logged
// diagnostic naming every requested protocol, never as an error.
func (e *Engine) SelectClient(client *connector.Client) connector.ClientHelper {
	if client == nil || client.Protocols.IsEmpty() {
		return nil
	}

	for _, h := range e.clients.Items() {
		d := h.Descriptor()
		if !d.Protocols.ContainsAll(client.Protocols) {
			continue
		}
		if client.Helper != "" && d.Name != client.Helper {
			continue
		}
		bound, err := h.Bind(client)
		if err != nil {
			e.log.Warn("unable to bind client connector",
				"helper", d.Name, "client", client.ID, "error", err)
			continue
		}
		return bound
	}

	e.log.Warn("no available client connector supports the required protocols",
		"client", client.ID, "protocols", client.Protocols.String())
	return nil
}

// SelectServer returns a server connector helper bound to the server,
// or nil when no registered helper qualifies. Unlike the client variant,
// the exact-name filter is applied before the protocol check.
func (e *Engine) SelectServer(server *connector.Server) connector.ServerHelper {
	if server == nil || server.Protocols.IsEmpty() {
		return nil
	}

	for _, h := range e.servers.Items() {
		d := h.Descriptor()
		if server.Helper != "" && d.Name != server.Helper {
			continue
		}
		if !d.Protocols.ContainsAll(server.Protocols) {
			continue
		}
		bound, err := h.Bind(server)
		if err != nil {
			e.log.Warn("unable to bind server connector",
				"helper", d.Name, "server", server.ID, "error", err)
			continue
		}
		return bound
	}

	e.log.Warn("no available server connector supports the required protocols",
		"server", server.ID, "protocols", server.Protocols.String())
	return nil
}

// SelectAuthenticator returns the first registered authenticator for the
// scheme whose side flags cover the request: a client-side request
// requires client-side support, a server-side request requires
// server-side support, and both may be required at once. Absence returns
// nil, not an error.
func (e *Engine) SelectAuthenticator(scheme helper.ChallengeScheme, wantClient, wantServer bool) helper.AuthenticatorHelper {
	for _, h := range e.authenticators.Items() {
		d := h.Descriptor()
		if d.Scheme != scheme {
			continue
		}
		if wantClient && !d.ClientSide {
			continue
		}
		if wantServer && !d.ServerSide {
			continue
		}
		return h
	}
	return nil
}

// SelectConverter returns the first registered converter declaring the
// media type, with "*/*" matching anything. Absence returns nil.
func (e *Engine) SelectConverter(mediaType string) helper.ConverterHelper {
	for _, h := range e.converters.Items() {
		for _, mt := range h.MediaTypes() {
			if mt == mediaType || mt == "*/*" {
				return h
			}
		}
	}
	return nil
}
