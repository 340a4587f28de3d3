package engine

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/plugboard/plugboard/pkg/connector"
	"github.com/plugboard/plugboard/pkg/helper"
	"github.com/plugboard/plugboard/pkg/loader"
)

// Discover populates the five registries: for each helper kind it scans
// every descriptor resource the loader chain can reach, builds the
// providers the descriptors name, then appends the built-in defaults.
//
// Discovery is deliberately fault tolerant. A provider that cannot be
// resolved or built costs a log line and nothing else; an unreadable
// resource aborts only that resource. The defaults are appended without
// checking what discovery already found, so a descriptor naming a
// built-in helper yields two equivalent registry entries.
func (e *Engine) Discover() {
	e.discoverKind(helper.KindClientConnector, func(h helper.Helper) error {
		c, ok := h.(connector.ClientHelper)
		if !ok {
			return helper.ErrWrongKind
		}
		e.clients.Add(c)
		return nil
	})
	e.registerDefaultClients()

	e.discoverKind(helper.KindServerConnector, func(h helper.Helper) error {
		s, ok := h.(connector.ServerHelper)
		if !ok {
			return helper.ErrWrongKind
		}
		e.servers.Add(s)
		return nil
	})
	e.registerDefaultServers()

	e.discoverKind(helper.KindProtocol, func(h helper.Helper) error {
		p, ok := h.(helper.ProtocolHelper)
		if !ok {
			return helper.ErrWrongKind
		}
		e.protocols.Add(p)
		return nil
	})
	e.registerDefaultProtocols()

	e.discoverKind(helper.KindAuthenticator, func(h helper.Helper) error {
		a, ok := h.(helper.AuthenticatorHelper)
		if !ok {
			return helper.ErrWrongKind
		}
		e.authenticators.Add(a)
		return nil
	})
	e.registerDefaultAuthenticators()

	e.discoverKind(helper.KindConverter, func(h helper.Helper) error {
		c, ok := h.(helper.ConverterHelper)
		if !ok {
			return helper.ErrWrongKind
		}
		e.converters.Add(c)
		return nil
	})
	e.registerDefaultConverters()
}

// discoverKind scans every descriptor resource for one kind and feeds
// each successfully built helper to register.
func (e *Engine) discoverKind(kind helper.Kind, register func(helper.Helper) error) {
	for _, res := range e.chain.Resources(kind.DescriptorPath()) {
		if err := e.scanDescriptor(kind, res, register); err != nil {
			e.log.Error("unable to read helper descriptor",
				"kind", kind.String(), "source", res.Source, "path", res.Path, "error", err)
		}
	}
}

// scanDescriptor reads one descriptor resource line by line. Each line
// names a provider; a trailing '#' comment is stripped and surrounding
// whitespace trimmed. Per-line failures are logged and skipped.
func (e *Engine) scanDescriptor(kind helper.Kind, res loader.Resource, register func(helper.Helper) error) error {
	f, err := res.Open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := providerName(scanner.Text())
		if name == "" {
			continue
		}
		if err := e.buildProvider(kind, name, register); err != nil {
			e.log.Warn("skipping helper provider",
				"kind", kind.String(), "provider", name, "source", res.Source, "error", err)
		}
	}
	return scanner.Err()
}

// buildProvider resolves one provider name, builds it unbound, and
// registers it.
func (e *Engine) buildProvider(kind helper.Kind, name string, register func(helper.Helper) error) error {
	factory, ok := e.chain.ResolveWithUser(kind, name)
	if !ok {
		return helper.ErrNotResolved
	}
	h, err := factory(nil)
	if err != nil {
		return fmt.Errorf("building helper: %w", err)
	}
	return register(h)
}

// providerName extracts the provider name from a descriptor line:
// everything before the first '#', trimmed. "" means the line carries
// no provider.
func providerName(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
