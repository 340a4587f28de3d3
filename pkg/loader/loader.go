// Package loader resolves helper provider names to compiled-in factory
// functions and enumerates descriptor resources.
//
// There is no runtime code loading: a provider name selects among
// statically registered factories. The chain pairs the engine's own
// resolver, which is authoritative, with an optional user-supplied
// resolver. Plain Resolve consults only the engine resolver; call sites
// that want the user fallback opt in via ResolveWithUser.
package loader

import (
	"io/fs"
	"sync"

	"github.com/plugboard/plugboard/pkg/helper"
)

// Factory builds a helper instance. owner is the client or server the
// helper is bound to; nil means "construct unbound, bind later", which
// is how discovery populates the registries.
type Factory func(owner any) (helper.Helper, error)

// Resolver resolves a provider name for a helper kind to a factory.
// The boolean distinguishes "not found" from a successful resolution.
type Resolver interface {
	Resolve(kind helper.Kind, name string) (Factory, bool)
}

// MapResolver is a concurrency-safe Resolver backed by per-kind maps.
type MapResolver struct {
	mu sync.RWMutex
	m  map[helper.Kind]map[string]Factory
}

// NewMapResolver creates an empty MapResolver.
func NewMapResolver() *MapResolver {
	return &MapResolver{m: make(map[helper.Kind]map[string]Factory)}
}

// Register binds a provider name to a factory for the kind, replacing
// any previous binding of the same name.
func (r *MapResolver) Register(kind helper.Kind, name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byName, ok := r.m[kind]
	if !ok {
		byName = make(map[string]Factory)
		r.m[kind] = byName
	}
	byName[name] = f
}

// Resolve implements Resolver.
func (r *MapResolver) Resolve(kind helper.Kind, name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.m[kind][name]
	return f, ok
}

// Names returns the provider names registered for the kind.
func (r *MapResolver) Names(kind helper.Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.m[kind]))
	for name := range r.m[kind] {
		names = append(names, name)
	}
	return names
}

// Resource is a descriptor resource reachable through the chain.
type Resource struct {
	// Source names the providing filesystem for diagnostics.
	Source string

	// Path is the resource path within the provider.
	Path string

	fsys fs.FS
}

// Open opens the resource for reading.
func (r Resource) Open() (fs.File, error) {
	return r.fsys.Open(r.Path)
}

// Chain is the engine's loader chain: the authoritative engine resolver,
// an optional user resolver, and an ordered list of descriptor resource
// providers.
type Chain struct {
	engine *MapResolver

	mu        sync.RWMutex
	user      Resolver
	providers []provider
}

type provider struct {
	name string
	fsys fs.FS
}

// NewChain creates a chain with an empty engine resolver and no
// providers.
func NewChain() *Chain {
	return &Chain{engine: NewMapResolver()}
}

// Engine returns the authoritative engine resolver.
func (c *Chain) Engine() *MapResolver {
	return c.engine
}

// SetUser installs or replaces the optional user resolver.
func (c *Chain) SetUser(r Resolver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = r
}

// User returns the user resolver, or nil.
func (c *Chain) User() Resolver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Resolve consults only the engine resolver.
func (c *Chain) Resolve(kind helper.Kind, name string) (Factory, bool) {
	return c.engine.Resolve(kind, name)
}

// ResolveWithUser consults the engine resolver first and falls back to
// the user resolver when one is installed.
func (c *Chain) ResolveWithUser(kind helper.Kind, name string) (Factory, bool) {
	if f, ok := c.engine.Resolve(kind, name); ok {
		return f, true
	}
	if user := c.User(); user != nil {
		return user.Resolve(kind, name)
	}
	return nil, false
}

// AddProvider appends a descriptor resource provider. name labels the
// provider in diagnostics, e.g. the directory it was loaded from.
func (c *Chain) AddProvider(name string, fsys fs.FS) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers = append(c.providers, provider{name: name, fsys: fsys})
}

// Resources returns every resource at path across all providers, in
// provider order. Providers that do not carry the path are skipped.
func (c *Chain) Resources(path string) []Resource {
	c.mu.RLock()
	providers := make([]provider, len(c.providers))
	copy(providers, c.providers)
	c.mu.RUnlock()

	var out []Resource
	for _, p := range providers {
		if _, err := fs.Stat(p.fsys, path); err != nil {
			continue
		}
		out = append(out, Resource{Source: p.name, Path: path, fsys: p.fsys})
	}
	return out
}
