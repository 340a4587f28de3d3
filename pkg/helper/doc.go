// Package helper defines the pluggable helper model of the engine.
//
// A helper is a unit of protocol-specific behavior discovered and held by
// the engine: a client or server connector, a protocol methods helper, an
// authenticator, or a content converter. Every helper describes itself
// through a Descriptor, which is all the engine needs for capability
// matching — the engine never inspects helper internals.
//
// Descriptor resources enumerate helper provider names, one per line,
// under a fixed per-kind path rooted at DescriptorBase. Lines may carry
// trailing '#' comments; blank lines are ignored.
package helper
