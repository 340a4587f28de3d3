// Package content provides the streaming content abstraction consumed by
// connectors and converters.
//
// A Representation exposes availability, exact byte size when determinable,
// a fresh byte stream, a character-decoded text view, and push-style writes
// to byte and text sinks. The engine core depends only on this contract;
// how bytes are produced is a connector concern.
//
// Buffered decorates any Representation with a one-shot cache: the first
// successful full read stores the bytes, and every later query is answered
// from the cache without touching the source again.
package content
