// Package converter contains the built-in converter helpers, which
// translate between representations and Go values for the media types
// they declare.
package converter
