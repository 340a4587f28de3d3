// Package protocol defines wire protocol identifiers and protocol sets.
//
// A connector helper declares the set of protocols it supports; a client
// or server candidate declares the set of protocols it requires. The two
// meet in the engine's capability selector: a helper is compatible with a
// candidate only when the helper's supported set is a superset of the
// candidate's required set. Compatibility is never computed as a union
// across several helpers — one helper alone must cover the whole request.
package protocol
