// Package connector defines client and server connectors and the
// built-in connector helpers.
//
// A Client or Server is a lightweight candidate describing what the
// application needs: a required protocol set and, optionally, the exact
// name of the helper implementation it insists on. The engine's
// capability selector matches candidates against the registered helper
// instances and hands back a helper bound to the candidate.
//
// Registry entries are unbound prototypes (constructed without an
// owner); Bind produces the live, owner-bound instance used for actual
// traffic.
package connector
