// Package engine ties the helper machinery together: it owns the five
// helper registries, the loader chain used to resolve provider names,
// the discovery process that populates the registries from descriptor
// resources, and the capability selectors that pick connectors and
// authenticators at request time.
//
// An Engine is an explicit, lifecycle-managed object. Create one with
// New or NewWithOptions and pass it by reference to whatever needs it;
// there is no process-wide default instance.
package engine
