package helper

// Error is a simple error type for helper errors.
// It allows defining sentinel errors as constants.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors shared by helper implementations and the engine.
var (
	// ErrNotResolved is returned when a provider name cannot be resolved
	// by the loader chain.
	ErrNotResolved = Error("helper provider not resolved")

	// ErrWrongKind is returned when a resolved provider builds a helper
	// of the wrong shape for the registry being populated.
	ErrWrongKind = Error("helper has the wrong kind for this registry")

	// ErrUnsupportedValue is returned by converters asked to handle a
	// value type outside their contract.
	ErrUnsupportedValue = Error("unsupported value type for this converter")

	// ErrNotBound is returned by a connector operation that requires the
	// helper to be bound to an owning client or server.
	ErrNotBound = Error("helper is not bound to an owner")
)
