package helper

import (
	"github.com/plugboard/plugboard/pkg/content"
	"github.com/plugboard/plugboard/pkg/message"
	"github.com/plugboard/plugboard/pkg/protocol"
)

// Kind identifies one of the five helper registries.
type Kind string

// Helper kinds.
const (
	KindClientConnector Kind = "client-connectors"
	KindServerConnector Kind = "server-connectors"
	KindProtocol        Kind = "protocols"
	KindAuthenticator   Kind = "authenticators"
	KindConverter       Kind = "converters"
)

// DescriptorBase is the shared root under which descriptor resources for
// every helper kind are searched.
const DescriptorBase = "plugins/services"

// DescriptorPath returns the descriptor resource path for the kind.
func (k Kind) DescriptorPath() string {
	return DescriptorBase + "/" + string(k)
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Kinds lists all helper kinds in discovery order.
func Kinds() []Kind {
	return []Kind{
		KindClientConnector,
		KindServerConnector,
		KindProtocol,
		KindAuthenticator,
		KindConverter,
	}
}

// ChallengeScheme identifies an authentication challenge scheme.
type ChallengeScheme string

// Challenge schemes supported by the built-in authenticators.
const (
	SchemeBasic     ChallengeScheme = "Basic"
	SchemeBearer    ChallengeScheme = "Bearer"
	SchemeSMTPPlain ChallengeScheme = "PLAIN"
)

// String returns the scheme name.
func (s ChallengeScheme) String() string { return string(s) }

// Descriptor describes a helper to the engine.
type Descriptor struct {
	// Kind is the registry the helper belongs to.
	Kind Kind

	// Name is the implementation name matched by the exact-name filter
	// during connector selection.
	Name string

	// Protocols is the set of protocols a connector supports.
	// Empty for non-connector helpers.
	Protocols protocol.Set

	// Scheme is the challenge scheme of an authenticator helper.
	Scheme ChallengeScheme

	// ClientSide and ServerSide are the side-capability flags of an
	// authenticator helper.
	ClientSide bool
	ServerSide bool
}

// Helper is the base contract every pluggable helper implements.
type Helper interface {
	// Descriptor returns the helper's self-description.
	Descriptor() Descriptor
}

// ProtocolHelper contributes the request methods a protocol defines,
// e.g. the WebDAV helper adds PROPFIND and friends.
type ProtocolHelper interface {
	Helper

	// Methods returns the request methods the protocol defines.
	Methods() []message.Method
}

// AuthenticatorHelper implements one challenge scheme on the client
// side, the server side, or both, as declared by its descriptor flags.
type AuthenticatorHelper interface {
	Helper

	// FormatCredentials renders raw credentials into the challenge
	// response value carried on the wire.
	FormatCredentials(identifier, secret string) (string, error)
}

// ConverterHelper converts between representations and Go values for
// the media types it declares.
type ConverterHelper interface {
	Helper

	// MediaTypes returns the media types the converter handles.
	MediaTypes() []string

	// Decode reads the representation into value.
	Decode(rep content.Representation, value any) error

	// Encode produces a representation of value.
	Encode(value any) (content.Representation, error)
}
