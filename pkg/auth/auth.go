package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/plugboard/plugboard/pkg/helper"
)

// Error is a simple error type for authenticator errors.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors returned by the built-in authenticators.
var (
	// ErrBadCredentials is returned when a credentials value cannot be
	// parsed or fails verification.
	ErrBadCredentials = Error("invalid credentials")

	// ErrClientOnly is returned by server-side operations on a helper
	// that only supports the client side.
	ErrClientOnly = Error("authenticator supports the client side only")
)

// BasicHelper implements the HTTP Basic challenge scheme on both sides.
type BasicHelper struct{}

// NewBasicHelper creates a Basic authenticator helper.
func NewBasicHelper() *BasicHelper { return &BasicHelper{} }

// Descriptor implements helper.Helper.
func (h *BasicHelper) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:       helper.KindAuthenticator,
		Name:       "basic",
		Scheme:     helper.SchemeBasic,
		ClientSide: true,
		ServerSide: true,
	}
}

// FormatCredentials renders identifier:secret in base64, the value that
// follows "Basic " in an Authorization header.
func (h *BasicHelper) FormatCredentials(identifier, secret string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(identifier + ":" + secret)), nil
}

// ParseCredentials decodes a Basic credentials value back into the
// identifier and secret.
func (h *BasicHelper) ParseCredentials(value string) (identifier, secret string, err error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", "", ErrBadCredentials
	}
	identifier, secret, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", ErrBadCredentials
	}
	return identifier, secret, nil
}

// Verify checks a credentials value against the expected identifier and
// secret in constant time.
func (h *BasicHelper) Verify(value, identifier, secret string) error {
	gotID, gotSecret, err := h.ParseCredentials(value)
	if err != nil {
		return err
	}
	idMatch := subtle.ConstantTimeCompare([]byte(gotID), []byte(identifier)) == 1
	secretMatch := subtle.ConstantTimeCompare([]byte(gotSecret), []byte(secret)) == 1
	if !idMatch || !secretMatch {
		return ErrBadCredentials
	}
	return nil
}

// SMTPPlainHelper implements the SMTP PLAIN scheme. Client side only:
// it can produce an AUTH PLAIN initial response but does not verify one.
type SMTPPlainHelper struct{}

// NewSMTPPlainHelper creates a PLAIN authenticator helper.
func NewSMTPPlainHelper() *SMTPPlainHelper { return &SMTPPlainHelper{} }

// Descriptor implements helper.Helper.
func (h *SMTPPlainHelper) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:       helper.KindAuthenticator,
		Name:       "smtp-plain",
		Scheme:     helper.SchemeSMTPPlain,
		ClientSide: true,
		ServerSide: false,
	}
}

// FormatCredentials renders the PLAIN initial response:
// NUL identifier NUL secret, base64 encoded.
func (h *SMTPPlainHelper) FormatCredentials(identifier, secret string) (string, error) {
	raw := "\x00" + identifier + "\x00" + secret
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// ParseCredentials is the server side of the scheme. The descriptor
// declares client side only, so parsing is not supported.
func (h *SMTPPlainHelper) ParseCredentials(value string) (identifier, secret string, err error) {
	return "", "", ErrClientOnly
}
