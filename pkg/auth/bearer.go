package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plugboard/plugboard/pkg/helper"
)

// BearerHelper implements the Bearer challenge scheme with HMAC-signed
// JWTs. Both sides: FormatCredentials issues a token for the identifier,
// Verify checks one.
type BearerHelper struct {
	key []byte
	ttl time.Duration
}

// NewBearerHelper creates a Bearer authenticator helper signing with the
// given key. ttl bounds token validity; zero means one hour.
func NewBearerHelper(key []byte, ttl time.Duration) *BearerHelper {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &BearerHelper{key: key, ttl: ttl}
}

// Descriptor implements helper.Helper.
func (h *BearerHelper) Descriptor() helper.Descriptor {
	return helper.Descriptor{
		Kind:       helper.KindAuthenticator,
		Name:       "bearer",
		Scheme:     helper.SchemeBearer,
		ClientSide: true,
		ServerSide: true,
	}
}

// FormatCredentials issues a signed token for the identifier. The secret
// argument is unused; the helper's signing key vouches for the token.
func (h *BearerHelper) FormatCredentials(identifier, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": identifier,
		"iat": now.Unix(),
		"exp": now.Add(h.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.key)
}

// Verify checks the token signature and expiry and returns the subject.
func (h *BearerHelper) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.key, nil
	})
	if err != nil || !token.Valid {
		return "", ErrBadCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrBadCredentials
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrBadCredentials
	}
	return sub, nil
}
