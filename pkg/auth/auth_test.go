package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugboard/plugboard/pkg/helper"
)

func TestBasicHelper(t *testing.T) {
	t.Parallel()

	h := NewBasicHelper()

	t.Run("format and parse round trip", func(t *testing.T) {
		t.Parallel()
		value, err := h.FormatCredentials("scott", "tiger")
		require.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("scott:tiger")), value)

		id, secret, err := h.ParseCredentials(value)
		require.NoError(t, err)
		assert.Equal(t, "scott", id)
		assert.Equal(t, "tiger", secret)
	})

	t.Run("secret may contain colons", func(t *testing.T) {
		t.Parallel()
		value, err := h.FormatCredentials("scott", "ti:ger")
		require.NoError(t, err)
		id, secret, err := h.ParseCredentials(value)
		require.NoError(t, err)
		assert.Equal(t, "scott", id)
		assert.Equal(t, "ti:ger", secret)
	})

	t.Run("verify accepts matching credentials", func(t *testing.T) {
		t.Parallel()
		value, err := h.FormatCredentials("scott", "tiger")
		require.NoError(t, err)
		assert.NoError(t, h.Verify(value, "scott", "tiger"))
	})

	t.Run("verify rejects wrong secret", func(t *testing.T) {
		t.Parallel()
		value, err := h.FormatCredentials("scott", "tiger")
		require.NoError(t, err)
		assert.ErrorIs(t, h.Verify(value, "scott", "lion"), ErrBadCredentials)
	})

	t.Run("parse rejects garbage", func(t *testing.T) {
		t.Parallel()
		_, _, err := h.ParseCredentials("not base64 at all!!!")
		assert.ErrorIs(t, err, ErrBadCredentials)

		_, _, err = h.ParseCredentials(base64.StdEncoding.EncodeToString([]byte("no separator")))
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestSMTPPlainHelper(t *testing.T) {
	t.Parallel()

	h := NewSMTPPlainHelper()

	t.Run("formats the initial response", func(t *testing.T) {
		t.Parallel()
		value, err := h.FormatCredentials("scott", "tiger")
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(value)
		require.NoError(t, err)
		assert.Equal(t, "\x00scott\x00tiger", string(raw))
	})

	t.Run("parsing is client side only", func(t *testing.T) {
		t.Parallel()
		value, err := h.FormatCredentials("scott", "tiger")
		require.NoError(t, err)

		_, _, err = h.ParseCredentials(value)
		assert.ErrorIs(t, err, ErrClientOnly)
	})
}

func TestBearerHelper(t *testing.T) {
	t.Parallel()

	key := []byte("test-signing-key")

	t.Run("issue and verify round trip", func(t *testing.T) {
		t.Parallel()
		h := NewBearerHelper(key, time.Minute)
		token, err := h.FormatCredentials("alice", "")
		require.NoError(t, err)

		sub, err := h.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", sub)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		t.Parallel()
		issuer := NewBearerHelper([]byte("other-key"), time.Minute)
		token, err := issuer.FormatCredentials("alice", "")
		require.NoError(t, err)

		verifier := NewBearerHelper(key, time.Minute)
		_, err = verifier.Verify(token)
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		t.Parallel()
		h := NewBearerHelper(key, time.Minute)
		h.ttl = -time.Minute
		token, err := h.FormatCredentials("alice", "")
		require.NoError(t, err)

		_, err = h.Verify(token)
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestSideFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		desc       helper.Descriptor
		scheme     helper.ChallengeScheme
		clientSide bool
		serverSide bool
	}{
		{"basic", NewBasicHelper().Descriptor(), helper.SchemeBasic, true, true},
		{"smtp plain", NewSMTPPlainHelper().Descriptor(), helper.SchemeSMTPPlain, true, false},
		{"bearer", NewBearerHelper(nil, 0).Descriptor(), helper.SchemeBearer, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, helper.KindAuthenticator, tt.desc.Kind)
			assert.Equal(t, tt.scheme, tt.desc.Scheme)
			assert.Equal(t, tt.clientSide, tt.desc.ClientSide)
			assert.Equal(t, tt.serverSide, tt.desc.ServerSide)
		})
	}
}
