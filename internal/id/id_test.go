package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUID(t *testing.T) {
	t.Parallel()

	a := UUID()
	b := UUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestShort(t *testing.T) {
	t.Parallel()

	s := Short()
	assert.Len(t, s, 16)
	assert.NotEqual(t, s, Short())
}

func TestInstance(t *testing.T) {
	t.Parallel()

	s := Instance("client")
	assert.True(t, strings.HasPrefix(s, "client-"))
	assert.Len(t, s, len("client-")+16)
}
