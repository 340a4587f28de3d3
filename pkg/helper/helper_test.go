package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsListsEveryRegistry(t *testing.T) {
	t.Parallel()

	kinds := Kinds()
	require.Len(t, kinds, 5)
	assert.Equal(t, []Kind{
		KindClientConnector,
		KindServerConnector,
		KindProtocol,
		KindAuthenticator,
		KindConverter,
	}, kinds)
}

func TestDescriptorPath(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		assert.Equal(t, "plugins/services/"+kind.String(), kind.DescriptorPath())
	}
}
