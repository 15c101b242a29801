package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSound_EmbeddedCues(t *testing.T) {
	for _, name := range []string{"normal", "countdown", "finish"} {
		data, err := Sound(name)
		require.NoError(t, err, name)
		require.Greater(t, len(data), 44, name)
		assert.Equal(t, "RIFF", string(data[:4]), name)
		assert.Equal(t, "WAVE", string(data[8:12]), name)
	}
}

func TestSound_Missing(t *testing.T) {
	_, err := Sound("airhorn")
	assert.Error(t, err)
}
