package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_AppDirCreatesDirectory(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("HOME", root)
	t.Setenv("AppData", root)

	dir, err := NewService().AppDir("IntervalFit")
	require.NoError(t, err)
	assert.Equal(t, "IntervalFit", filepath.Base(dir))
	assert.True(t, strings.HasPrefix(dir, root), "dir %s outside %s", dir, root)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
