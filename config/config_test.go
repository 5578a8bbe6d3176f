package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesOptionsOverDefaults(t *testing.T) {
	c := New(WithLanes(6), WithQueueDepth(32), WithAllocationLimit(100))
	assert.Equal(t, 6, c.Lanes)
	assert.Equal(t, 32, c.QueueDepth)
	assert.EqualValues(t, 100, c.AllocationLimit)
	assert.NotNil(t, c.Logger)
}

func TestLoad_FileOverridesDefaultsButNotExplicitOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cru.toml")
	require.NoError(t, os.WriteFile(path, []byte("lanes = 3\nqueue_depth = 99\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Lanes)
	assert.Equal(t, 99, c.QueueDepth)

	c2, err := Load(path, WithLanes(12))
	require.NoError(t, err)
	assert.Equal(t, 12, c2.Lanes, "explicit option must win over the file")
	assert.Equal(t, 99, c2.QueueDepth)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultQueueDepth, c.QueueDepth)
}
