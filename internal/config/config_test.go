package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigHasSaneBM25Constants(t *testing.T) {
	c := Default()
	assert.EqualValues(t, float32(1.2), c.BM25.K1)
	assert.EqualValues(t, 0.75, c.BM25.B)
	assert.Equal(t, 10, c.DefaultK)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaultK: 25\n"), 0600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, c.DefaultK)
	assert.EqualValues(t, float32(1.2), c.BM25.K1)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrideAppliesDirectory(t *testing.T) {
	t.Setenv("QUERYEVAL_DIRECTORY", "/tmp/custom-dir")

	c := Default()
	c.EnvOverride()

	assert.Equal(t, "/tmp/custom-dir", c.Directory)
}
