package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultsAreUsable(t *testing.T) {
	config := NewConfig()

	assert.Equal(t, 2, config.Window.Scale)
	assert.Equal(t, "ebitengine", config.Video.Backend)
	assert.NotEmpty(t, config.Paths.SaveData)
	require.NoError(t, config.validate())
}

func TestConfig_MissingFileSavesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	config := NewConfig()
	config.Paths.ROMs = filepath.Join(dir, "roms")
	config.Paths.SaveData = filepath.Join(dir, "saves")
	require.NoError(t, config.LoadFromFile(path))

	// The defaults must have been written out for next time
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	config := NewConfig()
	config.Window.Scale = 3
	config.Video.Backend = "headless"
	config.Paths.ROMs = filepath.Join(dir, "roms")
	config.Paths.SaveData = filepath.Join(dir, "saves")
	require.NoError(t, config.SaveToFile(path))

	loaded := NewConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, 3, loaded.Window.Scale)
	assert.Equal(t, "headless", loaded.Video.Backend)
}

func TestConfig_RejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"window":{"width":512,"height":480},"video":{"backend":"vulkan"}}`), 0o644))

	config := NewConfig()
	err := config.LoadFromFile(path)
	assert.ErrorContains(t, err, "unknown video backend")
}

func TestConfig_CreatesConfiguredDirectories(t *testing.T) {
	dir := t.TempDir()
	config := NewConfig()
	config.Paths.ROMs = filepath.Join(dir, "roms")
	config.Paths.SaveData = filepath.Join(dir, "saves")
	require.NoError(t, config.LoadFromFile(filepath.Join(dir, "config.json")))

	for _, sub := range []string{"roms", "saves"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
