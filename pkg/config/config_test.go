package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.FileExists(t, path)
}

func TestInitConfigLoadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	original := DefaultConfig()
	original.Conflict.MaxCandidates = 7
	require.NoError(t, SaveConfig(original, path))

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Conflict.MaxCandidates)
}

func TestInitConfigRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	broken := "[cache]\nenabled = true\npage_size = garbage-not-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	// falls back to defaults since nothing in this particular file recovers cleanly
	require.Equal(t, DefaultConfig().Model, cfg.Model)
}

func TestUpdatePersistsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	require.NoError(t, SaveConfig(cfg, path))

	disabled := false
	maxC := 2
	require.NoError(t, cfg.Update(path, &disabled, nil, &maxC))

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.False(t, reloaded.Cache.Enabled)
	require.Equal(t, 2, reloaded.Conflict.MaxCandidates)
}
