package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SKILLBOARD_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "skillboard", "skillboard.db"), cfg.Database.Path)
	require.True(t, cfg.Database.SeedDefaults)
	require.Equal(t, "Mon Jan 02 2006", cfg.UI.DateFormat)
	require.Equal(t, "12", cfg.UI.HighlightColor)
	require.Equal(t, 5*time.Second, cfg.UI.RequestTimeout)
	require.Equal(t, "", cfg.Profile.Identity)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/tmp/custom.db"
seed_defaults = false

[ui]
date_format = "2006-01-02"
request_timeout = "250ms"

[profile]
identity = "ada"
`), 0o600))
	t.Setenv("SKILLBOARD_CONFIG", path)
	t.Setenv("SKILLBOARD_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	require.False(t, cfg.Database.SeedDefaults)
	require.Equal(t, "2006-01-02", cfg.UI.DateFormat)
	require.Equal(t, 250*time.Millisecond, cfg.UI.RequestTimeout)
	require.Equal(t, "ada", cfg.Profile.Identity)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SKILLBOARD_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("SKILLBOARD_CONFIG", path)

	want := Config{
		Database: DatabaseConfig{Path: "/data/sb.db", SeedDefaults: true},
		UI:       UIConfig{DateFormat: "02 Jan 2006", HighlightColor: "4", RequestTimeout: 3 * time.Second},
		Profile:  ProfileConfig{Identity: "grace"},
		Log:      LogConfig{Path: "/var/log/sb.log", Level: "warn"},
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
