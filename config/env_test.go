package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointSettingsAt(t *testing.T, path string) {
	t.Helper()
	t.Setenv("CADENZA_SETTINGS", path)
}

func TestSettingsRoundTrip(t *testing.T) {
	pointSettingsAt(t, filepath.Join(t.TempDir(), "settings.json"))

	saved := &UserSettings{
		MusicLocation:  "/music",
		OutputLocation: "/music/mp3",
	}
	require.NoError(t, SaveSettings(saved))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	pointSettingsAt(t, filepath.Join(t.TempDir(), "nope.json"))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, &UserSettings{}, loaded)
}

func TestOutputLocationPrecedence(t *testing.T) {
	pointSettingsAt(t, filepath.Join(t.TempDir(), "settings.json"))
	t.Setenv("CADENZA_OUTPUT", "/from-env")

	// Env wins while no settings file exists
	assert.Equal(t, "/from-env", GetOutputLocation())

	// A saved setting takes precedence over the environment
	require.NoError(t, SaveSettings(&UserSettings{OutputLocation: "/from-settings"}))
	assert.Equal(t, "/from-settings", GetOutputLocation())
}

func TestMusicLocationPrecedence(t *testing.T) {
	pointSettingsAt(t, filepath.Join(t.TempDir(), "settings.json"))
	t.Setenv("CADENZA_MUSIC", "/env-music")

	assert.Equal(t, "/env-music", GetMusicLocation())

	require.NoError(t, SaveSettings(&UserSettings{MusicLocation: "/settings-music"}))
	assert.Equal(t, "/settings-music", GetMusicLocation())
}

func TestMusicLocationDefault(t *testing.T) {
	pointSettingsAt(t, filepath.Join(t.TempDir(), "settings.json"))
	t.Setenv("CADENZA_MUSIC", "")

	assert.NotEmpty(t, GetMusicLocation())
}
