package handlers

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	helper := newTestHelper(t, &stubConverter{}, false)

	musicDir := filepath.Join(t.TempDir(), "music")
	outputDir := filepath.Join(t.TempDir(), "mp3") // neither exists yet

	var updateResponse map[string]interface{}
	resp := helper.PostJSON(t, "/api/settings", Settings{
		MusicLocation:  musicDir,
		OutputLocation: outputDir,
	}, &updateResponse)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	// Validation creates both directories before accepting them
	assert.DirExists(t, musicDir)
	assert.DirExists(t, outputDir)

	var settings Settings
	resp = helper.GetJSON(t, "/api/settings", &settings)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, musicDir, settings.MusicLocation)
	assert.Equal(t, outputDir, settings.OutputLocation)
}

func TestUpdateSettingsRejectsFileAsOutput(t *testing.T) {
	helper := newTestHelper(t, &stubConverter{}, false)

	blocker := writeTestFlac(t, t.TempDir(), "blocker.flac")

	var response map[string]interface{}
	resp := helper.PostJSON(t, "/api/settings", Settings{OutputLocation: blocker}, &response)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid output location", response["error"])
}

func TestGetSettingsDefaults(t *testing.T) {
	helper := newTestHelper(t, &stubConverter{}, false)

	var settings Settings
	resp := helper.GetJSON(t, "/api/settings", &settings)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	// No settings file yet: music location falls back to the default
	assert.NotEmpty(t, settings.MusicLocation)
}
