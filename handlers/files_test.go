package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	musicDir := t.TempDir()
	writeTestFlac(t, musicDir, filepath.Join("Artist", "song.flac"))
	t.Setenv("CADENZA_MUSIC", musicDir)
	return newTestHelper(t, &stubConverter{}, false)
}

func TestStreamFile(t *testing.T) {
	helper := streamTestHelper(t)

	resp, err := http.Get(helper.Server.URL + "/api/files/stream/Artist/song.flac")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/flac", resp.Header.Get("Content-Type"))
	assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "fLaC", string(body))
}

func TestStreamFileRangeRequest(t *testing.T) {
	helper := streamTestHelper(t)

	req, err := http.NewRequest(http.MethodGet, helper.Server.URL+"/api/files/stream/Artist/song.flac", nil)
	require.NoError(t, err)
	req.Header.Set("Range", "bytes=0-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "bytes 0-1/4", resp.Header.Get("Content-Range"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "fL", string(body))
}

func TestStreamFileRejectsTraversal(t *testing.T) {
	helper := streamTestHelper(t)

	resp, err := http.Get(helper.Server.URL + "/api/files/stream/Artist/../../secret.flac")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStreamFileRejectsNonAudio(t *testing.T) {
	helper := streamTestHelper(t)

	resp, err := http.Get(helper.Server.URL + "/api/files/stream/Artist/notes.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStreamFileNotFound(t *testing.T) {
	helper := streamTestHelper(t)

	resp, err := http.Get(helper.Server.URL + "/api/files/stream/Artist/missing.flac")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
