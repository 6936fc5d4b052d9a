package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestFileService(t *testing.T) FileService {
	t.Helper()
	return NewFileService(zaptest.NewLogger(t))
}

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestCollectFlacFilesSingleFile(t *testing.T) {
	fs := newTestFileService(t)
	dir := t.TempDir()
	flac := touch(t, filepath.Join(dir, "song.flac"))
	touch(t, filepath.Join(dir, "notes.txt"))

	files, err := fs.CollectFlacFiles([]string{flac})
	require.NoError(t, err)
	assert.Equal(t, []string{flac}, files)
}

func TestCollectFlacFilesDirectoryRecursive(t *testing.T) {
	fs := newTestFileService(t)
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "album", "01 - one.flac"))
	b := touch(t, filepath.Join(dir, "album", "02 - two.FLAC"))
	touch(t, filepath.Join(dir, "album", "cover.jpg"))
	touch(t, filepath.Join(dir, "other.mp3"))

	files, err := fs.CollectFlacFiles([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestCollectFlacFilesPreservesInputOrder(t *testing.T) {
	fs := newTestFileService(t)
	dir := t.TempDir()
	b := touch(t, filepath.Join(dir, "b.flac"))
	a := touch(t, filepath.Join(dir, "a.flac"))

	files, err := fs.CollectFlacFiles([]string{b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, files)
}

func TestCollectFlacFilesKeepsMissingFlacInputs(t *testing.T) {
	// A missing .flac path stays in the batch so the converter reports
	// it as a per-file failure instead of dropping it silently.
	fs := newTestFileService(t)
	missing := filepath.Join(t.TempDir(), "missing.flac")

	files, err := fs.CollectFlacFiles([]string{missing})
	require.NoError(t, err)
	assert.Equal(t, []string{missing}, files)
}

func TestCollectFlacFilesEmpty(t *testing.T) {
	fs := newTestFileService(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))

	_, err := fs.CollectFlacFiles([]string{dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFlacFiles))
}

func TestScanAudioFiles(t *testing.T) {
	fs := newTestFileService(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Artist", "Album", "01 - Song.flac"))
	touch(t, filepath.Join(dir, "Artist", "Album", "01 - Song.mp3"))
	touch(t, filepath.Join(dir, "readme.md"))

	files, err := fs.ScanAudioFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "flac", files[0].Format)
	assert.Equal(t, "mp3", files[1].Format)
	for _, f := range files {
		require.NotNil(t, f.Metadata)
		assert.Equal(t, "Song", f.Metadata.Title)
		assert.Equal(t, "Artist", f.Metadata.Artist)
		assert.Equal(t, "Album", f.Metadata.Album)
		assert.Equal(t, 1, f.Metadata.TrackNumber)
	}
}

func TestExtractMetadataFromPath(t *testing.T) {
	tests := []struct {
		name                string
		filePath            string
		expectedTitle       string
		expectedArtist      string
		expectedAlbum       string
		expectedTrackNumber int
	}{
		{
			name:                "standard structure with track number",
			filePath:            "Artist Name/Album Name/01 - Song Title.flac",
			expectedTitle:       "Song Title",
			expectedArtist:      "Artist Name",
			expectedAlbum:       "Album Name",
			expectedTrackNumber: 1,
		},
		{
			name:                "double digit track number",
			filePath:            "The Beatles/Abbey Road/12 - Come Together.flac",
			expectedTitle:       "Come Together",
			expectedArtist:      "The Beatles",
			expectedAlbum:       "Abbey Road",
			expectedTrackNumber: 12,
		},
		{
			name:                "track number with dot",
			filePath:            "Artist/Album/3. Track Name.mp3",
			expectedTitle:       "Track Name",
			expectedArtist:      "Artist",
			expectedAlbum:       "Album",
			expectedTrackNumber: 3,
		},
		{
			name:                "no track number",
			filePath:            "Artist/Album/Song Title.flac",
			expectedTitle:       "Song Title",
			expectedArtist:      "Artist",
			expectedAlbum:       "Album",
			expectedTrackNumber: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := extractMetadataFromPath(tt.filePath)

			assert.Equal(t, tt.expectedTitle, metadata.Title)
			assert.Equal(t, tt.expectedArtist, metadata.Artist)
			assert.Equal(t, tt.expectedAlbum, metadata.Album)
			assert.Equal(t, tt.expectedTrackNumber, metadata.TrackNumber)
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	fs := newTestFileService(t)

	assert.NoError(t, fs.ValidateFilePath("Artist/Album/song.flac"))
	assert.Error(t, fs.ValidateFilePath("../etc/passwd"))
	assert.Error(t, fs.ValidateFilePath("/absolute/path.flac"))
	assert.Error(t, fs.ValidateFilePath("   "))
}

func TestGetContentType(t *testing.T) {
	fs := newTestFileService(t)

	assert.Equal(t, "audio/flac", fs.GetContentType("a.flac"))
	assert.Equal(t, "audio/mpeg", fs.GetContentType("a.MP3"))
	assert.Equal(t, "application/octet-stream", fs.GetContentType("a.wav"))
}
