package types

// AudioFile represents a discovered audio file (FLAC source or MP3 output)
type AudioFile struct {
	Filename string         `json:"filename"`
	Path     string         `json:"path"`
	Size     int64          `json:"size"`
	Format   string         `json:"format"` // "flac", "mp3"
	Metadata *AudioMetadata `json:"metadata,omitempty"`
}

// AudioMetadata represents metadata for an audio file
type AudioMetadata struct {
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	TrackNumber int    `json:"trackNumber,omitempty"`
}

// ConversionRequest is the JSON body for queueing a conversion batch.
// Inputs may be individual .flac files or directories to scan.
type ConversionRequest struct {
	Inputs    []string `json:"inputs"`
	Bitrate   int      `json:"bitrate"`
	OutputDir string   `json:"outputDir,omitempty"`
}
