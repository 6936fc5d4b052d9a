package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cadenza/types"

	"github.com/dhowden/tag"
	"go.uber.org/zap"
)

// FileService interface defines methods for locating and describing the
// audio files the converter works on
type FileService interface {
	CollectFlacFiles(inputs []string) ([]string, error)
	ScanAudioFiles(rootPath string) ([]types.AudioFile, error)
	ExtractAudioMetadata(filePath string) *types.AudioMetadata
	ValidateFilePath(path string) error
	GetContentType(filePath string) string
}

// fileService implements the FileService interface
type fileService struct {
	log *zap.Logger
}

// NewFileService creates a new file service
func NewFileService(log *zap.Logger) FileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &fileService{log: log}
}

// CollectFlacFiles expands a mixed list of files and directories into an
// ordered list of FLAC file paths. A file input is kept if it has a .flac
// extension; a directory input is walked recursively. Input order is
// preserved, with a directory's files sorted by path.
func (fs *fileService) CollectFlacFiles(inputs []string) ([]string, error) {
	var flacFiles []string

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			// Missing inputs stay in the batch so the converter can
			// report them as per-file failures instead of dropping
			// them silently.
			if strings.EqualFold(filepath.Ext(input), ".flac") {
				flacFiles = append(flacFiles, input)
			}
			continue
		}

		if !info.IsDir() {
			if strings.EqualFold(filepath.Ext(input), ".flac") {
				flacFiles = append(flacFiles, input)
			}
			continue
		}

		var found []string
		err = filepath.Walk(input, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				fs.log.Warn("error accessing path", zap.String("path", path), zap.Error(err))
				return nil // continue walking, don't fail the scan
			}
			if !fi.IsDir() && strings.EqualFold(filepath.Ext(path), ".flac") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		sort.Strings(found)
		flacFiles = append(flacFiles, found...)
	}

	if len(flacFiles) == 0 {
		return nil, ErrNoFlacFiles
	}

	return flacFiles, nil
}

// ScanAudioFiles recursively scans a directory for FLAC sources and MP3
// outputs, attaching whatever metadata can be read from each file.
func (fs *fileService) ScanAudioFiles(rootPath string) ([]types.AudioFile, error) {
	var allFiles []types.AudioFile

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fs.log.Warn("error accessing path", zap.String("path", path), zap.Error(err))
			return nil // continue walking, don't fail entire scan
		}

		ext := strings.ToLower(filepath.Ext(path))
		if info.IsDir() || (ext != ".flac" && ext != ".mp3") {
			return nil
		}

		relativePath, err := filepath.Rel(rootPath, path)
		if err != nil {
			relativePath = path // fallback to absolute path
		}

		allFiles = append(allFiles, types.AudioFile{
			Filename: info.Name(),
			Path:     relativePath,
			Size:     info.Size(),
			Format:   strings.TrimPrefix(ext, "."),
			Metadata: fs.ExtractAudioMetadata(path),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(allFiles, func(i, j int) bool { return allFiles[i].Path < allFiles[j].Path })
	return allFiles, nil
}

// GetContentType returns the appropriate MIME type for an audio file
func (fs *fileService) GetContentType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".flac":
		return "audio/flac"
	case ".mp3":
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// ExtractAudioMetadata extracts metadata from an audio file with fallback logic
func (fs *fileService) ExtractAudioMetadata(filePath string) *types.AudioMetadata {
	file, err := os.Open(filePath)
	if err != nil {
		fs.log.Warn("could not open audio file", zap.String("path", filePath), zap.Error(err))
		return extractMetadataFromPath(filePath)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		fs.log.Warn("could not parse audio metadata", zap.String("path", filePath), zap.Error(err))
		return extractMetadataFromPath(filePath)
	}

	metadata := &types.AudioMetadata{
		Title:  meta.Title(),
		Artist: meta.Artist(),
		Album:  meta.Album(),
	}
	track, _ := meta.Track()
	metadata.TrackNumber = track

	// Fill gaps from the path layout when tags are incomplete
	if metadata.Title == "" || metadata.Artist == "" || metadata.Album == "" {
		fallback := extractMetadataFromPath(filePath)
		if metadata.Title == "" {
			metadata.Title = fallback.Title
		}
		if metadata.Artist == "" {
			metadata.Artist = fallback.Artist
		}
		if metadata.Album == "" {
			metadata.Album = fallback.Album
		}
	}

	return metadata
}

var trackPrefixRe = regexp.MustCompile(`^(\d+)[\.\-\s]+(.+)`)

// extractMetadataFromPath derives metadata from an Artist/Album/Track
// path layout when the file carries no usable tags.
func extractMetadataFromPath(filePath string) *types.AudioMetadata {
	metadata := &types.AudioMetadata{}

	parts := strings.Split(filepath.ToSlash(filePath), "/")
	filename := filepath.Base(filePath)

	if len(parts) >= 3 {
		metadata.Artist = parts[len(parts)-3]
	}
	if len(parts) >= 2 {
		metadata.Album = parts[len(parts)-2]
	}

	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	if matches := trackPrefixRe.FindStringSubmatch(title); len(matches) > 2 {
		title = matches[2]
		if trackNum, err := strconv.Atoi(matches[1]); err == nil {
			metadata.TrackNumber = trackNum
		}
	}
	metadata.Title = title

	return metadata
}

// ValidateFilePath checks for path traversal attempts and other security issues
func (fs *fileService) ValidateFilePath(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal not allowed")
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("absolute paths not allowed")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path not allowed")
	}
	return nil
}
