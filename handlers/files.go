package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cadenza/config"
	"cadenza/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler handles file management endpoints
type FileHandler struct {
	fileService services.FileService
	log         *zap.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fs services.FileService, log *zap.Logger) *FileHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileHandler{
		fileService: fs,
		log:         log,
	}
}

// ListFiles returns all FLAC sources and MP3 outputs under the music location
func (h *FileHandler) ListFiles(c *gin.Context) {
	musicLocation := config.GetMusicLocation()

	audioFiles, err := h.fileService.ScanAudioFiles(musicLocation)
	if err != nil {
		h.log.Error("error scanning audio files", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to scan files",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": audioFiles,
		"count": len(audioFiles),
	})
}

// StreamFile streams an audio file with support for range requests, so the
// UI can preview a source or a freshly converted MP3
func (h *FileHandler) StreamFile(c *gin.Context) {
	requestedPath := c.Param("filepath")

	// Remove leading slash from filepath param
	if strings.HasPrefix(requestedPath, "/") {
		requestedPath = requestedPath[1:]
	}

	// Security: Validate file path
	if err := h.fileService.ValidateFilePath(requestedPath); err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "path security violation",
			"details": err.Error(),
		})
		return
	}

	// Only allow audio files (FLAC and MP3)
	ext := strings.ToLower(filepath.Ext(requestedPath))
	if ext != ".flac" && ext != ".mp3" {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "file extension not allowed",
			"details": "only .flac and .mp3 files can be streamed",
		})
		return
	}

	musicLocation := config.GetMusicLocation()
	fullPath := filepath.Join(musicLocation, requestedPath)

	// Security: Ensure resolved path is within the music location
	absMusicPath, err := filepath.Abs(musicLocation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "server configuration error",
		})
		return
	}

	absRequestPath, err := filepath.Abs(fullPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid file path",
		})
		return
	}

	// A bare prefix check would accept siblings like /music-other, so
	// resolve the request relative to the music location instead.
	rel, err := filepath.Rel(absMusicPath, absRequestPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "path traversal not allowed",
		})
		return
	}

	// Check if file exists and is readable
	fileInfo, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "file not found",
				"path":  requestedPath,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "file access error",
			"details": err.Error(),
		})
		return
	}

	if fileInfo.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is a directory, not a file",
		})
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to open file",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	c.Header("Content-Type", h.fileService.GetContentType(requestedPath))
	c.Header("Content-Length", strconv.FormatInt(fileInfo.Size(), 10))
	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Access-Control-Allow-Origin", "*")

	// Handle range requests for seeking
	rangeHeader := c.GetHeader("Range")
	if rangeHeader != "" {
		h.handleRangeRequest(c, file, fileInfo.Size(), rangeHeader, requestedPath)
		return
	}

	// Stream the entire file
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		h.log.Error("error streaming file", zap.String("path", requestedPath), zap.Error(err))
	}
}

// handleRangeRequest handles HTTP range requests for efficient seeking
func (h *FileHandler) handleRangeRequest(c *gin.Context, file *os.File, fileSize int64, rangeHeader string, filePath string) {
	// Parse range header (e.g., "bytes=0-1023" or "bytes=1024-")
	if !strings.HasPrefix(rangeHeader, "bytes=") {
		c.Status(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	rangeSpec := strings.TrimPrefix(rangeHeader, "bytes=")
	ranges := strings.Split(rangeSpec, "-")

	if len(ranges) != 2 {
		c.Status(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	var start, end int64
	var err error

	if ranges[0] != "" {
		start, err = strconv.ParseInt(ranges[0], 10, 64)
		if err != nil || start < 0 {
			c.Status(http.StatusRequestedRangeNotSatisfiable)
			return
		}
	}

	if ranges[1] != "" {
		end, err = strconv.ParseInt(ranges[1], 10, 64)
		if err != nil || end < start {
			c.Status(http.StatusRequestedRangeNotSatisfiable)
			return
		}
	} else {
		end = fileSize - 1
	}

	if start >= fileSize {
		c.Status(http.StatusRequestedRangeNotSatisfiable)
		return
	}
	if end >= fileSize {
		end = fileSize - 1
	}

	contentLength := end - start + 1

	if _, err = file.Seek(start, 0); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to seek file",
		})
		return
	}

	c.Header("Content-Type", h.fileService.GetContentType(filePath))
	c.Header("Content-Length", strconv.FormatInt(contentLength, 10))
	c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, fileSize))
	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Status(http.StatusPartialContent)

	if _, err = io.CopyN(c.Writer, file, contentLength); err != nil {
		h.log.Error("error streaming range", zap.Int64("start", start), zap.Int64("end", end), zap.Error(err))
	}
}
