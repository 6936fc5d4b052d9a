package handlers

import (
	"net/http"
	"strings"

	"cadenza/config"
	"cadenza/services"
	"cadenza/types"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles library search endpoints
type SearchHandler struct {
	fileService services.FileService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(fs services.FileService) *SearchHandler {
	return &SearchHandler{fileService: fs}
}

// Search filters the scanned library by filename or tag fields, optionally
// restricted to one format so the UI can show "not yet converted" sources.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	format := c.DefaultQuery("format", "any")

	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query parameter 'q' is required",
		})
		return
	}

	if format != "any" && format != "flac" && format != "mp3" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "format parameter must be 'flac', 'mp3' or 'any'",
		})
		return
	}

	files, err := h.fileService.ScanAudioFiles(config.GetMusicLocation())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "search failed",
			"details": err.Error(),
		})
		return
	}

	needle := strings.ToLower(query)
	results := make([]types.AudioFile, 0)
	for _, f := range files {
		if format != "any" && f.Format != format {
			continue
		}
		if matchesQuery(f, needle) {
			results = append(results, f)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"format":  format,
		"results": results,
	})
}

func matchesQuery(f types.AudioFile, needle string) bool {
	if strings.Contains(strings.ToLower(f.Filename), needle) {
		return true
	}
	if f.Metadata == nil {
		return false
	}
	return strings.Contains(strings.ToLower(f.Metadata.Title), needle) ||
		strings.Contains(strings.ToLower(f.Metadata.Artist), needle) ||
		strings.Contains(strings.ToLower(f.Metadata.Album), needle)
}
