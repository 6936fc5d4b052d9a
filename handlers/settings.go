package handlers

import (
	"net/http"

	"cadenza/config"
	"cadenza/services"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles settings-related endpoints
type SettingsHandler struct{}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// Settings represents the user settings exposed over the API
type Settings struct {
	MusicLocation  string `json:"musicLocation"`
	OutputLocation string `json:"outputLocation"`
}

// GetSettings returns the current settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	stored, err := config.LoadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load settings",
			"details": err.Error(),
		})
		return
	}

	settings := Settings{
		MusicLocation:  stored.MusicLocation,
		OutputLocation: stored.OutputLocation,
	}
	if settings.MusicLocation == "" {
		settings.MusicLocation = config.GetMusicLocation()
	}
	if settings.OutputLocation == "" {
		settings.OutputLocation = config.GetOutputLocation()
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings updates the user settings. The output location is
// validated (created if absent, probed for writability) before being
// accepted, so a bad destination surfaces here and not mid-batch.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var newSettings Settings
	if err := c.ShouldBindJSON(&newSettings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid settings format",
			"details": err.Error(),
		})
		return
	}

	if newSettings.OutputLocation != "" {
		if err := services.EnsureOutputDir(newSettings.OutputLocation); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid output location",
				"details": err.Error(),
			})
			return
		}
	}

	if newSettings.MusicLocation != "" {
		if err := services.EnsureOutputDir(newSettings.MusicLocation); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid music location",
				"details": err.Error(),
			})
			return
		}
	}

	stored := &config.UserSettings{
		MusicLocation:  newSettings.MusicLocation,
		OutputLocation: newSettings.OutputLocation,
	}
	if err := config.SaveSettings(stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save settings",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated successfully",
		"settings": newSettings,
	})
}
