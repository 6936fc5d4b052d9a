package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// GetMusicLocation returns the directory scanned for FLAC sources and
// converted MP3s. Settings file wins over the environment, which wins
// over the OS default.
func GetMusicLocation() string {
	if settings, err := LoadSettings(); err == nil && settings.MusicLocation != "" {
		return settings.MusicLocation
	}

	if customPath := os.Getenv("CADENZA_MUSIC"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if can't get home dir
		return filepath.Join(".", "music")
	}

	return filepath.Join(homeDir, "Music")
}

// GetOutputLocation returns the configured destination for converted
// files. Empty means each MP3 is written next to its FLAC source.
func GetOutputLocation() string {
	if settings, err := LoadSettings(); err == nil && settings.OutputLocation != "" {
		return settings.OutputLocation
	}
	return os.Getenv("CADENZA_OUTPUT")
}

// UserSettings represents the user's personal settings
type UserSettings struct {
	MusicLocation  string `json:"musicLocation"`
	OutputLocation string `json:"outputLocation"`
}

// SettingsFilePath returns the path to the settings file. Overridable via
// CADENZA_SETTINGS, mainly for tests.
func SettingsFilePath() string {
	if custom := os.Getenv("CADENZA_SETTINGS"); custom != "" {
		return custom
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cadenza-settings.json")
}

// LoadSettings loads settings from the settings file. A missing file
// yields zero-value settings, not an error.
func LoadSettings() (*UserSettings, error) {
	settingsPath := SettingsFilePath()

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return &UserSettings{}, nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to the settings file
func SaveSettings(settings *UserSettings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(SettingsFilePath(), data, 0644)
}
