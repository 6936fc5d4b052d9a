package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for batch-level preconditions. These are checked once
// before any file is converted so a missing tool or bad destination shows
// up as a single message instead of one failure per file.
var (
	ErrFFmpegNotFound   = errors.New("ffmpeg not found on PATH")
	ErrOutputDirInvalid = errors.New("output directory cannot be created or written")
	ErrSourceUnreadable = errors.New("source file missing or not a readable FLAC")
	ErrNoFlacFiles      = errors.New("no FLAC files found in the selected inputs")
)

// FFmpegError describes a transcode that ffmpeg itself rejected.
type FFmpegError struct {
	InputPath string
	ExitCode  int
	Stderr    string
	Cause     error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg failed for %s (exit=%d): %s", e.InputPath, e.ExitCode, truncate(e.Stderr, 200))
}

func (e *FFmpegError) Unwrap() error {
	return e.Cause
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
