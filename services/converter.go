package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cadenza/types"

	"go.uber.org/zap"
)

// ProgressFunc is called after each file in a batch finishes, successfully
// or not. index is 1-based; total is the number of files in the batch.
type ProgressFunc func(index, total int, result types.ConversionResult)

// Converter interface defines the FLAC to MP3 transcoding operations
type Converter interface {
	ConvertFile(ctx context.Context, inputPath string, bitrate types.Bitrate, outputDir string) types.ConversionResult
	ConvertBatch(ctx context.Context, inputs []string, bitrate types.Bitrate, outputDir string, onResult ProgressFunc) ([]types.ConversionResult, types.ConversionSummary, error)
}

// converter invokes the external ffmpeg binary, one process per file
type converter struct {
	ffmpegPath string
	log        *zap.Logger
}

// NewConverter resolves ffmpeg on PATH and returns a converter.
// A missing binary is reported here, once, rather than per file.
func NewConverter(log *zap.Logger) (Converter, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFFmpegNotFound, err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &converter{
		ffmpegPath: ffmpegPath,
		log:        log,
	}, nil
}

// ConvertFile transcodes a single FLAC file to MP3. The destination is
// <outputDir>/<basename>.mp3, or the source's own directory when
// outputDir is empty. Existing outputs are overwritten.
func (cv *converter) ConvertFile(ctx context.Context, inputPath string, bitrate types.Bitrate, outputDir string) types.ConversionResult {
	result := types.ConversionResult{
		InputPath: inputPath,
		Status:    types.ConversionFailed,
	}

	info, err := os.Stat(inputPath)
	if err != nil || info.IsDir() {
		result.Error = fmt.Sprintf("%v: %s", ErrSourceUnreadable, inputPath)
		cv.log.Warn("source file unreadable", zap.String("input", inputPath), zap.Error(err))
		return result
	}

	if !strings.EqualFold(filepath.Ext(inputPath), ".flac") {
		result.Error = fmt.Sprintf("%v: %s is not a .flac file", ErrSourceUnreadable, inputPath)
		return result
	}

	destDir := outputDir
	if destDir == "" {
		destDir = filepath.Dir(inputPath)
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	result.OutputPath = filepath.Join(destDir, stem+".mp3")

	args := []string{
		"-hide_banner",
		"-i", inputPath,
		"-codec:a", "libmp3lame",
		"-b:a", bitrate.Arg(),
		"-y", // overwrite existing output
		result.OutputPath,
	}

	cmd := exec.CommandContext(ctx, cv.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	cv.log.Debug("executing ffmpeg", zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		ffErr := &FFmpegError{
			InputPath: inputPath,
			ExitCode:  exitCode,
			Stderr:    stderr.String(),
			Cause:     err,
		}
		result.OutputPath = ""
		result.Error = ffErr.Error()
		cv.log.Error("conversion failed",
			zap.String("input", inputPath),
			zap.Int("exitCode", exitCode),
			zap.Error(err),
		)
		return result
	}

	result.Status = types.ConversionSucceeded
	cv.log.Info("converted",
		zap.String("input", inputPath),
		zap.String("output", result.OutputPath),
		zap.Int("bitrate", int(bitrate)),
	)
	return result
}

// ConvertBatch converts files one at a time, in input order. A failed file
// never aborts the batch; a destination that cannot be prepared aborts it
// before the first conversion starts. Cancelling the context stops the
// batch before the next file; finished results are kept.
func (cv *converter) ConvertBatch(ctx context.Context, inputs []string, bitrate types.Bitrate, outputDir string, onResult ProgressFunc) ([]types.ConversionResult, types.ConversionSummary, error) {
	if outputDir != "" {
		if err := EnsureOutputDir(outputDir); err != nil {
			return nil, types.ConversionSummary{}, err
		}
	}

	total := len(inputs)
	results := make([]types.ConversionResult, 0, total)

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return results, types.Summarize(results), err
		}

		result := cv.ConvertFile(ctx, input, bitrate, outputDir)
		results = append(results, result)

		if onResult != nil {
			onResult(i+1, total, result)
		}
	}

	return results, types.Summarize(results), nil
}

// EnsureOutputDir creates the directory if needed and probes that it is
// writable by creating and removing a marker file.
func EnsureOutputDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", ErrOutputDirInvalid, err)
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputDirInvalid, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrOutputDirInvalid, path)
	}

	testFile := filepath.Join(path, ".cadenza-write-test")
	file, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDirInvalid, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
