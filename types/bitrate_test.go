package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBitrate(t *testing.T) {
	tests := []struct {
		kbps    int
		want    Bitrate
		wantErr bool
	}{
		{128, Bitrate128, false},
		{192, Bitrate192, false},
		{256, Bitrate256, false},
		{320, Bitrate320, false},
		{0, 0, true},
		{321, 0, true},
		{-128, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseBitrate(tt.kbps)
		if tt.wantErr {
			assert.Error(t, err, "kbps=%d", tt.kbps)
			continue
		}
		require.NoError(t, err, "kbps=%d", tt.kbps)
		assert.Equal(t, tt.want, got)
	}
}

func TestBitrateArg(t *testing.T) {
	assert.Equal(t, "320k", Bitrate320.Arg())
	assert.Equal(t, "128k", Bitrate128.Arg())
}

func TestSummarize(t *testing.T) {
	results := []ConversionResult{
		{InputPath: "a.flac", Status: ConversionSucceeded},
		{InputPath: "b.flac", Status: ConversionFailed, Error: "boom"},
		{InputPath: "c.flac", Status: ConversionSucceeded},
	}

	summary := Summarize(results)
	assert.Equal(t, ConversionSummary{Total: 3, Succeeded: 2, Failed: 1}, summary)

	assert.Equal(t, ConversionSummary{}, Summarize(nil))
}
