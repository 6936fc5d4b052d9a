package types

import "fmt"

// Bitrate is a target MP3 bitrate in kbps. Only the four values the
// encoder UI offers are valid.
type Bitrate int

const (
	Bitrate128 Bitrate = 128
	Bitrate192 Bitrate = 192
	Bitrate256 Bitrate = 256
	Bitrate320 Bitrate = 320
)

// DefaultBitrate is used when the caller does not pick one.
const DefaultBitrate = Bitrate320

// ValidBitrates lists the supported bitrates in ascending order.
var ValidBitrates = []Bitrate{Bitrate128, Bitrate192, Bitrate256, Bitrate320}

// ParseBitrate validates a kbps value against the supported set.
func ParseBitrate(kbps int) (Bitrate, error) {
	for _, b := range ValidBitrates {
		if int(b) == kbps {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unsupported bitrate %d kbps (must be one of 128, 192, 256, 320)", kbps)
}

// Arg returns the value formatted for ffmpeg's -b:a flag, e.g. "320k".
func (b Bitrate) Arg() string {
	return fmt.Sprintf("%dk", int(b))
}

func (b Bitrate) String() string {
	return fmt.Sprintf("%d kbps", int(b))
}
