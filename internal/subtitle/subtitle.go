package subtitle

import (
	"errors"
)

// display window given to the last entry of a transcript
const FallbackDuration uint32 = 3000

var ErrUnsupportedFormat = errors.New("unsupported output format")

// represents single transcript line
type Entry struct {
	Timestamp string // raw HH:MM:SS.fff fragment, diagnostics only
	Speaker   string
	Text      string
	StartMS   uint32
	EndMS     *uint32
}

// end time, falling back to a fixed window when unresolved
func (e Entry) End() uint32 {
	if e.EndMS != nil {
		return *e.EndMS
	}
	return e.StartMS + FallbackDuration
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
)

// interface for writing subtitles to files
type Writer interface {
	Write(entries []Entry, path string) error
}
