package subtitle

import (
	"fmt"
	"strconv"
)

const (
	msPerHour   = 3600000
	msPerMinute = 60000
	msPerSecond = 1000
)

// ParseTimeFields converts the digit groups of a transcript timestamp into
// milliseconds. frac2 holds hundredths of a second. A group that does not
// parse as a number counts as zero instead of failing the line.
func ParseTimeFields(h, m, s, frac2 string) uint32 {
	return atoiOrZero(h)*msPerHour +
		atoiOrZero(m)*msPerMinute +
		atoiOrZero(s)*msPerSecond +
		atoiOrZero(frac2)*10
}

func atoiOrZero(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// HH:MM:SS,mmm with hours never wrapped at 24
func FormatSRTTime(ms uint32) string {
	hours := ms / msPerHour
	minutes := (ms % msPerHour) / msPerMinute
	seconds := (ms % msPerMinute) / msPerSecond
	millis := ms % msPerSecond

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// H:MM:SS.cc with unpadded hours and centiseconds
func FormatASSTime(ms uint32) string {
	hours := ms / msPerHour
	minutes := (ms % msPerHour) / msPerMinute
	seconds := (ms % msPerMinute) / msPerSecond
	centis := (ms % msPerSecond) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
