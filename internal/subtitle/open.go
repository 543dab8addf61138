package subtitle

import (
	"fmt"
	"os"
)

// Open reads and parses the transcript at path. Entries come back without
// end times.
func Open(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ParseLRC(file)
}
