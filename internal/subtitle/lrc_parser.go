package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// [HH:MM:SS.fff]speaker<TAB>text; only the first two fraction digits count
var lrcLineRegex = regexp.MustCompile(
	`\[((\d{2}):(\d{2}):(\d{2})\.(\d{2})\d)\]([^\t]+)\t(.+)`,
)

// ParseLRC reads a transcript line by line and returns the entries it finds,
// in input order. Lines that do not match are skipped, whatever their length.
// The only error is a failing reader. The returned entries have no end time;
// see Resolve.
func ParseLRC(r io.Reader) ([]Entry, error) {
	entries := make([]Entry, 0)

	reader := bufio.NewReader(r)
	lineNum := 0

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lineNum++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")

			if lineNum == 1 {
				line = strings.TrimPrefix(line, "\ufeff")
			}

			if entry, ok := parseLRCLine(line); ok {
				entries = append(entries, entry)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading transcript: %w", err)
		}
	}

	return entries, nil
}

// ParseLRCString is ParseLRC over in-memory content.
func ParseLRCString(content string) []Entry {
	// a strings.Reader never fails
	entries, _ := ParseLRC(strings.NewReader(content))
	return entries
}

func parseLRCLine(line string) (Entry, bool) {
	matches := lrcLineRegex.FindStringSubmatch(line)
	if len(matches) != 8 {
		return Entry{}, false
	}

	return Entry{
		Timestamp: matches[1],
		Speaker:   strings.TrimSpace(matches[6]),
		Text:      strings.TrimSpace(matches[7]),
		StartMS:   ParseTimeFields(matches[2], matches[3], matches[4], matches[5]),
	}, true
}
