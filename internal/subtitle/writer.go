package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	assTitle = "LRC Transcript"

	assStyleFormat  = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	assDefaultStyle = "Style: Default,Arial,16,&Hffffff,&Hffffff,&H0,&H0,0,0,0,0,100,100,0,0,1,2,0,2,10,10,10,1"
	assEventFormat  = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

	// inline override tags wrapping the speaker name on every event line
	ASSSpeakerColor = `{\c&H00ffff&}`
	ASSResetColor   = `{\c&Hffffff&}`
)

// SubRip format
type SRTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatASS:
		return &ASSWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// writes the entries to an SRT file
func (w *SRTWriter) Write(entries []Entry, path string) error {
	return writeFile(path, RenderSRT(entries))
}

// writes the entries to an ASS file
func (w *ASSWriter) Write(entries []Entry, path string) error {
	return writeFile(path, RenderASS(entries))
}

// RenderSRT renders numbered SubRip blocks, one per entry, each followed by
// a blank line. No entries render as an empty string.
func RenderSRT(entries []Entry) string {
	var sb strings.Builder
	for i, entry := range entries {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatSRTTime(entry.StartMS),
			FormatSRTTime(entry.End())))

		sb.WriteString(fmt.Sprintf("%s: %s\n\n", entry.Speaker, entry.Text))
	}
	return sb.String()
}

// RenderASS renders a complete ASS script with a fixed header and default
// style, and one Dialogue event per entry with the speaker highlighted.
func RenderASS(entries []Entry) string {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", assTitle))
	sb.WriteString("ScriptType: v4.00+\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString(assStyleFormat + "\n")
	sb.WriteString(assDefaultStyle + "\n\n")

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString(assEventFormat + "\n")

	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s%s%s: %s\n",
			FormatASSTime(entry.StartMS),
			FormatASSTime(entry.End()),
			ASSSpeakerColor,
			entry.Speaker,
			ASSResetColor,
			entry.Text))
	}

	return sb.String()
}

func writeFile(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSRT:
		return FormatSRT, nil
	case FormatASS:
		return FormatASS, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}

// subtitle format based on file extension
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".ass" {
		return FormatASS
	}
	return FormatSRT
}

// file extension for a format
func ExtensionFor(format Format) string {
	switch format {
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}
