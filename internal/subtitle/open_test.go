package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenTranscript(t *testing.T) {
	content := "\ufeff[00:00:01.500]Alice\tHello world\n" +
		"this line is noise\n" +
		"[00:00:04.200]Bob\tHi there\r\n"

	tmpDir := t.TempDir()
	lrcPath := filepath.Join(tmpDir, "talk.lrc")
	if err := os.WriteFile(lrcPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	entries, err := Open(lrcPath)
	if err != nil {
		t.Fatalf("failed to open transcript: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Speaker != "Alice" {
		t.Errorf("entry 0: expected speaker 'Alice', got %q", entries[0].Speaker)
	}
	if entries[0].StartMS != 1500 {
		t.Errorf("entry 0: expected start 1500, got %d", entries[0].StartMS)
	}
	if entries[0].EndMS != nil {
		t.Errorf("entry 0: expected no end time before resolving")
	}

	// trailing carriage return is trimmed with the content
	if entries[1].Text != "Hi there" {
		t.Errorf("entry 1: expected 'Hi there', got %q", entries[1].Text)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.lrc"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to open transcript") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestWriterWritesWholeDocument(t *testing.T) {
	entries := Resolve(ParseLRCString(
		"[00:00:01.500]Alice\tHello world\n[00:00:04.200]Bob\tHi there\n",
	))

	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "nested", "out.ass")

	writer, err := NewWriter(FormatASS)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.Write(entries, outPath); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	outContent, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	if string(outContent) != RenderASS(entries) {
		t.Errorf("written content differs from rendered document")
	}
}
