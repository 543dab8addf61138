package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesAt(starts ...uint32) []Entry {
	entries := make([]Entry, len(starts))
	for i, start := range starts {
		entries[i] = Entry{Speaker: "S", Text: "t", StartMS: start}
	}
	return entries
}

func endsOf(entries []Entry) []uint32 {
	ends := make([]uint32, len(entries))
	for i, e := range entries {
		ends[i] = *e.EndMS
	}
	return ends
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		starts []uint32
		want   []uint32
	}{
		{"three entries", []uint32{1000, 5000, 9000}, []uint32{5000, 9000, 12000}},
		{"single entry", []uint32{2000}, []uint32{5000}},
		{"equal starts", []uint32{1000, 1000, 4000}, []uint32{1000, 4000, 7000}},
		// decreasing input passes straight through
		{"non-monotonic", []uint32{5000, 1000}, []uint32{1000, 4000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := Resolve(entriesAt(tt.starts...))
			require.Len(t, resolved, len(tt.starts))
			assert.Equal(t, tt.want, endsOf(resolved))
		})
	}
}

func TestResolveEmpty(t *testing.T) {
	assert.Empty(t, Resolve(nil))
	assert.Empty(t, Resolve([]Entry{}))
}

func TestResolveLeavesInputUntouched(t *testing.T) {
	input := entriesAt(1000, 2000)
	resolved := Resolve(input)

	for _, e := range input {
		assert.Nil(t, e.EndMS)
	}
	for i := range resolved {
		assert.Equal(t, input[i].StartMS, resolved[i].StartMS)
		assert.Equal(t, input[i].Speaker, resolved[i].Speaker)
		assert.Equal(t, input[i].Text, resolved[i].Text)
	}
}

func TestEntryEndFallback(t *testing.T) {
	assert.Equal(t, uint32(5000), Entry{StartMS: 2000}.End())

	end := uint32(2500)
	assert.Equal(t, uint32(2500), Entry{StartMS: 2000, EndMS: &end}.End())
}
