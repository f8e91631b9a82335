package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

func TestExtractRange(t *testing.T) {
	segs := []models.TranscriptSegment{
		{Text: "hello", Start: 0, Duration: 1},
		{Text: "world", Start: 2, Duration: 1},
	}

	timestamped, plain := ExtractRange(segs, 0, 3, 0)
	assert.Equal(t, "hello, world", plain)
	assert.Equal(t, "[00:00] hello\n[00:02] world", timestamped)
}

func TestExtractRangePunctuation(t *testing.T) {
	segs := []models.TranscriptSegment{
		{Text: " First sentence. ", Start: 10},
		{Text: "a question?", Start: 11},
		{Text: "", Start: 12},
		{Text: "note:", Start: 13},
		{Text: "list;", Start: 14},
		{Text: "wow!", Start: 15},
		{Text: "trailing", Start: 16},
		{Text: "end", Start: 17},
	}

	timestamped, plain := ExtractRange(segs, 10, 20, 0)
	assert.Equal(t, "First sentence. a question? note: list; wow! trailing, end", plain)
	lines := strings.Split(timestamped, "\n")
	assert.Len(t, lines, 8)
	assert.Equal(t, "[00:12]", lines[2])
}

func TestExtractRangeWindow(t *testing.T) {
	segs := []models.TranscriptSegment{
		{Text: "before", Start: 55},
		{Text: "edge", Start: 59.5},
		{Text: "inside", Start: 60},
		{Text: "last", Start: 119.9},
		{Text: "next chapter", Start: 120},
		{Text: "later", Start: 123},
	}

	tests := []struct {
		name      string
		start     int
		end       int
		buffer    int
		wantPlain string
	}{
		{"half open window", 60, 120, 0, "inside, last"},
		{"buffer widens both sides", 60, 120, 2, "edge, inside, last, next chapter"},
		{"buffer clamps at zero", 0, 10, 30, ""},
		{"empty window", 200, 300, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timestamped, plain := ExtractRange(segs, tt.start, tt.end, tt.buffer)
			assert.Equal(t, tt.wantPlain, plain)
			if tt.wantPlain == "" {
				assert.Empty(t, timestamped)
			}
		})
	}
}

func TestExtractRangeBufferFromZero(t *testing.T) {
	segs := []models.TranscriptSegment{{Text: "intro", Start: 0}, {Text: "more", Start: 4}}
	_, plain := ExtractRange(segs, 3, 10, 5)
	assert.Equal(t, "intro, more", plain)
}

func TestParseSRT(t *testing.T) {
	content := "\ufeff1\n00:00:00,000 --> 00:00:02,500\nHello there\nand welcome\n\n" +
		"2\n00:00:02,500 --> 00:00:05,000\n42\n" +
		"3\n00:01:05,250 --> 00:01:07,000\nLast line.\n"

	segs, err := ParseSRT(content)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.Equal(t, "Hello there and welcome", segs[0].Text)
	assert.InDelta(t, 2.5, segs[0].Duration, 1e-9)
	assert.Equal(t, "42", segs[1].Text)
	assert.InDelta(t, 65.25, segs[2].Start, 1e-9)
	assert.InDelta(t, 67.0, segs[2].End(), 1e-9)
}

func TestParseVTT(t *testing.T) {
	content := "WEBVTT\n\nNOTE generated\n\n" +
		"00:05.000 --> 00:07.000 align:start\n<c>second</c> cue\n\n" +
		"00:00:01.000 --> 00:00:03.000\n<v Speaker>first cue</v>\n"

	segs, err := ParseVTT(content)
	require.NoError(t, err)
	require.Len(t, segs, 2)

	assert.Equal(t, "first cue", segs[0].Text)
	assert.InDelta(t, 1.0, segs[0].Start, 1e-9)
	assert.Equal(t, "second cue", segs[1].Text)
	assert.InDelta(t, 5.0, segs[1].Start, 1e-9)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`[{"text":"b","start":3.5,"duration":1.2},{"text":"a","start":0,"duration":3.5}]`)

	segs, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "a", segs[0].Text)
	assert.InDelta(t, 3.5, segs[1].Start, 1e-9)

	_, err = ParseJSON([]byte(`{"not":"a list"}`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	srt := filepath.Join(dir, "talk.srt")
	require.NoError(t, os.WriteFile(srt, []byte("1\n00:00:00,000 --> 00:00:01,000\nhi\n"), 0644))
	segs, err := LoadFile(srt)
	require.NoError(t, err)
	assert.Len(t, segs, 1)

	other := filepath.Join(dir, "talk.txt")
	require.NoError(t, os.WriteFile(other, []byte("hi"), 0644))
	_, err = LoadFile(other)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
