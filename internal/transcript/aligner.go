package transcript

import (
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
	"github.com/nguyentantai21042004/chapter-flow/internal/timestamp"
)

// sentenceEnds are the characters after which no joining comma is added.
const sentenceEnds = ".?!:;"

// ExtractRange selects the segments starting inside
// [max(0, start-buffer), end+buffer) and renders them twice: one
// "[MM:SS] text" line per segment, and as flowing prose where a comma joins
// fragments that do not already end a sentence. Blank segments keep their
// timestamp line but add nothing to the prose. An empty window yields two
// empty strings.
func ExtractRange(segments []models.TranscriptSegment, start, end, buffer int) (timestamped, plain string) {
	from := float64(start - buffer)
	if from < 0 {
		from = 0
	}
	to := float64(end + buffer)

	var lines, texts []string
	for _, seg := range segments {
		if seg.Start < from || seg.Start >= to {
			continue
		}
		text := strings.TrimSpace(seg.Text)
		lines = append(lines, strings.TrimSpace("["+timestamp.Format(int(seg.Start))+"] "+text))
		if text == "" {
			continue
		}

		if n := len(texts); n > 0 && !endsSentence(texts[n-1]) {
			texts[n-1] += ","
		}
		texts = append(texts, text)
	}

	return strings.Join(lines, "\n"), strings.Join(texts, " ")
}

func endsSentence(text string) bool {
	r, _ := utf8.DecodeLastRuneInString(text)
	return strings.ContainsRune(sentenceEnds, r)
}
