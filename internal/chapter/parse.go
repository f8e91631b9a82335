package chapter

import (
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
	"github.com/nguyentantai21042004/chapter-flow/internal/timestamp"
)

// reChapterLine matches "[optional bracket] timestamp [optional bracket] [separator] title"
// on a single description line.
var reChapterLine = regexp.MustCompile(`^\s*[\[(]?(\d{1,2}:(?:\d{1,2}:)?\d{1,2})[\])]?[ \t]*[-–—|:]*[ \t]*(.*?)\s*$`)

// Match is a chapter line found in a description. Err is set when the
// timestamp could not be parsed.
type Match struct {
	Line      int
	Timestamp string
	StartTime int
	Title     string
	Err       error
}

// ScanLines returns every description line shaped like a chapter marker,
// including ones whose timestamp turns out to be malformed.
func ScanLines(text string) []Match {
	var matches []Match
	for i, line := range strings.Split(text, "\n") {
		m := reChapterLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		if title == "" {
			continue
		}
		start, err := timestamp.Parse(m[1])
		matches = append(matches, Match{Line: i + 1, Timestamp: m[1], StartTime: start, Title: title, Err: err})
	}
	return matches
}

// ParseCandidates extracts chapter candidates from description text in the
// order they appear. Lines with an empty title or malformed timestamp are
// dropped.
func ParseCandidates(text string) []models.Candidate {
	var cands []models.Candidate
	for _, m := range ScanLines(text) {
		if m.Err != nil {
			continue
		}
		cands = append(cands, m.Candidate())
	}
	return cands
}

// Candidate converts a parsed match into a chapter candidate.
func (m Match) Candidate() models.Candidate {
	return models.Candidate{Title: m.Title, StartTime: m.StartTime}
}
