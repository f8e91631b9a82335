package formatter

import (
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

const (
	defaultPart        = "Part 1"
	unavailableSummary = "_Summary unavailable._"
)

// PartHeading returns the part a chapter title opens, e.g. "Part 2" for
// "Part 2: Topic B". The second result is false when the title carries no
// part marker.
func PartHeading(title string) (string, bool) {
	idx := strings.Index(title, "Part")
	if idx < 0 {
		return "", false
	}
	colon := strings.Index(title[idx:], ":")
	if colon < 0 {
		return "", false
	}
	heading := strings.TrimSpace(title[:idx+colon])
	if heading == "" {
		return "", false
	}
	return heading, true
}

// Markdown assembles the final document: the video title, part headings
// inferred from chapter titles, and one section per chapter summary in the
// given order. Chapters before the first part marker fall under "Part 1".
func Markdown(videoTitle string, summaries []models.ChapterSummary) string {
	var sb strings.Builder
	sb.WriteString("# " + strings.TrimSpace(videoTitle) + "\n")

	currentPart := ""
	for _, s := range summaries {
		part, ok := PartHeading(s.Chapter.Title)
		if !ok && currentPart == "" {
			part, ok = defaultPart, true
		}
		if ok && part != currentPart {
			currentPart = part
			sb.WriteString("\n## " + part + "\n")
		}

		label := s.TimestampLabel
		if label == "" {
			label = s.Chapter.Label()
		}
		sb.WriteString("\n### " + label + " - " + s.Chapter.Title + "\n\n")

		body := strings.TrimSpace(s.Summary)
		if s.Failed || body == "" {
			body = unavailableSummary
		}
		sb.WriteString(body + "\n")
	}

	return sb.String()
}
