package summarizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/timestamp"
)

const chapterPrompt = `You are an expert at analysing video content. Summarize ONE chapter of the video below in %s.

Video: %s
Chapter: %s (%s - %s)

Requirements:
- Extract the core ideas and key information of this chapter
- Keep important figures, names and concrete details
- Write clear, professional prose; do not invent content that is not in the transcript
- Use a few short paragraphs or bullet points; no top-level headings

Transcript with timestamps (for reference):
---
%s
---

Transcript as continuous text:
---
%s
---`

var reThink = regexp.MustCompile(`(?s)<think>.*?</think>`)

func buildPrompt(req Request, language string) string {
	c := req.Chapter
	return fmt.Sprintf(chapterPrompt,
		language,
		req.VideoTitle,
		c.Title, c.Label(), timestamp.Format(c.EndTime),
		req.TimestampedText,
		req.PlainText,
	)
}

// cleanResponse strips reasoning blocks and code fences some models wrap
// around their answer.
func cleanResponse(s string) string {
	s = reThink.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
