package source

import (
	"regexp"
	"strings"
)

// Page chrome that ends up in scraped descriptions. Each pattern matches a
// whole line so chapter titles mentioning these words survive.
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*\d+ episodes\s*$`),
	regexp.MustCompile(`(?im)^\s*podcasts\s*$`),
	regexp.MustCompile(`(?im)^\s*(?:show )?transcript\s*$`),
	regexp.MustCompile(`(?im)^\s*follow along using the transcript\.\s*$`),
	regexp.MustCompile(`(?im)^\s*\d+(?:\.\d+)?[KM] subscribers\s*$`),
	regexp.MustCompile(`(?im)^\s*(?:videos|about|show less|show more|view all|chapters)\s*$`),
}

var reBlankRun = regexp.MustCompile(`\n\s*\n`)

// CleanDescription removes page boilerplate lines and collapses blank runs.
func CleanDescription(description string) string {
	cleaned := strings.ReplaceAll(description, "\r\n", "\n")
	for _, re := range boilerplate {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = reBlankRun.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
