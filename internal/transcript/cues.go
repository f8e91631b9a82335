package transcript

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

var (
	// 00:01:02,500 --> 00:01:05,000 (SRT) or 01:02.500 --> 01:05.000 (VTT)
	reCueTime  = regexp.MustCompile(`^((?:\d+:)?\d{1,2}:\d{2}[,.]\d{1,3})\s*-->\s*((?:\d+:)?\d{1,2}:\d{2}[,.]\d{1,3})`)
	reCueIndex = regexp.MustCompile(`^\d+$`)
	reCueTag   = regexp.MustCompile(`</?[^>]+>`)
)

// ParseSRT parses SubRip subtitles into transcript segments.
func ParseSRT(content string) ([]models.TranscriptSegment, error) {
	return parseCues(content, false)
}

// ParseVTT parses WebVTT subtitles into transcript segments.
func ParseVTT(content string) ([]models.TranscriptSegment, error) {
	return parseCues(content, true)
}

// parseCues walks blank-line separated cue blocks. Text lines of a cue are
// joined with spaces; VTT inline tags are removed.
func parseCues(content string, vtt bool) ([]models.TranscriptSegment, error) {
	var (
		segments []models.TranscriptSegment
		current  *models.TranscriptSegment
		text     []string
		lineNo   int
	)

	flush := func() {
		if current != nil {
			current.Text = strings.Join(text, " ")
			if current.Text != "" {
				segments = append(segments, *current)
			}
		}
		current, text = nil, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		if line == "" {
			flush()
			continue
		}
		if m := reCueTime.FindStringSubmatch(line); m != nil {
			// index of this cue when the blank separator line is missing
			if n := len(text); n > 0 && reCueIndex.MatchString(text[n-1]) {
				text = text[:n-1]
			}
			flush()
			start, err := parseCueTime(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			end, err := parseCueTime(m[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = &models.TranscriptSegment{Start: start, Duration: end - start}
			continue
		}
		if current == nil {
			// sequence numbers, WEBVTT header, NOTE and STYLE blocks
			continue
		}
		if vtt {
			line = strings.TrimSpace(reCueTag.ReplaceAllString(line, ""))
		}
		if line != "" {
			text = append(text, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan cues: %w", err)
	}
	flush()

	models.SortSegments(segments)
	return segments, nil
}

// parseCueTime converts [HH:]MM:SS,mmm or [HH:]MM:SS.mmm to seconds.
func parseCueTime(s string) (float64, error) {
	s = strings.Replace(s, ",", ".", 1)
	clock, frac, _ := strings.Cut(s, ".")

	parts := strings.Split(clock, ":")
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("cue time %q: %w", s, err)
		}
		total = total*60 + n
	}

	ms := 0.0
	if frac != "" {
		f, err := strconv.ParseFloat("0."+frac, 64)
		if err != nil {
			return 0, fmt.Errorf("cue time %q: %w", s, err)
		}
		ms = f
	}
	return float64(total) + ms, nil
}
