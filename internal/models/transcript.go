package models

import "sort"

// TranscriptSegment is one caption unit with its own timing, in seconds.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the segment end time.
func (s TranscriptSegment) End() float64 {
	return s.Start + s.Duration
}

// SortSegments orders segments by start time, keeping the original order of
// segments that start together.
func SortSegments(segments []TranscriptSegment) {
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
}

// ChapterSummary is the summarizer output for one chapter.
type ChapterSummary struct {
	Chapter        Chapter `json:"chapter"`
	TimestampLabel string  `json:"timestamp"`
	Summary        string  `json:"summary"`
	// Failed marks a placeholder left after the summarizer gave up.
	Failed bool `json:"failed,omitempty"`
}
