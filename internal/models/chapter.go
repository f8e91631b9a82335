package models

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/chapter-flow/internal/timestamp"
)

var (
	ErrUnordered     = errors.New("chapters not in ascending start order")
	ErrNotContiguous = errors.New("chapter end does not meet next start")
	ErrEmptyRange    = errors.New("chapter ends before it starts")
)

// Candidate is a chapter start found in a description or supplied by a
// fallback source, before end times are assigned.
type Candidate struct {
	Title     string `json:"title" yaml:"title"`
	StartTime int    `json:"start_time" yaml:"start_time"`
}

// Chapter is a titled interval of the video timeline, in seconds.
type Chapter struct {
	Title     string `json:"title"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
}

// Duration returns the length of the chapter in seconds.
func (c Chapter) Duration() int {
	return c.EndTime - c.StartTime
}

// Label returns the chapter start as MM:SS.
func (c Chapter) Label() string {
	return timestamp.Format(c.StartTime)
}

// ValidateChapters checks that chapters form a finalized list: strictly
// ascending starts, each end meeting the next start, and a last chapter that
// ends after it starts.
func ValidateChapters(chapters []Chapter) error {
	for i, c := range chapters {
		if c.StartTime < 0 {
			return fmt.Errorf("chapter %d %q: %w", i, c.Title, ErrEmptyRange)
		}
		if i == len(chapters)-1 {
			if c.EndTime <= c.StartTime {
				return fmt.Errorf("chapter %d %q: %w", i, c.Title, ErrEmptyRange)
			}
			continue
		}

		next := chapters[i+1]
		if next.StartTime <= c.StartTime {
			return fmt.Errorf("chapter %d %q: %w", i+1, next.Title, ErrUnordered)
		}
		if c.EndTime != next.StartTime {
			return fmt.Errorf("chapter %d %q: %w", i, c.Title, ErrNotContiguous)
		}
	}
	return nil
}
