package chapter

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

// ErrEmptyChapterList is returned when no source yields a usable chapter.
var ErrEmptyChapterList = errors.New("no chapters found")

// Extractor builds finalized chapter lists from descriptions or
// pre-structured candidates.
type Extractor interface {
	FromDescription(ctx context.Context, description string, duration int) []models.Chapter
	FromCandidates(ctx context.Context, cands []models.Candidate, duration int) []models.Chapter
}

// Options tunes the merge rules. Zero values fall back to the defaults.
type Options struct {
	// MinDuration is the shortest chapter, in seconds, kept standalone.
	MinDuration int
	// FallbackSpan is the length given to the last chapter when the video
	// duration is unknown.
	FallbackSpan int
}

const (
	DefaultMinDuration  = 60
	DefaultFallbackSpan = 3600
)

func (o Options) withDefaults() Options {
	if o.MinDuration == 0 {
		o.MinDuration = DefaultMinDuration
	}
	if o.FallbackSpan == 0 {
		o.FallbackSpan = DefaultFallbackSpan
	}
	return o
}
