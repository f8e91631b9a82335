package orchestrator

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

// Orchestrator aligns every chapter with the transcript and summarizes it.
type Orchestrator interface {
	Process(ctx context.Context, videoTitle string, chapters []models.Chapter, segments []models.TranscriptSegment) (Report, error)
}

// Report is the outcome of one run. Summaries follow chapter order and
// include placeholders for chapters whose summary failed.
type Report struct {
	Summaries []models.ChapterSummary
	// Skipped lists chapters with no transcript text in their window.
	Skipped []models.Chapter
	Failed  int
}

// Options controls concurrency, pacing and retries.
type Options struct {
	// Workers bounds in-flight summarizer calls; 1 runs chapters sequentially.
	Workers           int
	RequestsPerMinute int
	CallTimeout       time.Duration
	MaxRetries        int
	RetryWait         time.Duration
	MaxRetryWait      time.Duration
	BufferSeconds     int
}
