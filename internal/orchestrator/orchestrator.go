package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
	"github.com/nguyentantai21042004/chapter-flow/internal/summarizer"
	"github.com/nguyentantai21042004/chapter-flow/internal/transcript"
)

type slotState int

const (
	slotPending slotState = iota
	slotSkipped
	slotDone
	slotFailed
)

// slot holds the outcome for one chapter index. Each slot is written by
// exactly one goroutine and read only after all workers finish.
type slot struct {
	state   slotState
	summary models.ChapterSummary
}

// Process summarizes chapters in order. Chapters without transcript text are
// skipped; a failed summary becomes a placeholder and the batch continues.
// Cancelling ctx stops new calls; calls already issued run to completion and
// the partial report is returned with ctx.Err().
func (o *implOrchestrator) Process(ctx context.Context, videoTitle string, chapters []models.Chapter, segments []models.TranscriptSegment) (Report, error) {
	if err := models.ValidateChapters(chapters); err != nil {
		return Report{}, fmt.Errorf("validate chapters: %w", err)
	}

	slots := make([]slot, len(chapters))
	sem := newSemaphore(o.opts.Workers)
	callCtx := context.WithoutCancel(ctx)

	var (
		wg      sync.WaitGroup
		stopErr error
	)
	for i, ch := range chapters {
		timestamped, plain := transcript.ExtractRange(segments, ch.StartTime, ch.EndTime, o.opts.BufferSeconds)
		if plain == "" {
			o.logger.Warn(ctx, "No transcript text for chapter %s - %q, skipping", ch.Label(), ch.Title)
			slots[i].state = slotSkipped
			continue
		}

		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}
		if err := sem.acquire(ctx); err != nil {
			stopErr = err
			break
		}

		wg.Add(1)
		go func(i int, req summarizer.Request) {
			defer wg.Done()
			defer sem.release()
			slots[i] = o.summarize(ctx, callCtx, i, len(chapters), req)
		}(i, summarizer.Request{
			VideoTitle:      videoTitle,
			Chapter:         ch,
			TimestampedText: timestamped,
			PlainText:       plain,
		})
	}
	wg.Wait()

	var report Report
	for i, s := range slots {
		switch s.state {
		case slotDone:
			report.Summaries = append(report.Summaries, s.summary)
		case slotFailed:
			report.Summaries = append(report.Summaries, s.summary)
			report.Failed++
		case slotSkipped:
			report.Skipped = append(report.Skipped, chapters[i])
		}
	}

	o.logger.Info(ctx, "Chapter summaries complete: %d success, %d failed, %d skipped",
		len(report.Summaries)-report.Failed, report.Failed, len(report.Skipped))

	return report, stopErr
}

// summarize runs one chapter through the summarizer, retrying transient
// failures. ctx gates new attempts; callCtx is used for the calls themselves.
func (o *implOrchestrator) summarize(ctx, callCtx context.Context, idx, total int, req summarizer.Request) slot {
	ch := req.Chapter
	attempts := 0

	operation := func() (string, error) {
		if err := o.limiter.Wait(ctx); err != nil {
			return "", backoff.Permanent(err)
		}
		attempts++

		o.logger.Info(ctx, "[%d/%d] Summarizing: %s - %s", idx+1, total, ch.Label(), ch.Title)
		res := o.call(callCtx, req)
		if res.OK() {
			return res.Text, nil
		}

		err := res.Err
		if err == nil {
			err = fmt.Errorf("summarizer returned %s", res.Status)
		}
		if res.Status != summarizer.StatusTransient {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	text, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(o.newBackOff()),
		backoff.WithMaxTries(uint(o.opts.MaxRetries)+1),
		backoff.WithNotify(func(err error, wait time.Duration) {
			o.logger.Warn(ctx, "[%d/%d] Transient failure for %q, retrying in %s: %v", idx+1, total, ch.Title, wait, err)
		}),
	)
	if err == nil {
		return slot{state: slotDone, summary: models.ChapterSummary{
			Chapter:        ch,
			TimestampLabel: ch.Label(),
			Summary:        text,
		}}
	}

	// cancelled before the first call went out
	if attempts == 0 && ctx.Err() != nil {
		return slot{state: slotPending}
	}

	o.logger.Error(ctx, "[%d/%d] Failed to summarize %q after %d attempt(s): %v", idx+1, total, ch.Title, attempts, err)
	return slot{state: slotFailed, summary: models.ChapterSummary{Chapter: ch, TimestampLabel: ch.Label(), Failed: true}}
}

func (o *implOrchestrator) call(ctx context.Context, req summarizer.Request) summarizer.Result {
	if o.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.CallTimeout)
		defer cancel()
	}
	return o.summarizer.Generate(ctx, req)
}

func (o *implOrchestrator) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = o.opts.RetryWait
	bo.MaxInterval = o.opts.MaxRetryWait
	bo.Multiplier = 2
	bo.RandomizationFactor = 0.1
	bo.Reset()
	return bo
}
