package chapter

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

// FromDescription parses chapter markers out of a description.
func (e *implExtractor) FromDescription(ctx context.Context, description string, duration int) []models.Chapter {
	var cands []models.Candidate
	for _, m := range ScanLines(description) {
		if m.Err != nil {
			e.logger.Debug(ctx, "Skipping line %d: %v", m.Line, m.Err)
			continue
		}
		cands = append(cands, m.Candidate())
	}

	chapters := Finalize(cands, duration, e.opts)
	e.logger.Debug(ctx, "Description yielded %d candidates, %d chapters", len(cands), len(chapters))
	return chapters
}

// FromCandidates applies the same end-time and merge rules to candidates
// supplied by a fallback source.
func (e *implExtractor) FromCandidates(ctx context.Context, cands []models.Candidate, duration int) []models.Chapter {
	var kept []models.Candidate
	for _, c := range cands {
		c.Title = strings.TrimSpace(c.Title)
		if c.Title == "" || c.StartTime < 0 {
			e.logger.Debug(ctx, "Skipping fallback candidate %+v", c)
			continue
		}
		kept = append(kept, c)
	}

	chapters := Finalize(kept, duration, e.opts)
	e.logger.Debug(ctx, "Fallback source yielded %d candidates, %d chapters", len(kept), len(chapters))
	return chapters
}
