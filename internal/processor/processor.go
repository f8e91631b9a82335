package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/chapter-flow/internal/chapter"
	"github.com/nguyentantai21042004/chapter-flow/internal/formatter"
	"github.com/nguyentantai21042004/chapter-flow/internal/models"
	"github.com/nguyentantai21042004/chapter-flow/internal/source"
	"github.com/nguyentantai21042004/chapter-flow/internal/transcript"
)

// Process runs the whole pipeline for one manifest: chapters, transcript,
// summaries, document, archive.
func (p *implProcessor) Process(ctx context.Context, manifestPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting job: %s", manifestPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Load the job
	m, err := source.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	remote := &lookup{p: p, url: m.URL}

	title := strings.TrimSpace(m.Title)
	description := m.Description
	duration := m.Duration
	if description == "" || duration == 0 {
		info := remote.get(ctx)
		if description == "" {
			description = info.Description
		}
		if duration == 0 {
			duration = info.Duration
		}
	}
	if title == "" {
		if title = remote.get(ctx).Title; title == "" {
			title = m.URL
		}
	}

	// Step 2: Chapters
	chapters, err := p.chapters(ctx, m, remote, description, duration)
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "Found %d chapters", len(chapters))
	for _, c := range chapters {
		p.logger.Debug(ctx, "  %s - %s (%ds)", c.Label(), c.Title, c.Duration())
	}

	// Step 3: Transcript
	segments, err := transcript.LoadFile(m.Transcript)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	p.logger.Info(ctx, "Loaded %d transcript segments from %s", len(segments), filepath.Base(m.Transcript))

	// Step 4: Summaries
	report, err := p.orchestrator.Process(ctx, title, chapters, segments)
	if err != nil {
		return fmt.Errorf("summarize chapters: %w", err)
	}

	// Step 5: Document
	mdPath, err := p.writeOutput(ctx, manifestPath, formatter.Markdown(title, report.Summaries))
	if err != nil {
		return err
	}

	// Step 6: Archive the manifest
	if err := p.moveToArchived(ctx, manifestPath); err != nil {
		p.logger.Warn(ctx, "Failed to move manifest to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Job completed: %s", title)
	p.logger.Info(ctx, "Output: %s", mdPath)
	p.logger.Info(ctx, "Chapters: %d summarized, %d failed, %d skipped",
		len(report.Summaries)-report.Failed, report.Failed, len(report.Skipped))
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// chapters prefers the description and falls back to pre-structured
// chapters from the manifest, then from remote sources.
func (p *implProcessor) chapters(ctx context.Context, m *source.Manifest, remote *lookup, description string, duration int) ([]models.Chapter, error) {
	if chapters := p.extractor.FromDescription(ctx, source.CleanDescription(description), duration); len(chapters) > 0 {
		return chapters, nil
	}

	cands := m.Chapters
	if len(cands) == 0 {
		p.logger.Info(ctx, "No chapters in description, trying remote sources")
		cands = remote.get(ctx).Chapters
	} else {
		p.logger.Info(ctx, "No chapters in description, using manifest chapters")
	}

	if chapters := p.extractor.FromCandidates(ctx, cands, duration); len(chapters) > 0 {
		return chapters, nil
	}
	return nil, chapter.ErrEmptyChapterList
}
