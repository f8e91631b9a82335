package processor

import (
	"context"

	"github.com/nguyentantai21042004/chapter-flow/internal/source"
)

// lookup fetches remote metadata at most once per job
type lookup struct {
	p       *implProcessor
	url     string
	fetched bool
	info    source.VideoInfo
}

// get merges what every source knows, earlier sources winning. Source
// failures are logged and skipped.
func (l *lookup) get(ctx context.Context) source.VideoInfo {
	if l.fetched || l.url == "" {
		return l.info
	}
	l.fetched = true

	for _, src := range l.p.sources {
		info, err := src.Fetch(ctx, l.url)
		if err != nil {
			l.p.logger.Warn(ctx, "Metadata source failed for %s: %v", l.url, err)
			continue
		}
		if l.info.Title == "" {
			l.info.Title = info.Title
		}
		if l.info.Description == "" {
			l.info.Description = info.Description
		}
		if l.info.Duration == 0 {
			l.info.Duration = info.Duration
		}
		if len(l.info.Chapters) == 0 {
			l.info.Chapters = info.Chapters
		}
	}
	return l.info
}
