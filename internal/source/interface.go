package source

import (
	"context"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

// VideoInfo is the metadata a source knows about one video. Zero fields
// mean the source could not tell.
type VideoInfo struct {
	Title       string
	Description string
	// Duration in seconds.
	Duration int
	Chapters []models.Candidate
}

// MetadataSource looks up a video by URL.
type MetadataSource interface {
	Fetch(ctx context.Context, url string) (VideoInfo, error)
}
