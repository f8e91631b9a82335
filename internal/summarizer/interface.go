package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

// Summarizer turns the transcript of one chapter into a prose summary.
type Summarizer interface {
	Generate(ctx context.Context, req Request) Result
}

// Request carries one chapter and its aligned transcript text.
type Request struct {
	VideoTitle      string
	Chapter         models.Chapter
	TimestampedText string
	PlainText       string
}
