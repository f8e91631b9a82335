package processor

import "context"

// Processor runs one summarization job described by a manifest file
type Processor interface {
	Process(ctx context.Context, manifestPath string) error
}
