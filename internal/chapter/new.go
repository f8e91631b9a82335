package chapter

import (
	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
)

type implExtractor struct {
	opts   Options
	logger logger.Logger
}

// New creates an Extractor using opts for every list it builds
func New(opts Options, log logger.Logger) Extractor {
	return &implExtractor{
		opts:   opts.withDefaults(),
		logger: log,
	}
}
