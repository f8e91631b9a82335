package processor

import (
	"github.com/nguyentantai21042004/chapter-flow/internal/chapter"
	"github.com/nguyentantai21042004/chapter-flow/internal/config"
	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
	"github.com/nguyentantai21042004/chapter-flow/internal/orchestrator"
	"github.com/nguyentantai21042004/chapter-flow/internal/source"
)

type implProcessor struct {
	cfg          *config.Config
	extractor    chapter.Extractor
	orchestrator orchestrator.Orchestrator
	sources      []source.MetadataSource
	logger       logger.Logger
}

// New creates a new Processor. Sources are consulted in order for a job
// that gives a URL but lacks a description, duration or chapters.
func New(cfg *config.Config, ext chapter.Extractor, orch orchestrator.Orchestrator, sources []source.MetadataSource, log logger.Logger) Processor {
	return &implProcessor{
		cfg:          cfg,
		extractor:    ext,
		orchestrator: orch,
		sources:      sources,
		logger:       log,
	}
}
