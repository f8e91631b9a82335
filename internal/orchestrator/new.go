package orchestrator

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
	"github.com/nguyentantai21042004/chapter-flow/internal/summarizer"
)

type implOrchestrator struct {
	summarizer summarizer.Summarizer
	limiter    *rate.Limiter
	opts       Options
	logger     logger.Logger
}

// New creates an Orchestrator calling sum for every chapter with text
func New(sum summarizer.Summarizer, opts Options, log logger.Logger) Orchestrator {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second
	}
	if opts.MaxRetryWait <= 0 {
		opts.MaxRetryWait = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	return &implOrchestrator{
		summarizer: sum,
		limiter:    limiter,
		opts:       opts,
		logger:     log,
	}
}
