package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/chapter-flow/internal/chapter"
	"github.com/nguyentantai21042004/chapter-flow/internal/config"
	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
	"github.com/nguyentantai21042004/chapter-flow/internal/orchestrator"
	"github.com/nguyentantai21042004/chapter-flow/internal/processor"
	"github.com/nguyentantai21042004/chapter-flow/internal/source"
	"github.com/nguyentantai21042004/chapter-flow/internal/summarizer"
	"github.com/nguyentantai21042004/chapter-flow/internal/watcher"
	"github.com/nguyentantai21042004/chapter-flow/pkg/executor"
)

func main() {
	var args struct {
		Config string `arg:"-c,--config" help:"path to the config file" default:"config.yaml"`
		Once   string `arg:"--once" help:"process a single manifest and exit"`
	}
	arg.MustParse(&args)

	ctx := context.Background()

	// Optional .env with GEMINI_API_KEYS and friends
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(args.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Chapter Summary Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Summarizer: %s (%s)", cfg.Summarizer.Backend, cfg.Summarizer.Model)
	log.Info(ctx, "Workers per job: %d, jobs at once: %d", cfg.Performance.Workers, cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize dependencies
	sum, closeSum, err := newSummarizer(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}
	defer closeSum()

	ext := chapter.New(chapter.Options{
		MinDuration:  cfg.Chapters.MinDuration,
		FallbackSpan: cfg.Chapters.FallbackSpan,
	}, log)

	orch := orchestrator.New(sum, orchestrator.Options{
		Workers:           cfg.Performance.Workers,
		RequestsPerMinute: cfg.Performance.RequestsPerMinute,
		CallTimeout:       cfg.Performance.SummaryTimeout,
		MaxRetries:        cfg.Performance.Retries(),
		RetryWait:         cfg.Performance.RetryWait,
		BufferSeconds:     cfg.Chapters.BufferSeconds,
	}, log)

	sources := []source.MetadataSource{
		source.NewYtDlp(cfg.Sources.YtDlpBinary, executor.New(), log),
	}
	if cfg.Sources.PageFallback {
		sources = append(sources, source.NewPage(&http.Client{Timeout: 30 * time.Second}, log))
	}

	proc := processor.New(cfg, ext, orch, sources, log)

	if args.Once != "" {
		if err := proc.Process(ctx, args.Once); err != nil {
			log.Error(ctx, "Failed to process %s: %v", args.Once, err)
			os.Exit(1)
		}
		return
	}

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Watcher error: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Pipeline stopped")
}

// newSummarizer builds the configured backend, wrapped in the Redis cache
// when one is configured. The returned func releases the cache connection.
func newSummarizer(ctx context.Context, cfg *config.Config, log logger.Logger) (summarizer.Summarizer, func(), error) {
	var sum summarizer.Summarizer
	switch cfg.Summarizer.Backend {
	case config.BackendOllama:
		sum = summarizer.NewOllama(cfg.Summarizer.OllamaURL, cfg.Summarizer.Model, cfg.Summarizer.Language, log)
	default:
		sum = summarizer.New(cfg.Summarizer.APIKeys, cfg.Summarizer.Model, cfg.Summarizer.Language, log)
	}

	if cfg.Cache.RedisURL == "" {
		return sum, func() {}, nil
	}

	rdb, err := summarizer.OpenRedis(ctx, cfg.Cache.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info(ctx, "Summary cache enabled (ttl %s)", cfg.Cache.TTL)

	namespace := cfg.Summarizer.Backend + "/" + cfg.Summarizer.Model + "/" + cfg.Summarizer.Language
	return summarizer.NewCached(sum, rdb, cfg.Cache.TTL, namespace, log), func() { rdb.Close() }, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
