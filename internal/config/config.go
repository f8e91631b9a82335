package config

import (
	"fmt"
	"time"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Chapters    ChaptersConfig    `yaml:"chapters"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Cache       CacheConfig       `yaml:"cache"`
	Sources     SourcesConfig     `yaml:"sources"`
	Output      OutputConfig      `yaml:"output"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	// MaxConcurrent bounds how many job manifests run at once.
	MaxConcurrent int `yaml:"max_concurrent"`
	// Workers bounds in-flight summarizer calls within one job.
	Workers           int           `yaml:"workers"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	SummaryTimeout    time.Duration `yaml:"summary_timeout"`
	// MaxRetries is left nil when unset so an explicit 0 disables retries.
	MaxRetries        *int          `yaml:"max_retries"`
	RetryWait         time.Duration `yaml:"retry_wait"`
}

type ChaptersConfig struct {
	MinDuration   int `yaml:"min_duration"`
	FallbackSpan  int `yaml:"fallback_span"`
	BufferSeconds int `yaml:"buffer_seconds"`
}

type SummarizerConfig struct {
	Backend   string   `yaml:"backend"`
	Model     string   `yaml:"model"`
	APIKeys   []string `yaml:"api_keys"`
	OllamaURL string   `yaml:"ollama_url"`
	Language  string   `yaml:"language"`
}

type CacheConfig struct {
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

type SourcesConfig struct {
	YtDlpBinary  string `yaml:"ytdlp_binary"`
	PageFallback bool   `yaml:"page_fallback"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

const (
	BackendGemini = "gemini"
	BackendOllama = "ollama"
)

const DefaultMaxRetries = 2

// Retries returns the configured retry count, or the default when unset.
func (p PerformanceConfig) Retries() int {
	if p.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *p.MaxRetries
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = BackendGemini
	}
	switch c.Summarizer.Backend {
	case BackendGemini:
		if len(c.Summarizer.APIKeys) == 0 {
			return fmt.Errorf("summarizer.api_keys is required for the gemini backend")
		}
		if c.Summarizer.Model == "" {
			c.Summarizer.Model = "gemini-2.5-flash"
		}
	case BackendOllama:
		if c.Summarizer.OllamaURL == "" {
			c.Summarizer.OllamaURL = "http://localhost:11434"
		}
		if c.Summarizer.Model == "" {
			return fmt.Errorf("summarizer.model is required for the ollama backend")
		}
	default:
		return fmt.Errorf("summarizer.backend %q is not supported", c.Summarizer.Backend)
	}
	if c.Summarizer.Language == "" {
		c.Summarizer.Language = "English"
	}

	if c.Chapters.MinDuration < 0 || c.Chapters.FallbackSpan < 0 || c.Chapters.BufferSeconds < 0 {
		return fmt.Errorf("chapters durations must not be negative")
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.Workers == 0 {
		c.Performance.Workers = 1
	}
	if c.Performance.SummaryTimeout == 0 {
		c.Performance.SummaryTimeout = 2 * time.Minute
	}
	if c.Performance.MaxRetries == nil {
		retries := DefaultMaxRetries
		c.Performance.MaxRetries = &retries
	} else if *c.Performance.MaxRetries < 0 {
		return fmt.Errorf("performance.max_retries must not be negative")
	}
	if c.Performance.RetryWait == 0 {
		c.Performance.RetryWait = 2 * time.Second
	}
	if c.Chapters.MinDuration == 0 {
		c.Chapters.MinDuration = 60
	}
	if c.Chapters.FallbackSpan == 0 {
		c.Chapters.FallbackSpan = 3600
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 7 * 24 * time.Hour
	}
	if c.Sources.YtDlpBinary == "" {
		c.Sources.YtDlpBinary = "yt-dlp"
	}

	return nil
}
