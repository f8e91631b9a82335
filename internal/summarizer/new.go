package summarizer

import (
	"net/http"
	"sync"

	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
)

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	language   string
}

// New creates a Gemini-backed Summarizer that rotates through the supplied
// API keys when one is rate limited.
func New(apiKeys []string, model, language string, log logger.Logger) Summarizer {
	return &implGemini{
		apiKeys:  apiKeys,
		logger:   log,
		model:    model,
		language: language,
	}
}

type implOllama struct {
	baseURL  string
	model    string
	language string
	client   *http.Client
	logger   logger.Logger
}

// NewOllama creates a Summarizer calling an Ollama server's /api/generate.
func NewOllama(baseURL, model, language string, log logger.Logger) Summarizer {
	return &implOllama{
		baseURL:  baseURL,
		model:    model,
		language: language,
		client:   &http.Client{},
		logger:   log,
	}
}
