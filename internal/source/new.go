package source

import (
	"net/http"

	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
	"github.com/nguyentantai21042004/chapter-flow/pkg/executor"
)

type implYtDlp struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// NewYtDlp creates a MetadataSource backed by the yt-dlp binary.
func NewYtDlp(binary string, exec executor.Executor, log logger.Logger) MetadataSource {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &implYtDlp{
		binary:   binary,
		executor: exec,
		logger:   log,
	}
}

type implPage struct {
	client *http.Client
	logger logger.Logger
}

// NewPage creates a MetadataSource reading the Open Graph tags of the video
// page. It never supplies chapters or a duration.
func NewPage(client *http.Client, log logger.Logger) MetadataSource {
	if client == nil {
		client = &http.Client{}
	}
	return &implPage{
		client: client,
		logger: log,
	}
}
