package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate summarizes one chapter with a local Ollama model.
func (o *implOllama) Generate(ctx context.Context, req Request) Result {
	payload, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: buildPrompt(req, o.language),
		Stream: false,
		Options: map[string]any{
			"temperature": 0.2,
			"num_ctx":     8192,
		},
	})
	if err != nil {
		return Permanent(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(o.baseURL, "/")+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return Permanent(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return Failure(fmt.Errorf("ollama request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		o.logger.Debug(ctx, "Ollama returned %d for model %s", resp.StatusCode, o.model)
		return Failure(&StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))})
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Permanent(fmt.Errorf("decode ollama response: %w", err))
	}
	if out.Error != "" {
		return Permanent(fmt.Errorf("ollama: %s", out.Error))
	}

	text := cleanResponse(out.Response)
	if text == "" {
		return Transient(errEmptyResponse)
	}
	return Success(text)
}
