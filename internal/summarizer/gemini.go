package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generate summarizes one chapter with Gemini.
func (s *implGemini) Generate(ctx context.Context, req Request) Result {
	text, err := s.callGemini(ctx, buildPrompt(req, s.language))
	if err != nil {
		return Failure(err)
	}
	text = cleanResponse(text)
	if text == "" {
		return Transient(errEmptyResponse)
	}
	return Success(text)
}

// callGemini sends the prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (s *implGemini) callGemini(ctx context.Context, prompt string) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := s.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				s.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var sb strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part != nil && part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
			return sb.String(), nil
		}

		return "", errEmptyResponse
	}

	return "", fmt.Errorf("all API keys exhausted: %w: %w", errRateLimited, lastErr)
}

func (s *implGemini) key() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.apiKeys[s.currentKey]
}

// rotateKey moves past the key at idx unless another worker already did.
func (s *implGemini) rotateKey(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == idx {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}
