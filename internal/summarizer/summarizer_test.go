package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

func testRequest() Request {
	return Request{
		VideoTitle:      "Market Outlook",
		Chapter:         models.Chapter{Title: "Part 1: Rates", StartTime: 90, EndTime: 300},
		TimestampedText: "[01:30] rates are rising",
		PlainText:       "rates are rising",
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"canceled", context.Canceled, false},
		{"rate limited", errRateLimited, true},
		{"empty response", errEmptyResponse, true},
		{"http 503", &StatusError{Code: 503}, true},
		{"http 429", &StatusError{Code: 429}, true},
		{"http 400", &StatusError{Code: 400}, false},
		{"http 404", &StatusError{Code: 404}, false},
		{"dial error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"dns timeout", &net.DNSError{IsTimeout: true}, true},
		{"gemini overload message", errors.New("Error 503, Message: UNAVAILABLE"), true},
		{"gemini quota message", errors.New("RESOURCE_EXHAUSTED"), true},
		{"invalid argument", errors.New("Error 400, Message: INVALID_ARGUMENT"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestResultConstructors(t *testing.T) {
	assert.True(t, Success("x").OK())
	assert.Equal(t, StatusTransient, Failure(&StatusError{Code: 502}).Status)
	assert.Equal(t, StatusPermanent, Failure(errors.New("bad request")).Status)
	assert.Equal(t, "permanent", StatusPermanent.String())
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(testRequest(), "English")

	for _, want := range []string{"in English", "Market Outlook", "Part 1: Rates (01:30 - 05:00)", "[01:30] rates are rising", "\nrates are rising\n"} {
		assert.Contains(t, prompt, want)
	}
}

func TestCleanResponse(t *testing.T) {
	assert.Equal(t, "Summary body", cleanResponse("<think>\nreasoning\n</think>\n\n```markdown\nSummary body\n```"))
	assert.Equal(t, "", cleanResponse("  <think>only thoughts</think> "))
}

func TestRotateKey(t *testing.T) {
	s := New([]string{"a", "b", "c"}, "gemini-2.5-flash", "English", logger.Nop()).(*implGemini)

	idx, key := s.key()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "a", key)

	s.rotateKey(0)
	s.rotateKey(0) // stale index from a concurrent worker is ignored
	idx, key = s.key()
	assert.Equal(t, 1, idx)
	assert.Equal(t, "b", key)

	s.rotateKey(1)
	s.rotateKey(2)
	idx, _ = s.key()
	assert.Equal(t, 0, idx)
}

func TestGeminiWithoutKeys(t *testing.T) {
	res := New(nil, "gemini-2.5-flash", "English", logger.Nop()).Generate(context.Background(), testRequest())
	assert.Equal(t, StatusPermanent, res.Status)
	assert.Error(t, res.Err)
}

func TestOllamaGenerate(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus Status
		wantText   string
	}{
		{"success", http.StatusOK, `{"response":"<think>x</think>The chapter covers rates."}`, StatusSuccess, "The chapter covers rates."},
		{"overloaded", http.StatusServiceUnavailable, `busy`, StatusTransient, ""},
		{"model missing", http.StatusNotFound, `{"error":"model not found"}`, StatusPermanent, ""},
		{"empty answer", http.StatusOK, `{"response":"   "}`, StatusTransient, ""},
		{"malformed body", http.StatusOK, `not json`, StatusPermanent, ""},
		{"error field", http.StatusOK, `{"error":"context too long"}`, StatusPermanent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ollamaRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/generate", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			res := NewOllama(srv.URL+"/", "llama3", "English", logger.Nop()).Generate(context.Background(), testRequest())
			assert.Equal(t, tt.wantStatus, res.Status, "err: %v", res.Err)
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, "llama3", got.Model)
			assert.False(t, got.Stream)
			assert.True(t, strings.Contains(got.Prompt, "Part 1: Rates"))
		})
	}
}

func TestOllamaTimeoutIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := NewOllama(srv.URL, "llama3", "English", logger.Nop()).Generate(ctx, testRequest())
	assert.Equal(t, StatusTransient, res.Status, "err: %v", res.Err)
}

func TestCacheKey(t *testing.T) {
	req := testRequest()
	assert.Equal(t, CacheKey("gemini/flash", req), CacheKey("gemini/flash", req))
	assert.NotEqual(t, CacheKey("gemini/flash", req), CacheKey("ollama/llama3", req))

	other := req
	other.PlainText = "rates are falling"
	assert.NotEqual(t, CacheKey("gemini/flash", req), CacheKey("gemini/flash", other))
	assert.True(t, strings.HasPrefix(CacheKey("x", req), "chapterflow:summary:"))
}

type countingSummarizer struct {
	calls  atomic.Int32
	result Result
}

func (c *countingSummarizer) Generate(ctx context.Context, req Request) Result {
	c.calls.Add(1)
	return c.result
}

func TestCachedSummarizer(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	inner := &countingSummarizer{result: Success("cached summary")}
	s := NewCached(inner, rdb, time.Hour, "test", logger.Nop())

	first := s.Generate(ctx, testRequest())
	second := s.Generate(ctx, testRequest())

	assert.Equal(t, "cached summary", first.Text)
	assert.Equal(t, "cached summary", second.Text)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.True(t, mr.Exists(CacheKey("test", testRequest())))
}

func TestCachedSummarizerSkipsFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	inner := &countingSummarizer{result: Transient(errEmptyResponse)}
	s := NewCached(inner, rdb, time.Hour, "test", logger.Nop())

	res := s.Generate(context.Background(), testRequest())
	assert.Equal(t, StatusTransient, res.Status)
	s.Generate(context.Background(), testRequest())
	assert.Equal(t, int32(2), inner.calls.Load())
	assert.False(t, mr.Exists(CacheKey("test", testRequest())))
}

func TestCachedSummarizerRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	inner := &countingSummarizer{result: Success("fresh")}
	res := NewCached(inner, rdb, time.Hour, "test", logger.Nop()).Generate(context.Background(), testRequest())
	assert.True(t, res.OK())
	assert.Equal(t, "fresh", res.Text)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := OpenRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	rdb.Close()

	_, err = OpenRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
