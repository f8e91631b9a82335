package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/chapter-flow/internal/logger"
	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

type fakeExecutor struct {
	out  string
	err  error
	name string
	args []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestYtDlpFetch(t *testing.T) {
	exec := &fakeExecutor{out: `{
		"title": " Market Outlook ",
		"description": "0:00 Intro\n1:30 Rates",
		"duration": 3599.6,
		"chapters": [
			{"title": "Intro", "start_time": 0.0, "end_time": 90.0},
			{"title": "Rates", "start_time": 90.0, "end_time": 3600.0}
		]
	}`}

	info, err := NewYtDlp("", exec, logger.Nop()).Fetch(context.Background(), "https://example.com/watch?v=1")
	require.NoError(t, err)

	assert.Equal(t, "yt-dlp", exec.name)
	assert.Contains(t, exec.args, "--dump-single-json")
	assert.Equal(t, "https://example.com/watch?v=1", exec.args[len(exec.args)-1])

	assert.Equal(t, "Market Outlook", info.Title)
	assert.Equal(t, 3600, info.Duration)
	assert.Equal(t, []models.Candidate{{Title: "Intro", StartTime: 0}, {Title: "Rates", StartTime: 90}}, info.Chapters)
}

func TestYtDlpFetchErrors(t *testing.T) {
	_, err := NewYtDlp("yt-dlp", &fakeExecutor{err: errors.New("exit 1")}, logger.Nop()).Fetch(context.Background(), "u")
	assert.Error(t, err)

	_, err = NewYtDlp("yt-dlp", &fakeExecutor{out: "not json"}, logger.Nop()).Fetch(context.Background(), "u")
	assert.Error(t, err)
}

func TestPageFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
			<title>fallback - YouTube</title>
			<meta property="og:title" content="Market Outlook">
			<meta name="description" content="0:00 Intro&#10;1:30 Rates">
		</head><body></body></html>`))
	}))
	defer srv.Close()

	info, err := NewPage(srv.Client(), logger.Nop()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Market Outlook", info.Title)
	assert.Equal(t, "0:00 Intro\n1:30 Rates", info.Description)
	assert.Zero(t, info.Duration)
	assert.Empty(t, info.Chapters)
}

func TestPageFetchTitleFallback(t *testing.T) {
	info, err := parsePage(strings.NewReader(`<html><head><title> Plain Title </title></head></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Plain Title", info.Title)
	assert.Empty(t, info.Description)
}

func TestPageFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewPage(nil, logger.Nop()).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestCleanDescription(t *testing.T) {
	raw := "Transcript\n" +
		"Follow along using the transcript.\n" +
		"12.5K subscribers\n" +
		"0:00 Intro\n\n\n\n" +
		"1:30 About the transcript format\n" +
		"Show less\n"

	assert.Equal(t, "0:00 Intro\n\n1:30 About the transcript format", CleanDescription(raw))
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "desc.txt"), []byte("0:00 Intro"), 0644))
	manifest := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
title: Market Outlook
description: ignored
description_file: desc.txt
transcript: subs/talk.srt
duration: 3900
chapters:
  - title: Intro
    start_time: 0
`), 0644))

	m, err := LoadManifest(manifest)
	require.NoError(t, err)
	assert.Equal(t, "0:00 Intro", m.Description)
	assert.Equal(t, filepath.Join(dir, "subs", "talk.srt"), m.Transcript)
	assert.Equal(t, 3900, m.Duration)
	assert.Equal(t, []models.Candidate{{Title: "Intro", StartTime: 0}}, m.Chapters)
}

func TestLoadManifestInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing transcript", "title: x\n"},
		{"missing title and url", "transcript: a.srt\n"},
		{"negative duration", "title: x\ntranscript: a.srt\nduration: -1\n"},
		{"bad yaml", "title: [\n"},
		{"missing description file", "title: x\ntranscript: a.srt\ndescription_file: nope.txt\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "job.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			_, err := LoadManifest(path)
			assert.Error(t, err)
		})
	}
}
