package source

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

type ytDlpInfo struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Chapters    []struct {
		Title     string  `json:"title"`
		StartTime float64 `json:"start_time"`
	} `json:"chapters"`
}

func (s *implYtDlp) Fetch(ctx context.Context, url string) (VideoInfo, error) {
	s.logger.Info(ctx, "Fetching metadata with %s: %s", s.binary, url)

	out, err := s.executor.Execute(ctx, s.binary,
		"--dump-single-json",
		"--skip-download",
		"--no-warnings",
		url,
	)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("yt-dlp fetch: %w", err)
	}

	info, err := decodeYtDlp([]byte(out))
	if err != nil {
		return VideoInfo{}, err
	}

	s.logger.Debug(ctx, "yt-dlp returned %d chapters, duration %ds", len(info.Chapters), info.Duration)
	return info, nil
}

func decodeYtDlp(data []byte) (VideoInfo, error) {
	var raw ytDlpInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return VideoInfo{}, fmt.Errorf("decode yt-dlp json: %w", err)
	}

	info := VideoInfo{
		Title:       strings.TrimSpace(raw.Title),
		Description: raw.Description,
		Duration:    int(math.Round(raw.Duration)),
	}
	for _, c := range raw.Chapters {
		info.Chapters = append(info.Chapters, models.Candidate{
			Title:     strings.TrimSpace(c.Title),
			StartTime: int(c.StartTime),
		})
	}
	return info, nil
}
