package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	titleSelectors = []string{
		`meta[property="og:title"]`,
		`meta[name="title"]`,
	}
	descriptionSelectors = []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
		`meta[itemprop="description"]`,
	}
)

func (p *implPage) Fetch(ctx context.Context, url string) (VideoInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; chapter-flow)")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.client.Do(req)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VideoInfo{}, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	info, err := parsePage(resp.Body)
	if err != nil {
		return VideoInfo{}, err
	}
	p.logger.Debug(ctx, "Page meta for %s: title %q, %d description bytes", url, info.Title, len(info.Description))
	return info, nil
}

func parsePage(r io.Reader) (VideoInfo, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("parse page: %w", err)
	}

	info := VideoInfo{
		Title:       firstContent(doc, titleSelectors),
		Description: firstContent(doc, descriptionSelectors),
	}
	if info.Title == "" {
		info.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return info, nil
}

func firstContent(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v
		}
	}
	return ""
}
