package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/formatter"
)

// writeOutput stores the document under the output folder, named after the
// manifest, and returns the Markdown path.
func (p *implProcessor) writeOutput(ctx context.Context, manifestPath, markdown string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(manifestPath), filepath.Ext(manifestPath))
	mdPath := filepath.Join(p.cfg.Paths.Output, base+".md")

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}
	p.logger.Info(ctx, "Summary written: %s", mdPath)

	if p.cfg.Output.Docx {
		docxPath := filepath.Join(p.cfg.Paths.Output, base+".docx")
		if err := formatter.WriteDocx(markdown, docxPath); err != nil {
			p.logger.Warn(ctx, "Failed to write docx %s: %v", docxPath, err)
		} else {
			p.logger.Info(ctx, "Summary written: %s", docxPath)
		}
	}

	return mdPath, nil
}

// moveToArchived moves a finished manifest out of the input folder
func (p *implProcessor) moveToArchived(ctx context.Context, manifestPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(manifestPath))
	p.logger.Info(ctx, "Moving manifest to archived: %s -> %s", manifestPath, destPath)

	if err := os.Rename(manifestPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
