package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

// ParseJSON decodes the [{"text","start","duration"}] list produced by
// common YouTube transcript exporters.
func ParseJSON(data []byte) ([]models.TranscriptSegment, error) {
	var segments []models.TranscriptSegment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("decode transcript json: %w", err)
	}
	models.SortSegments(segments)
	return segments, nil
}

// LoadFile reads a transcript file, choosing the parser by extension.
func LoadFile(path string) ([]models.TranscriptSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".srt":
		return ParseSRT(string(data))
	case ".vtt":
		return ParseVTT(string(data))
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported transcript format %q", ext)
	}
}
