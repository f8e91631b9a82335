package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

// Manifest describes one summarization job. Relative file paths are
// resolved against the manifest's directory.
type Manifest struct {
	Title           string             `yaml:"title"`
	URL             string             `yaml:"url"`
	Description     string             `yaml:"description"`
	DescriptionFile string             `yaml:"description_file"`
	Transcript      string             `yaml:"transcript"`
	Duration        int                `yaml:"duration"`
	Chapters        []models.Candidate `yaml:"chapters"`
}

// LoadManifest reads and validates the job manifest at path. A description
// file, when given, replaces the inline description.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	dir := filepath.Dir(path)
	m.Transcript = resolve(dir, m.Transcript)
	m.DescriptionFile = resolve(dir, m.DescriptionFile)

	if m.DescriptionFile != "" {
		desc, err := os.ReadFile(m.DescriptionFile)
		if err != nil {
			return nil, fmt.Errorf("read description file: %w", err)
		}
		m.Description = string(desc)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	return &m, nil
}

func (m *Manifest) Validate() error {
	if m.Transcript == "" {
		return fmt.Errorf("transcript is required")
	}
	if m.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if strings.TrimSpace(m.Title) == "" && m.URL == "" {
		return fmt.Errorf("title or url is required")
	}
	return nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
