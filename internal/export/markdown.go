// Package export renders journal entries into Markdown documents: plain
// per-entry exports, the weekly brief and the life story.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chronicle-cli/chronicle/internal/models"
)

type frontMatter struct {
	ID         string   `yaml:"id"`
	Date       string   `yaml:"date"`
	Type       string   `yaml:"type"`
	Tags       []string `yaml:"tags,flow,omitempty"`
	People     []string `yaml:"people,flow,omitempty"`
	ReviewDate string   `yaml:"review_date,omitempty"`
	Ref        string   `yaml:"ref,omitempty"`
}

// EntryToMarkdown converts an entry to Markdown with YAML front matter.
func EntryToMarkdown(e *models.Entry) (string, error) {
	fm := frontMatter{
		ID:     e.ID,
		Date:   e.Timestamp.Format(time.RFC3339Nano),
		Type:   e.Type,
		Tags:   e.Tags,
		People: e.People,
		Ref:    e.Ref,
	}
	if e.ReviewDate != nil {
		fm.ReviewDate = e.ReviewDate.Format("2006-01-02")
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(data)
	sb.WriteString("---\n\n")
	if e.Body != "" {
		sb.WriteString(e.Body)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// ExportAll renders entries as a single concatenated Markdown document.
func ExportAll(entries []*models.Entry) (string, error) {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		md, err := EntryToMarkdown(e)
		if err != nil {
			return "", err
		}
		parts = append(parts, md)
	}
	return strings.Join(parts, "\n"), nil
}

// ExportSplit writes one Markdown file per entry into outputDir and returns
// the written paths.
func ExportSplit(entries []*models.Entry, outputDir string) ([]string, error) {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		md, err := EntryToMarkdown(e)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outputDir, e.ID+".md")
		if err := os.WriteFile(path, []byte(md), 0o600); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
