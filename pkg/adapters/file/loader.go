// Package file loads a whole story from a single YAML or JSON document.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/tapestry/internal/dto"
	"github.com/aretw0/tapestry/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format names a story document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from the extension. Anything that is
// not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// IsStoryFile reports whether path has a story document extension.
func IsStoryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Loader implements ports.StoryLoader over a file on disk.
type Loader struct {
	path string
}

// New creates a loader for path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the file on every call.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story: %w", err)
	}
	s, err := Parse(data, FormatFromPath(l.path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(l.path), err)
	}
	return s, nil
}

// Parse decodes a story document.
func Parse(data []byte, format Format) (*domain.Story, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse story json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse story yaml: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("story document is empty")
	}

	var f dto.StoryFile
	if err := dto.Decode(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode story: %w", err)
	}
	return f.ToDomain()
}

// Encode writes s in the given format.
func Encode(w io.Writer, s *domain.Story, format Format) error {
	f := dto.FromDomain(s)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}
