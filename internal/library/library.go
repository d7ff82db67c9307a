// Package library provides named snippet and template sets found on disk or
// bundled with the binary.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/snipconv/internal/models"
)

// ErrSetNotFound is returned when no search path provides a set.
var ErrSetNotFound = errors.New("set not found")

// ManifestFile is the optional per directory file describing its sets.
const ManifestFile = "sets.yaml"

// Set is a named template set (XML) or snippet map (JSON).
type Set struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Format      models.Format `json:"format"`
	Content     string        `json:"-"`
	Source      string        `json:"source"` // file path or "builtin"
}

// Manifest lists descriptions and tags for the sets in a directory.
type Manifest struct {
	Sets []ManifestEntry `yaml:"sets"`
}

// ManifestEntry describes one set by name.
type ManifestEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,omitempty"`
}

// FormatForFile maps a set file extension to its dialect.
func FormatForFile(name string) (models.Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xml":
		return models.FormatXML, true
	case ".json", ".code-snippets":
		return models.FormatJSON, true
	default:
		return "", false
	}
}

// SetName returns the set name for a file: its base name without extension.
func SetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadSet reads a single set file from disk.
func LoadSet(path string) (*Set, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("set path is required")
	}

	format, ok := FormatForFile(path)
	if !ok {
		return nil, fmt.Errorf("unsupported set file %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read set %s: %w", path, err)
	}

	return &Set{
		Name:    SetName(path),
		Format:  format,
		Content: string(data),
		Source:  path,
	}, nil
}

// LoadSetsFromDir loads all set files from a directory, applying the
// directory manifest when present. A missing directory yields no sets.
func LoadSetsFromDir(dir string) ([]*Set, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Set{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Set{}, nil
		}
		return nil, fmt.Errorf("read sets dir %s: %w", dir, err)
	}

	sets := make([]*Set, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := FormatForFile(entry.Name()); !ok {
			continue
		}
		set, err := LoadSet(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	manifest, err := loadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	manifest.apply(sets)

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Name < sets[j].Name
	})

	return sets, nil
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	manifest, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return manifest, nil
}

func parseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for i := range manifest.Sets {
		name := strings.TrimSpace(manifest.Sets[i].Name)
		if name == "" {
			return nil, fmt.Errorf("manifest entry %d: name is required", i+1)
		}
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("duplicate manifest entry %q", name)
		}
		seen[name] = struct{}{}
		manifest.Sets[i].Name = name
		manifest.Sets[i].Description = strings.TrimSpace(manifest.Sets[i].Description)
	}

	return &manifest, nil
}

func (m *Manifest) apply(sets []*Set) {
	byName := make(map[string]ManifestEntry, len(m.Sets))
	for _, entry := range m.Sets {
		byName[entry.Name] = entry
	}
	for _, set := range sets {
		entry, ok := byName[set.Name]
		if !ok {
			continue
		}
		set.Description = entry.Description
		set.Tags = entry.Tags
	}
}
