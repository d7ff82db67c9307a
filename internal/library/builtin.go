package library

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed builtin
var builtinFS embed.FS

// LoadBuiltinSets returns the sets bundled with snipconv.
func LoadBuiltinSets() ([]*Set, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin sets: %w", err)
	}

	sets := make([]*Set, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := FormatForFile(entry.Name())
		if !ok {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin set %s: %w", entry.Name(), err)
		}
		sets = append(sets, &Set{
			Name:    SetName(entry.Name()),
			Format:  format,
			Content: string(data),
			Source:  "builtin",
		})
	}

	data, err := builtinFS.ReadFile("builtin/" + ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("read builtin manifest: %w", err)
	}
	manifest, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parse builtin manifest: %w", err)
	}
	manifest.apply(sets)

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Name < sets[j].Name
	})

	return sets, nil
}
