package library

import (
	"fmt"
	"os"
	"path/filepath"
)

// SearchPaths returns set directories in precedence order. An empty
// projectDir means the current working directory.
func SearchPaths(projectDir string) []string {
	if projectDir == "" {
		if wd, err := os.Getwd(); err == nil {
			projectDir = wd
		}
	}

	paths := make([]string, 0, 3)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".snipconv", "sets"))
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "snipconv", "sets"))
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "snipconv", "sets"))
	return paths
}

// LoadSetsFromSearchPaths loads sets from search paths with first-hit
// precedence, followed by the builtin sets.
func LoadSetsFromSearchPaths(projectDir string) ([]*Set, error) {
	return loadSets(SearchPaths(projectDir))
}

func loadSets(paths []string) ([]*Set, error) {
	seen := make(map[string]*Set)
	order := make([]string, 0)

	for _, path := range paths {
		sets, err := LoadSetsFromDir(path)
		if err != nil {
			return nil, err
		}
		for _, set := range sets {
			if _, exists := seen[set.Name]; exists {
				continue
			}
			seen[set.Name] = set
			order = append(order, set.Name)
		}
	}

	builtins, err := LoadBuiltinSets()
	if err != nil {
		return nil, err
	}
	for _, set := range builtins {
		if _, exists := seen[set.Name]; exists {
			continue
		}
		seen[set.Name] = set
		order = append(order, set.Name)
	}

	resolved := make([]*Set, 0, len(order))
	for _, name := range order {
		resolved = append(resolved, seen[name])
	}

	return resolved, nil
}

// FindSet resolves a set by name across the search paths.
func FindSet(projectDir, name string) (*Set, error) {
	return findSet(SearchPaths(projectDir), name)
}

func findSet(paths []string, name string) (*Set, error) {
	sets, err := loadSets(paths)
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		if set.Name == name {
			return set, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSetNotFound, name)
}
