package words

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Loader handles loading packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: expandHome(root)}
}

// LoadAll recursively scans and loads all pack files.
// Invalid files are skipped. Returns packs sorted by ID.
func (l *Loader) LoadAll() ([]Pack, error) {
	var loaded []Pack

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(FormatExtensions(), ext) {
			return nil
		}

		p, err := l.LoadFile(path)
		if err != nil {
			return nil
		}

		loaded = append(loaded, p)
		return nil
	})

	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("words: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].ID < loaded[j].ID
	})

	return loaded, nil
}

// LoadFile loads a single pack file.
func (l *Loader) LoadFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("words: reading file %s: %w", path, err)
	}

	p, err := ParseYAML(data)
	if err != nil {
		return Pack{}, fmt.Errorf("words: parsing file %s: %w", path, err)
	}
	p.FilePath = path

	return p, nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
