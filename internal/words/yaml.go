package words

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// YAMLPack represents the YAML structure for a word pack file.
type YAMLPack struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Length   int               `yaml:"length"`
	Words    []string          `yaml:"words"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML word pack.
// Words are lowercased and deduplicated; words of the wrong length or with
// letters outside a-z are skipped.
func ParseYAML(data []byte) (Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yp.ID == "" {
		return Pack{}, errors.New("pack has no id")
	}
	if yp.Length <= 0 {
		return Pack{}, fmt.Errorf("pack %q: length must be positive, got %d", yp.ID, yp.Length)
	}

	list := Normalize(yp.Words, yp.Length)
	if len(list) == 0 {
		return Pack{}, fmt.Errorf("pack %q: no playable %d-letter words", yp.ID, yp.Length)
	}

	name := yp.Name
	if name == "" {
		name = yp.ID
	}

	return Pack{
		ID:       yp.ID,
		Name:     name,
		Length:   yp.Length,
		Words:    list,
		Metadata: yp.Metadata,
	}, nil
}

// Normalize lowercases, filters and sorts a raw word list for a pack of
// the given word length.
func Normalize(raw []string, length int) []string {
	list := lo.Map(raw, func(w string, _ int) string {
		return strings.ToLower(strings.TrimSpace(w))
	})
	list = lo.Filter(list, func(w string, _ int) bool {
		return len(w) == length && isPlayable(w)
	})
	list = lo.Uniq(list)
	slices.Sort(list)
	return list
}

func isPlayable(word string) bool {
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return word != ""
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
