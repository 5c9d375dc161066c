// Package words provides the word packs games draw their secrets from and
// validate attempts against.
package words

import (
	"math/rand"
	"slices"
)

// Pack is a named list of playable words of one fixed length.
// Words are lowercase a-z and sorted, so membership is a binary search.
type Pack struct {
	ID       string
	Name     string
	Length   int
	Words    []string
	Metadata map[string]string
	FilePath string // empty for embedded packs
}

// Contains reports whether word is playable in this pack.
func (p Pack) Contains(word string) bool {
	_, found := slices.BinarySearch(p.Words, word)
	return found
}

// Random picks a word uniformly at random.
// Returns "" for an empty pack.
func (p Pack) Random(rng *rand.Rand) string {
	if len(p.Words) == 0 {
		return ""
	}
	return p.Words[rng.Intn(len(p.Words))]
}

// WordLength returns the number of letters in every word of the pack.
func (p Pack) WordLength() int {
	return p.Length
}

// Size returns the number of words in the pack.
func (p Pack) Size() int {
	return len(p.Words)
}

// Info returns the pack's registry metadata.
func (p Pack) Info() PackInfo {
	return PackInfo{ID: p.ID, Name: p.Name, Length: p.Length, Size: p.Size()}
}
