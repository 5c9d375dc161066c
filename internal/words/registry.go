package words

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultPack is the pack used when none is configured.
const DefaultPack = "kinder"

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID     string
	Name   string
	Length int
	Size   int
}

var (
	packs = make(map[string]Pack)
	mu    sync.RWMutex
)

// Register adds a pack to the registry.
// Panics if a pack with the same ID is already registered.
func Register(p Pack) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[p.ID]; exists {
		panic(fmt.Sprintf("words: pack %q already registered", p.ID))
	}
	packs[p.ID] = p
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for _, p := range packs {
		result = append(result, p.Info())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the pack with the given ID.
func Get(id string) (Pack, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := packs[id]
	if !ok {
		return Pack{}, fmt.Errorf("words: unknown pack %q", id)
	}
	return p, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[id]
	return ok
}

// RegisterDir loads every pack under root and registers the ones whose IDs
// are not taken yet. It returns the IDs that were added.
// A missing directory is not an error.
func RegisterDir(root string) ([]string, error) {
	loaded, err := NewLoader(root).LoadAll()
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	var added []string
	for _, p := range loaded {
		if _, exists := packs[p.ID]; exists {
			continue
		}
		packs[p.ID] = p
		added = append(added, p.ID)
	}
	return added, nil
}
