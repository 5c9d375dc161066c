package words

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed packs/*.yaml
var embeddedPacks embed.FS

func init() {
	entries, err := fs.Glob(embeddedPacks, "packs/*.yaml")
	if err != nil {
		panic(fmt.Sprintf("words: listing embedded packs: %v", err))
	}

	for _, name := range entries {
		data, err := embeddedPacks.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("words: reading embedded pack %s: %v", name, err))
		}
		p, err := ParseYAML(data)
		if err != nil {
			panic(fmt.Sprintf("words: embedded pack %s: %v", name, err))
		}
		Register(p)
	}
}
