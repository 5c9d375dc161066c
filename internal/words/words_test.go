package words

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedPacksRegistered(t *testing.T) {
	for _, id := range []string{"kinder", "classic"} {
		if !Exists(id) {
			t.Fatalf("Exists(%q) = false, want true", id)
		}
	}

	kinder, err := Get(DefaultPack)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", DefaultPack, err)
	}
	if kinder.WordLength() != 4 {
		t.Errorf("kinder length = %d, want 4", kinder.WordLength())
	}
	for _, w := range []string{"here", "help", "ride", "when"} {
		if !kinder.Contains(w) {
			t.Errorf("kinder.Contains(%q) = false, want true", w)
		}
	}
	if kinder.Contains("zzzz") {
		t.Error("kinder.Contains(\"zzzz\") = true, want false")
	}

	classic, err := Get("classic")
	if err != nil {
		t.Fatalf("Get(classic) failed: %v", err)
	}
	if classic.WordLength() != 5 {
		t.Errorf("classic length = %d, want 5", classic.WordLength())
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	if len(list) < 2 {
		t.Fatalf("List() returned %d packs, want at least 2", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
	for _, info := range list {
		if info.Size == 0 {
			t.Errorf("pack %q has no words", info.ID)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("Get(nope) should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID should panic")
		}
	}()
	Register(Pack{ID: DefaultPack})
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: test
length: 4
words: [Here, help, "  ride ", help, toolong, "ab1c", when]
`)
	p, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}

	want := []string{"help", "here", "ride", "when"}
	if len(p.Words) != len(want) {
		t.Fatalf("Words = %v, want %v", p.Words, want)
	}
	for i := range want {
		if p.Words[i] != want[i] {
			t.Errorf("Words[%d] = %q, want %q", i, p.Words[i], want[i])
		}
	}
	if p.Name != "test" {
		t.Errorf("Name = %q, want fallback to ID", p.Name)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no id", "length: 4\nwords: [here]"},
		{"no length", "id: x\nwords: [here]"},
		{"no playable words", "id: x\nlength: 4\nwords: [abc, abcde]"},
		{"bad yaml", "id: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data)); err == nil {
				t.Error("ParseYAML() should fail")
			}
		})
	}
}

func TestRandomIsMember(t *testing.T) {
	p, _ := Get(DefaultPack)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		w := p.Random(rng)
		if !p.Contains(w) {
			t.Fatalf("Random() = %q, not in pack", w)
		}
	}

	if got := (Pack{}).Random(rng); got != "" {
		t.Errorf("empty pack Random() = %q, want empty", got)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.yaml", "id: zoo\nlength: 4\nwords: [lion, bear]")
	write("a.yml", "id: farm\nlength: 3\nwords: [cow, pig]")
	write("broken.yaml", "id: [")
	write("notes.txt", "ignored")

	loaded, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("LoadAll() returned %d packs, want 2", len(loaded))
	}
	if loaded[0].ID != "farm" || loaded[1].ID != "zoo" {
		t.Errorf("LoadAll() order = %q, %q", loaded[0].ID, loaded[1].ID)
	}
	if loaded[1].FilePath == "" {
		t.Error("FilePath not set")
	}
}

func TestLoaderMissingDir(t *testing.T) {
	loaded, err := NewLoader(filepath.Join(t.TempDir(), "missing")).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() on missing dir failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("LoadAll() = %d packs, want 0", len(loaded))
	}
}

func TestRegisterDirSkipsTakenIDs(t *testing.T) {
	dir := t.TempDir()
	content := "id: kinder\nlength: 4\nwords: [fake]\n"
	if err := os.WriteFile(filepath.Join(dir, "k.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "space.yaml"), []byte("id: space-test\nlength: 4\nwords: [moon, star]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	added, err := RegisterDir(dir)
	if err != nil {
		t.Fatalf("RegisterDir() failed: %v", err)
	}
	if len(added) != 1 || added[0] != "space-test" {
		t.Errorf("RegisterDir() added %v, want [space-test]", added)
	}

	kinder, _ := Get("kinder")
	if kinder.Contains("fake") {
		t.Error("embedded kinder pack was replaced")
	}
}
