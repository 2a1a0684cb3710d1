package words

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	return path
}

func TestFileSourcePicksFromList(t *testing.T) {
	path := writeList(t, "river\nVALLEY\n\n  tower  \nriver\n")
	src := NewFileSource(path, 1, nil)

	allowed := map[string]bool{"RIVER": true, "VALLEY": true, "TOWER": true}
	for i := 0; i < 20; i++ {
		w, err := src.Random(context.Background())
		if err != nil {
			t.Fatalf("Random failed: %v", err)
		}
		if !allowed[w] {
			t.Fatalf("picked %q, not in the upper-cased deduplicated list", w)
		}
	}
}

func TestFileSourceMissingFileFallsBack(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.txt"), 1, nil)
	w, err := src.Random(context.Background())
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if w != FallbackWord {
		t.Fatalf("got %q, want the fallback word", w)
	}
}

func TestFileSourceEmptyFileFallsBack(t *testing.T) {
	src := NewFileSource(writeList(t, "\n\n"), 1, nil)
	w, err := src.Random(context.Background())
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if w != FallbackWord {
		t.Fatalf("got %q, want the fallback word", w)
	}
}

func TestStaticSource(t *testing.T) {
	src := NewStatic([]string{"BRIDGE"}, 1)
	w, err := src.Random(context.Background())
	if err != nil || w != "BRIDGE" {
		t.Fatalf("Random = %q, %v", w, err)
	}
	empty := NewStatic(nil, 1)
	w, err = empty.Random(context.Background())
	if err != nil || w != FallbackWord {
		t.Fatalf("empty source Random = %q, %v", w, err)
	}
}
