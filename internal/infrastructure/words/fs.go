// Package words supplies target words for the standalone puzzle
// variant from a newline-delimited word list file.
package words

import (
	"bufio"
	"context"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"sync"

	"github.com/duke-git/lancet/v2/slice"
)

// FallbackWord is used when no word list can be read. The game keeps
// working, just without variety.
const FallbackWord = "PUZZLE"

// FileSource reads a word list lazily on first use. Words are
// upper-cased and deduplicated; blank lines are skipped. A missing or
// unreadable file degrades to the built-in fallback word.
type FileSource struct {
	path   string
	rng    *rand.Rand
	logger *slog.Logger

	once  sync.Once
	mu    sync.Mutex
	words []string
}

// NewFileSource wires a source over the list at path, seeded for
// reproducible picks in tests.
func NewFileSource(path string, seed int64, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

func (f *FileSource) load() {
	file, err := os.Open(f.path)
	if err != nil {
		f.logger.Warn("word list unavailable, using fallback", "path", f.path, "err", err)
		f.words = []string{FallbackWord}
		return
	}
	defer file.Close()

	var list []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		list = append(list, w)
	}
	if err := sc.Err(); err != nil || len(list) == 0 {
		f.logger.Warn("word list unreadable or empty, using fallback", "path", f.path, "err", err)
		f.words = []string{FallbackWord}
		return
	}
	f.words = slice.Unique(list)
}

// Random returns a uniformly chosen word from the list.
func (f *FileSource) Random(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.once.Do(f.load)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.words[f.rng.Intn(len(f.words))], nil
}

// Static is a fixed in-memory word source.
type Static struct {
	Words []string
	rng   *rand.Rand
	mu    sync.Mutex
}

// NewStatic wires a source over the given words.
func NewStatic(words []string, seed int64) *Static {
	return &Static{Words: words, rng: rand.New(rand.NewSource(seed))}
}

// Random returns a uniformly chosen word, or the fallback when empty.
func (s *Static) Random(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.Words) == 0 {
		return FallbackWord, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Words[s.rng.Intn(len(s.Words))], nil
}
