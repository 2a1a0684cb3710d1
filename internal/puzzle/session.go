// Package puzzle owns one running puzzle: the generated route, the
// grid, the letter tiles and obstacles, and the moves the player makes
// until the word is solved or the puzzle abandoned. All mutation goes
// through Session methods; the presentation layer only translates
// gestures into these calls.
package puzzle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/generator"
	"svw.info/pipeword/internal/grid"
	"svw.info/pipeword/internal/pipes"
	"svw.info/pipeword/internal/ports"
	"svw.info/pipeword/internal/validator"
)

var (
	// ErrInvalidMove rejects placement onto an immovable or
	// out-of-range cell. The move leaves the grid unchanged; the UI
	// snaps the tile back to where the drag began.
	ErrInvalidMove = errors.New("puzzle: cell is blocked or out of range")

	// ErrGridTooNarrow reports a grid whose column count cannot span
	// the word, which would otherwise force a truncated route that
	// desyncs the displayed word from the playable path.
	ErrGridTooNarrow = errors.New("puzzle: grid has fewer columns than the word has letters")
)

// Config collects everything a new session needs. Generator and
// Validator default to the in-repo implementations when nil.
type Config struct {
	Word         string
	ConnectionID int
	Layout       domain.LayoutConfig
	Obstacles    int
	Seed         int64
	Generator    ports.PathGenerator
	Validator    ports.Validator
	Logger       *slog.Logger
}

// Session is the state of one puzzle from start to solve/abandon.
// Tiles live for exactly one session; starting a new puzzle builds a
// fresh batch.
type Session struct {
	Word         string
	ConnectionID int
	Layout       domain.LayoutConfig
	Route        domain.Route
	Fallback     bool
	Grid         *grid.Grid
	StartedAt    time.Time

	mu        sync.Mutex      // guards the grid and tile positions
	tiles     []*domain.Tile  // letter tiles in route order
	obstacles []*domain.Tile
	tray      []*domain.Tile  // initial shuffled tray order
	checker   ports.Validator
	rng       *rand.Rand
	logger    *slog.Logger
	solved    bool
}

// NewSession generates a route for the word, annotates it with pipe
// types, fixes the start tile on the board, shuffles the remaining
// letters into the tray and seeds the obstacles.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	word := strings.ToUpper(strings.TrimSpace(cfg.Word))
	if word == "" {
		return nil, errors.New("puzzle: empty word")
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	letters := []rune(word)
	if !cfg.Layout.Fits(len(letters)) {
		return nil, fmt.Errorf("%w: %q needs %d columns, grid has %d",
			ErrGridTooNarrow, word, len(letters), cfg.Layout.Cols)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	gen := cfg.Generator
	if gen == nil {
		g := generator.New(seed)
		g.SetLogger(logger)
		gen = g
	}
	checker := cfg.Validator
	if checker == nil {
		checker = validator.New()
	}

	route, stats, err := gen.Generate(ctx, len(letters), cfg.Layout.Rows, cfg.Layout.Cols)
	if err != nil {
		return nil, fmt.Errorf("generate route: %w", err)
	}
	types, err := pipes.ClassifyRoute(route)
	if err != nil {
		return nil, fmt.Errorf("classify route: %w", err)
	}

	s := &Session{
		Word:         word,
		ConnectionID: cfg.ConnectionID,
		Layout:       cfg.Layout,
		Route:        route,
		Fallback:     stats.Fallback,
		Grid:         grid.New(cfg.Layout.Rows, cfg.Layout.Cols),
		StartedAt:    time.Now(),
		checker:      checker,
		rng:          rng,
		logger:       logger,
	}

	for i := range route {
		if i >= len(letters) {
			break // truncated fallback route
		}
		pt := types[i]
		s.tiles = append(s.tiles, &domain.Tile{
			ID:     i,
			Letter: string(letters[i]),
			Pipe:   &pt,
		})
	}
	// The first letter is fixed in place; it anchors the flow.
	s.tiles[0].Immovable = true
	s.Grid.Place(s.tiles[0], route[0])

	s.tray = shuffleTray(s.tiles[1:], rng)

	for _, p := range PlaceObstacles(cfg.Obstacles, route, cfg.Layout.Rows, cfg.Layout.Cols, rng) {
		t := &domain.Tile{ID: -1, Obstacle: true, Immovable: true}
		s.Grid.Place(t, p)
		s.obstacles = append(s.obstacles, t)
	}

	logger.Debug("session started",
		"word", word, "connection", cfg.ConnectionID,
		"routeLen", len(route), "fallback", stats.Fallback,
		"attempts", stats.Attempts, "obstacles", len(s.obstacles),
	)
	return s, nil
}

// shuffleTray randomizes the tray order. The shuffled order is never
// the solved order when there are at least two tiles, so the player
// always has a rearrangement to make.
func shuffleTray(tiles []*domain.Tile, rng *rand.Rand) []*domain.Tile {
	tray := make([]*domain.Tile, len(tiles))
	copy(tray, tiles)
	if len(tray) < 2 {
		return tray
	}
	rng.Shuffle(len(tray), func(i, j int) { tray[i], tray[j] = tray[j], tray[i] })
	same := true
	for i := range tray {
		if tray[i] != tiles[i] {
			same = false
			break
		}
	}
	if same {
		first := tray[0]
		copy(tray, tray[1:])
		tray[len(tray)-1] = first
	}
	return tray
}

// Tiles returns the letter tiles in route order.
func (s *Session) Tiles() []*domain.Tile {
	out := make([]*domain.Tile, len(s.tiles))
	copy(out, s.tiles)
	return out
}

// Tray returns the tiles currently off the board, in initial tray
// order.
func (s *Session) Tray() []*domain.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Tile
	for _, t := range s.tray {
		if !t.OnBoard {
			out = append(out, t)
		}
	}
	return out
}

// Obstacles returns the obstacle tiles.
func (s *Session) Obstacles() []*domain.Tile {
	out := make([]*domain.Tile, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Tile looks a letter tile up by id.
func (s *Session) Tile(id int) (*domain.Tile, bool) {
	if id < 0 || id >= len(s.tiles) {
		return nil, false
	}
	return s.tiles[id], true
}

// Move places the tile with the given id onto pos. Moves that target
// an immovable occupant or leave the grid fail with ErrInvalidMove and
// mutate nothing; moving an immovable tile itself is likewise refused.
func (s *Session) Move(id int, pos domain.Position) error {
	t, ok := s.Tile(id)
	if !ok {
		return fmt.Errorf("puzzle: no tile %d", id)
	}
	if t.Immovable {
		return ErrInvalidMove
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Grid.Place(t, pos) {
		return ErrInvalidMove
	}
	return nil
}

// Return takes the tile with the given id off the board, back to the
// tray. Immovable tiles stay put.
func (s *Session) Return(id int) error {
	t, ok := s.Tile(id)
	if !ok {
		return fmt.Errorf("puzzle: no tile %d", id)
	}
	if t.Immovable {
		return ErrInvalidMove
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.OnBoard {
		s.Grid.Remove(t.Pos)
	}
	return nil
}

// ReconcileVisual rebuilds the logical grid from the coordinates the
// presentation layer reports after a drag settles.
func (s *Session) ReconcileVisual(placements []grid.VisualPlacement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Grid.Reconcile(placements, s.Layout)
}

// Check reads the word along the route and compares it to the target.
// It does not mutate the grid, so repeated checks of an unchanged
// board agree.
func (s *Session) Check(ctx context.Context) (domain.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.checker.Check(ctx, s.Route, s.Grid, s.Word)
	if err != nil {
		return domain.CheckResult{}, err
	}
	if res.Verdict == domain.Solved {
		s.solved = true
	}
	return res, nil
}

// Solved reports whether a Check has succeeded for this session.
func (s *Session) Solved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solved
}

// FillOrder returns the route as the canonical sequencing key for the
// liquid-fill animation: the presentation layer plays each tile's fill
// to completion before starting the next, strictly in this order.
func (s *Session) FillOrder() []domain.Position {
	out := make([]domain.Position, len(s.Route))
	copy(out, s.Route)
	return out
}
