// Package generator produces solution routes: simple paths through the
// grid with a rightward bias, built by bounded randomized retry with a
// deterministic fallback.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/ports"
)

// DefaultMaxAttempts bounds the randomized walk before the generator
// gives up and builds the fallback route.
const DefaultMaxAttempts = 30

// RouteGenerator implements ports.PathGenerator with a seeded rng so
// route generation is reproducible in tests.
type RouteGenerator struct {
	rng         *rand.Rand
	maxAttempts int
	logger      *slog.Logger
}

// New wires a generator seeded with the given value.
func New(seed int64) *RouteGenerator {
	return &RouteGenerator{
		rng:         rand.New(rand.NewSource(seed)),
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
	}
}

// SetMaxAttempts overrides the retry bound.
func (g *RouteGenerator) SetMaxAttempts(n int) {
	if n > 0 {
		g.maxAttempts = n
	}
}

// SetLogger overrides the logger used for exhaustion diagnostics.
func (g *RouteGenerator) SetLogger(l *slog.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Generate builds a route of wordLen cells on a rows x cols grid. The
// first cell always sits in column 0; each later cell extends the path
// by one rook step, preferring rightward movement but allowing up/down
// retreats as long as no cell repeats.
//
// When every attempt dead-ends, Generate degrades to a straight run in
// the middle row truncated to min(wordLen, cols) cells. The truncated
// route can be shorter than the word; Stats.Fallback flags it and the
// shortfall is the caller's to surface (see domain.LayoutConfig.Fits).
func (g *RouteGenerator) Generate(ctx context.Context, wordLen, rows, cols int) (domain.Route, ports.Stats, error) {
	start := time.Now()
	if wordLen <= 0 {
		return nil, ports.Stats{}, fmt.Errorf("generator: word length %d must be positive", wordLen)
	}
	if rows <= 0 || cols <= 0 {
		return nil, ports.Stats{}, fmt.Errorf("generator: grid %dx%d is empty", rows, cols)
	}

	startRow := g.rng.Intn(rows)
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Attempts: attempt, Duration: time.Since(start)}, err
		}
		if route, ok := g.walk(startRow, wordLen, rows, cols); ok {
			return route, ports.Stats{Attempts: attempt, Duration: time.Since(start)}, nil
		}
	}

	route := fallback(wordLen, rows, cols)
	g.logger.Debug("route generation exhausted, using fallback",
		"wordLen", wordLen, "rows", rows, "cols", cols,
		"attempts", g.maxAttempts, "fallbackLen", len(route),
	)
	return route, ports.Stats{Attempts: g.maxAttempts, Fallback: true, Duration: time.Since(start)}, nil
}

// walk grows one candidate route. At every step the neighbors proposed
// are right (clamped to the last column), up, and down; already-visited
// cells are filtered and one survivor is picked uniformly. No survivors
// means a dead end and the attempt is abandoned.
func (g *RouteGenerator) walk(startRow, wordLen, rows, cols int) (domain.Route, bool) {
	first := domain.Position{Row: startRow, Col: 0}
	route := domain.Route{first}
	visited := map[domain.Position]bool{first: true}

	for len(route) < wordLen {
		cur := route[len(route)-1]
		right := cur.Col + 1
		if right > cols-1 {
			right = cols - 1
		}
		proposals := [3]domain.Position{
			{Row: cur.Row, Col: right},
			{Row: cur.Row - 1, Col: cur.Col},
			{Row: cur.Row + 1, Col: cur.Col},
		}
		candidates := make([]domain.Position, 0, 3)
		for _, p := range proposals {
			if p.Row < 0 || p.Row >= rows || visited[p] {
				continue
			}
			candidates = append(candidates, p)
		}
		if len(candidates) == 0 {
			return nil, false
		}
		next := candidates[g.rng.Intn(len(candidates))]
		route = append(route, next)
		visited[next] = true
	}
	return route, true
}

// fallback is the deterministic degradation: a horizontal run in the
// middle row, truncated to the grid width.
func fallback(wordLen, rows, cols int) domain.Route {
	n := wordLen
	if n > cols {
		n = cols
	}
	mid := rows / 2
	route := make(domain.Route, n)
	for i := range route {
		route[i] = domain.Position{Row: mid, Col: i}
	}
	return route
}
