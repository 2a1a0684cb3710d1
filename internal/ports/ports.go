package ports

import (
	"context"
	"time"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/grid"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Attempts int
	Fallback bool
	Duration time.Duration
}

// PathGenerator produces a solution route for a word of the given
// length on a rows x cols grid. Generation never fails outright: when
// the randomized walk is exhausted it degrades to a deterministic
// fallback route, reported via Stats.Fallback.
type PathGenerator interface {
	Generate(ctx context.Context, wordLen, rows, cols int) (domain.Route, Stats, error)
}

// Validator reads the letters along a route off the grid and compares
// the assembled word to the target.
type Validator interface {
	Check(ctx context.Context, route domain.Route, g *grid.Grid, target string) (domain.CheckResult, error)
}

// Hinter suggests the next route cell worth fixing.
type Hinter interface {
	Hint(ctx context.Context, route domain.Route, g *grid.Grid, target string) (domain.Hint, bool, error)
}

// ProgressStore persists the set of completed connection ids.
// Absence of stored progress is not an error; it reads as empty.
type ProgressStore interface {
	Completed(ctx context.Context) ([]int, error)
	MarkCompleted(ctx context.Context, id int) error
	Reset(ctx context.Context) error
}

// WordSource supplies target words for the standalone puzzle variant.
// The map-driven variant takes its words from the connection table
// instead.
type WordSource interface {
	Random(ctx context.Context) (string, error)
}
