// Package validator decides puzzle success: it reads the letters along
// the recorded route off the grid and compares the assembled word to
// the target. Checking is pure with respect to game state; success and
// failure animations are the presentation layer's reaction afterward.
package validator

import (
	"context"
	"strings"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/grid"
)

type RouteValidator struct{}

func New() *RouteValidator { return &RouteValidator{} }

// Check walks the route in order. A route cell that is empty, holds an
// obstacle, or holds a letterless tile yields an Incomplete verdict
// with the offending cell; that is the expected steady state while the
// player is still arranging tiles, not an error. Once every cell reads
// a letter, the concatenation is compared case-sensitively to target
// (words are canonically upper-case). Checking an unchanged grid twice
// yields the same result.
func (v *RouteValidator) Check(ctx context.Context, route domain.Route, g *grid.Grid, target string) (domain.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.CheckResult{}, err
	}
	var b strings.Builder
	for _, pos := range route {
		t := g.At(pos)
		if t == nil || t.Obstacle || t.Letter == "" {
			missing := pos
			return domain.CheckResult{
				Verdict:   domain.Incomplete,
				Candidate: b.String(),
				Missing:   &missing,
			}, nil
		}
		b.WriteString(t.Letter)
	}
	candidate := b.String()
	if candidate != target {
		return domain.CheckResult{Verdict: domain.Mismatched, Candidate: candidate}, nil
	}
	return domain.CheckResult{Verdict: domain.Solved, Candidate: candidate}, nil
}
