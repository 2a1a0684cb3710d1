package validator

import (
	"context"
	"testing"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/grid"
)

var route = domain.Route{
	{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}, {Row: 1, Col: 4},
}

func boardWith(t *testing.T, letters string) *grid.Grid {
	t.Helper()
	g := grid.New(4, 7)
	for i, r := range letters {
		if r == '.' {
			continue
		}
		tile := &domain.Tile{ID: i, Letter: string(r)}
		if !g.Place(tile, route[i]) {
			t.Fatalf("place letter %d failed", i)
		}
	}
	return g
}

func TestCheckSolved(t *testing.T) {
	g := boardWith(t, "RIVER")
	res, err := New().Check(context.Background(), route, g, "RIVER")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Verdict != domain.Solved || res.Candidate != "RIVER" {
		t.Fatalf("got %+v, want solved RIVER", res)
	}
}

func TestCheckIncomplete(t *testing.T) {
	g := boardWith(t, "RI.ER")
	res, err := New().Check(context.Background(), route, g, "RIVER")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Verdict != domain.Incomplete {
		t.Fatalf("verdict = %v, want incomplete", res.Verdict)
	}
	if res.Missing == nil || *res.Missing != route[2] {
		t.Fatalf("missing = %v, want %v", res.Missing, route[2])
	}
	if res.Candidate != "RI" {
		t.Fatalf("candidate = %q, want letters before the gap", res.Candidate)
	}
}

func TestCheckObstacleCountsAsGap(t *testing.T) {
	g := boardWith(t, "RI.ER")
	obstacle := &domain.Tile{ID: -1, Obstacle: true, Immovable: true}
	g.Place(obstacle, route[2])
	res, err := New().Check(context.Background(), route, g, "RIVER")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Verdict != domain.Incomplete {
		t.Fatalf("verdict = %v, want incomplete over an obstacle", res.Verdict)
	}
}

func TestCheckMismatched(t *testing.T) {
	g := boardWith(t, "REVIR")
	res, err := New().Check(context.Background(), route, g, "RIVER")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Verdict != domain.Mismatched {
		t.Fatalf("verdict = %v, want mismatched", res.Verdict)
	}
	if res.Candidate != "REVIR" {
		t.Fatalf("candidate = %q, want the assembled word for diagnostics", res.Candidate)
	}
}

func TestCheckCaseSensitive(t *testing.T) {
	g := boardWith(t, "riVER")
	res, err := New().Check(context.Background(), route, g, "RIVER")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Verdict != domain.Mismatched {
		t.Fatalf("lower-case letters compared equal")
	}
}

// Checking twice without touching the grid must agree.
func TestCheckIdempotent(t *testing.T) {
	for _, letters := range []string{"RIVER", "RI.ER", "REVIR"} {
		g := boardWith(t, letters)
		v := New()
		first, err := v.Check(context.Background(), route, g, "RIVER")
		if err != nil {
			t.Fatalf("first check: %v", err)
		}
		second, err := v.Check(context.Background(), route, g, "RIVER")
		if err != nil {
			t.Fatalf("second check: %v", err)
		}
		if first.Verdict != second.Verdict || first.Candidate != second.Candidate {
			t.Fatalf("%q: %+v then %+v", letters, first, second)
		}
	}
}
