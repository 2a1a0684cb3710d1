package hint

import (
	"context"
	"fmt"

	"svw.info/pipeword/internal/domain"
	"svw.info/pipeword/internal/grid"
)

// NextCell implements a minimal Hinter: it walks the route in fill
// order and points at the first cell that is empty or holds the wrong
// letter.
type NextCell struct{}

func NewNextCell() *NextCell { return &NextCell{} }

// Hint returns the first route cell needing attention, or false when
// the route already reads the target word.
func (h *NextCell) Hint(ctx context.Context, route domain.Route, g *grid.Grid, target string) (domain.Hint, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hint{}, false, err
	}
	letters := []rune(target)
	for i, pos := range route {
		if i >= len(letters) {
			break
		}
		want := string(letters[i])
		t := g.At(pos)
		if t == nil || t.Obstacle || t.Letter == "" {
			return domain.Hint{
				Message: fmt.Sprintf("Letter %d goes here", i+1),
				Cell:    pos,
				Index:   i,
			}, true, nil
		}
		if t.Letter != want {
			return domain.Hint{
				Message: fmt.Sprintf("The tile here is not letter %d", i+1),
				Cell:    pos,
				Index:   i,
			}, true, nil
		}
	}
	return domain.Hint{}, false, nil
}
