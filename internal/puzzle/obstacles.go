package puzzle

import (
	"math/rand"

	"svw.info/pipeword/internal/domain"
)

// PlaceObstacles picks count cells to seed as immovable blockers,
// uniformly at random (shuffle-and-take) from the cells the route does
// not visit. When fewer than count non-route cells exist it returns
// all of them rather than failing.
func PlaceObstacles(count int, route domain.Route, rows, cols int, rng *rand.Rand) []domain.Position {
	if count <= 0 {
		return nil
	}
	free := make([]domain.Position, 0, rows*cols-len(route))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := domain.Position{Row: r, Col: c}
			if !route.Contains(p) {
				free = append(free, p)
			}
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	if count > len(free) {
		count = len(free)
	}
	return free[:count]
}
