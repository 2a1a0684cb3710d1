// Package pipes derives tile connectivity from a route's local
// geometry. Classification looks only at a cell's predecessor and
// successor in the route, never at actual grid adjacency, so a tile's
// openings stay fixed once it is shuffled into the tray.
package pipes

import (
	"fmt"

	"svw.info/pipeword/internal/domain"
)

// DefaultStartExit is the opening used for a single-cell route, where
// there is no next cell to point at. Rightward matches the canonical
// flow direction of generated routes.
const DefaultStartExit = domain.Right

// Classify returns the pipe type for route[i].
func Classify(i int, route domain.Route) (domain.PipeType, error) {
	if i < 0 || i >= len(route) {
		return domain.PipeType{}, fmt.Errorf("pipes: index %d out of route of length %d", i, len(route))
	}
	if len(route) == 1 {
		return domain.PipeType{Shape: domain.ShapeStart, Exit: DefaultStartExit}, nil
	}
	if i == 0 {
		out, ok := domain.Step(route[0], route[1])
		if !ok {
			return domain.PipeType{}, stepErr(route[0], route[1])
		}
		return domain.PipeType{Shape: domain.ShapeStart, Exit: out}, nil
	}
	in, ok := domain.Step(route[i-1], route[i])
	if !ok {
		return domain.PipeType{}, stepErr(route[i-1], route[i])
	}
	if i == len(route)-1 {
		return domain.PipeType{Shape: domain.ShapeEnd, Entry: in.Opposite()}, nil
	}
	out, ok := domain.Step(route[i], route[i+1])
	if !ok {
		return domain.PipeType{}, stepErr(route[i], route[i+1])
	}
	shape := domain.ShapeElbow
	if in == out {
		shape = domain.ShapeStraight
	}
	return domain.PipeType{Shape: shape, Entry: in.Opposite(), Exit: out}, nil
}

// ClassifyRoute annotates every cell of the route in order.
func ClassifyRoute(route domain.Route) ([]domain.PipeType, error) {
	out := make([]domain.PipeType, len(route))
	for i := range route {
		pt, err := Classify(i, route)
		if err != nil {
			return nil, err
		}
		out[i] = pt
	}
	return out, nil
}

func stepErr(a, b domain.Position) error {
	return fmt.Errorf("pipes: route cells %v and %v are not adjacent", a, b)
}
