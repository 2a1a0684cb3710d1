// Package grid holds the mutable board state: a dense 2D store of
// optional tile references plus the geometry math that snaps visual
// coordinates back onto logical cells.
package grid

import (
	"math"

	"svw.info/pipeword/internal/domain"
)

// Grid is a dense rows x cols container of tile references. A cell
// holds at most one tile, and a tile occupies at most one cell.
type Grid struct {
	rows, cols int
	cells      [][]*domain.Tile
}

// New returns an empty grid of the given dimensions.
func New(rows, cols int) *Grid {
	cells := make([][]*domain.Tile, rows)
	for r := range cells {
		cells[r] = make([]*domain.Tile, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p addresses a cell of this grid.
func (g *Grid) InBounds(p domain.Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the tile at p, or nil for an empty or out-of-range cell.
func (g *Grid) At(p domain.Position) *domain.Tile {
	if !g.InBounds(p) {
		return nil
	}
	return g.cells[p.Row][p.Col]
}

// Place moves t onto the cell at p. It fails without mutating anything
// when p is out of range or already holds an immovable tile. A movable
// occupant is displaced back off the board (its OnBoard flag cleared),
// and t's previous cell, if any, is emptied first so the tile never
// appears in two cells at once.
func (g *Grid) Place(t *domain.Tile, p domain.Position) bool {
	if t == nil || !g.InBounds(p) {
		return false
	}
	if occ := g.cells[p.Row][p.Col]; occ != nil && occ != t && occ.Immovable {
		return false
	}
	if t.OnBoard && g.InBounds(t.Pos) && g.cells[t.Pos.Row][t.Pos.Col] == t {
		g.cells[t.Pos.Row][t.Pos.Col] = nil
	}
	if occ := g.cells[p.Row][p.Col]; occ != nil && occ != t {
		occ.OnBoard = false
	}
	g.cells[p.Row][p.Col] = t
	t.Pos = p
	t.OnBoard = true
	return true
}

// Remove empties the cell at p and returns the tile that was there.
func (g *Grid) Remove(p domain.Position) *domain.Tile {
	t := g.At(p)
	if t == nil {
		return nil
	}
	g.cells[p.Row][p.Col] = nil
	t.OnBoard = false
	return t
}

// Find returns the cell currently holding t.
func (g *Grid) Find(t *domain.Tile) (domain.Position, bool) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c] == t {
				return domain.Position{Row: r, Col: c}, true
			}
		}
	}
	return domain.Position{}, false
}

// Tiles returns every placed tile in row-major order.
func (g *Grid) Tiles() []*domain.Tile {
	var out []*domain.Tile
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if t := g.cells[r][c]; t != nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// CellOrigin returns the top-left visual coordinate of the cell at p
// under the given layout.
func CellOrigin(p domain.Position, l domain.LayoutConfig) (x, y float64) {
	pitch := l.TileSize + l.Spacing
	return l.Padding + float64(p.Col)*pitch, l.Padding + float64(p.Row)*pitch
}

// NearestCell snaps a visual coordinate (a tile's top-left corner as
// reported by the presentation layer) to the closest grid cell. It is
// tolerant of drag imprecision up to half a tile in each axis; points
// farther from every cell than that report no cell at all.
func NearestCell(x, y float64, l domain.LayoutConfig) (domain.Position, bool) {
	pitch := l.TileSize + l.Spacing
	if pitch <= 0 {
		return domain.Position{}, false
	}
	col := int(math.Round((x - l.Padding) / pitch))
	row := int(math.Round((y - l.Padding) / pitch))
	if row < 0 || row >= l.Rows || col < 0 || col >= l.Cols {
		return domain.Position{}, false
	}
	p := domain.Position{Row: row, Col: col}
	cx, cy := CellOrigin(p, l)
	if math.Abs(x-cx) > l.TileSize/2 || math.Abs(y-cy) > l.TileSize/2 {
		return domain.Position{}, false
	}
	return p, true
}

// VisualPlacement pairs a tile with the approximate coordinate the
// presentation layer last drew it at.
type VisualPlacement struct {
	Tile *domain.Tile
	X, Y float64
}

// Reconcile rebuilds the logical grid from visual coordinates. This is
// the seam to the drag-and-drop layer: after a gesture the UI reports
// where tiles visually sit, and the grid snaps each to its nearest
// cell. Immovable tiles already on the board are left untouched;
// placements that snap to no cell, or to a cell Place rejects, leave
// their tile off the board.
func (g *Grid) Reconcile(placements []VisualPlacement, l domain.LayoutConfig) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if t := g.cells[r][c]; t != nil && !t.Immovable {
				g.cells[r][c] = nil
				t.OnBoard = false
			}
		}
	}
	for _, vp := range placements {
		if vp.Tile == nil || vp.Tile.Immovable {
			continue
		}
		p, ok := NearestCell(vp.X, vp.Y, l)
		if !ok {
			continue
		}
		g.Place(vp.Tile, p)
	}
}
