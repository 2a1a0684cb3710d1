package domain

import "fmt"

// Position identifies a cell on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Neighbor returns the cell one step from p in d.
func (p Position) Neighbor(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Step returns the direction from a to b, if the two cells are
// rook-adjacent (Manhattan distance 1).
func Step(a, b Position) (Direction, bool) {
	switch {
	case b.Row == a.Row-1 && b.Col == a.Col:
		return Up, true
	case b.Row == a.Row+1 && b.Col == a.Col:
		return Down, true
	case b.Col == a.Col-1 && b.Row == a.Row:
		return Left, true
	case b.Col == a.Col+1 && b.Row == a.Row:
		return Right, true
	}
	return 0, false
}

// Route is the ordered sequence of cells a word's letters occupy when
// solved. Positions are pairwise distinct, the first sits in column 0,
// and consecutive positions are rook-adjacent.
type Route []Position

// Contains reports whether the route visits p.
func (r Route) Contains(p Position) bool {
	for _, q := range r {
		if q == p {
			return true
		}
	}
	return false
}

// PipeType describes which sides of a tile are open for flow. The
// openings are derived from the route's local geometry, never from
// actual grid adjacency after tiles are shuffled into the tray.
//
// Entry is the side the flow arrives through and Exit the side it
// leaves through. ShapeStart has only Exit, ShapeEnd only Entry.
type PipeType struct {
	Shape PipeShape `json:"shape"`
	Entry Direction `json:"entry,omitempty"`
	Exit  Direction `json:"exit,omitempty"`
}

// Openings lists the open sides of the tile, one for start/end pipes
// and two otherwise.
func (p PipeType) Openings() []Direction {
	switch p.Shape {
	case ShapeStart:
		return []Direction{p.Exit}
	case ShapeEnd:
		return []Direction{p.Entry}
	default:
		return []Direction{p.Entry, p.Exit}
	}
}

// Tile is a placeable board entity: a letter tile on the solution
// route, or a bare obstacle. The core owns the logical state here;
// visual position and animation state belong to the presentation layer.
type Tile struct {
	ID        int       `json:"id"`   // index in route order; -1 for obstacles
	Letter    string    `json:"letter,omitempty"`
	Pipe      *PipeType `json:"pipe,omitempty"`
	Obstacle  bool      `json:"obstacle,omitempty"`
	Immovable bool      `json:"immovable,omitempty"`
	Pos       Position  `json:"pos"` // logical cell; meaningful only while OnBoard
	OnBoard   bool      `json:"onBoard"`
}

// CheckResult is the outcome of reading the word along the route.
type CheckResult struct {
	Verdict   CheckVerdict `json:"verdict"`
	Candidate string       `json:"candidate,omitempty"` // letters assembled so far
	Missing   *Position    `json:"missing,omitempty"`   // first unfilled route cell
}

// Hint points the player at the next route cell worth fixing.
type Hint struct {
	Message string   `json:"message,omitempty"`
	Cell    Position `json:"cell"`
	Index   int      `json:"index"` // position of the cell in route order
}

// Connection is an edge in the map progression graph; it gates one
// word puzzle. Requires lists the ids of the edges that must be
// completed before this one unlocks.
type Connection struct {
	ID       int    `json:"id"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	Word     string `json:"word"`
	Requires []int  `json:"requires,omitempty"`
}

// Location indices for the built-in overworld topology.
const (
	LocStart = iota
	LocOne
	LocTwo
	LocThree
	LocEnd
)

// LayoutConfig carries the grid and tray geometry the core needs for
// cell snapping and placement. All of it comes from configuration; the
// core never measures rendered pixels itself.
type LayoutConfig struct {
	Rows         int     `json:"rows"`
	Cols         int     `json:"cols"`
	Padding      float64 `json:"padding"`
	TileSize     float64 `json:"tileSize"`
	Spacing      float64 `json:"spacing"`
	TrayCapacity int     `json:"trayCapacity"`
}

// Validate checks the geometry is usable. A zero TileSize would make
// cell snapping degenerate.
func (l LayoutConfig) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("layout: grid %dx%d is empty", l.Rows, l.Cols)
	}
	if l.TileSize <= 0 {
		return fmt.Errorf("layout: tile size %.1f must be positive", l.TileSize)
	}
	if l.Spacing < 0 || l.Padding < 0 {
		return fmt.Errorf("layout: negative spacing or padding")
	}
	return nil
}

// Fits reports whether a word of the given length can span the grid.
// A grid narrower than the word forces the generator's truncated
// fallback, which desyncs the playable path from the displayed word,
// so callers should treat a false return as a configuration error.
func (l LayoutConfig) Fits(wordLen int) bool {
	return wordLen <= l.Cols && wordLen <= l.Rows*l.Cols
}
