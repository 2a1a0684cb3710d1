package domain

// Direction is one of the four cardinal directions on the board.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Opposite returns the reverse direction. Applying it twice yields the
// original direction for every member of the enum.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the row/column offset of one step in d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Vertical reports whether d runs along the row axis.
func (d Direction) Vertical() bool { return d == Up || d == Down }

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// PipeShape tags the connectivity class of a tile's pipe.
type PipeShape int

const (
	ShapeStart    PipeShape = iota // one opening, carries the word's first letter
	ShapeEnd                       // one opening, carries the word's last letter
	ShapeStraight                  // two openings on opposite sides
	ShapeElbow                     // two openings on non-opposite sides
)

func (s PipeShape) String() string {
	switch s {
	case ShapeStart:
		return "start"
	case ShapeEnd:
		return "end"
	case ShapeStraight:
		return "straight"
	default:
		return "elbow"
	}
}

// CheckVerdict classifies the outcome of a solution check.
type CheckVerdict int

const (
	Solved     CheckVerdict = iota
	Incomplete              // a route cell has no letter tile yet
	Mismatched              // every route cell is filled but the word is wrong
)

func (v CheckVerdict) String() string {
	switch v {
	case Solved:
		return "solved"
	case Incomplete:
		return "incomplete"
	default:
		return "mismatched"
	}
}
