package game

import "fmt"

// Position is the packed pair of disc sets for one board. It is a value:
// Apply returns a new Position and never mutates the receiver.
type Position struct {
	layout Layout
	discs  [2]Bits // indexed by Side
}

// NewPosition builds the four-disc starting position of an N*N game.
func NewPosition(size int) (Position, error) {
	if size < MinBoardSize || size > MaxBoardSize || size%2 != 0 {
		return Position{}, &IllegalBoardSizeError{Size: size}
	}
	p := Position{layout: NewLayout(size)}
	h := size / 2
	p.discs[White] = p.discs[White].With((h-1)*size + (h - 1)).With(h*size + h)
	p.discs[Black] = p.discs[Black].With((h-1)*size + h).With(h*size + (h - 1))
	return p, nil
}

// RestorePosition rebuilds a Position from raw disc sets, as read from a
// save file. The sets must be disjoint and inside the field.
func RestorePosition(size int, black, white Bits) (Position, error) {
	if size < MinBoardSize || size > MaxBoardSize || size%2 != 0 {
		return Position{}, &IllegalBoardSizeError{Size: size}
	}
	layout := NewLayout(size)
	if !black.And(white).IsZero() {
		return Position{}, fmt.Errorf("black and white discs overlap")
	}
	if !black.Or(white).AndNot(layout.Field).IsZero() {
		return Position{}, fmt.Errorf("discs outside the %dx%d field", size, size)
	}
	p := Position{layout: layout}
	p.discs[Black] = black
	p.discs[White] = white
	return p, nil
}

// Size returns the board dimension N.
func (p Position) Size() int {
	return p.layout.Size
}

// Layout returns the mask set shared by all positions of this size.
func (p Position) Layout() Layout {
	return p.layout
}

// Discs returns the bit set of one side's discs.
func (p Position) Discs(s Side) Bits {
	return p.discs[s]
}

// Empty returns the set of unoccupied squares.
func (p Position) Empty() Bits {
	return p.discs[Black].Or(p.discs[White]).Xor(p.layout.Field)
}

// Count returns the number of discs a side holds.
func (p Position) Count(s Side) int {
	return p.discs[s].Popcount()
}

// LegalMoves returns the set of squares where side s may place a disc.
// An empty result means s must pass; that is not an error.
//
// Line-cap propagation: for each direction, seed with the opponent discs
// adjacent to a friendly disc, then extend the line through further
// opponent discs. Each extension that lands on an empty square marks a
// legal destination. The cost is O(N) bit-set operations per direction
// regardless of disc count.
func (p Position) LegalMoves(s Side) Bits {
	own := p.discs[s]
	opp := p.discs[s.Opponent()]
	empty := p.Empty()
	var moves Bits
	for _, d := range Directions {
		candidates := p.layout.Shift(own, d).And(opp)
		for !candidates.IsZero() {
			moves = moves.Or(p.layout.Shift(candidates, d).And(empty))
			candidates = p.layout.Shift(candidates, d).And(opp)
		}
	}
	return moves
}

// flips returns the opponent discs captured by s playing sq, without the
// placed disc itself. Empty when sq captures nothing.
func (p Position) flips(s Side, sq int) Bits {
	own := p.discs[s]
	opp := p.discs[s.Opponent()]
	placed := Bits{}.With(sq)
	var all Bits
	for _, d := range Directions {
		var line Bits
		cursor := p.layout.Shift(placed, d)
		for !cursor.And(opp).IsZero() {
			line = line.Or(cursor)
			cursor = p.layout.Shift(cursor, d)
		}
		// A line counts only when it ends on a friendly disc; running off
		// the board or onto an empty square discards it.
		if !cursor.And(own).IsZero() {
			all = all.Or(line)
		}
	}
	return all
}

// Apply places a disc for s at sq and flips every captured line,
// returning the resulting position. The destination must come from
// LegalMoves; anything else is a contract violation and panics.
func (p Position) Apply(s Side, sq int) Position {
	if !p.Empty().Get(sq) {
		panic(fmt.Sprintf("apply: square %d is occupied", sq))
	}
	captured := p.flips(s, sq)
	if captured.IsZero() {
		panic(fmt.Sprintf("apply: square %d captures nothing for %s", sq, s))
	}
	next := p
	next.discs[s] = p.discs[s].Or(captured).With(sq)
	next.discs[s.Opponent()] = p.discs[s.Opponent()].AndNot(captured)
	return next
}

// Frontier returns the empty squares adjacent to s's discs, one
// shift-and-mask dilation per direction.
func (p Position) Frontier(s Side) Bits {
	empty := p.Empty()
	var f Bits
	for _, d := range Directions {
		f = f.Or(p.layout.Shift(p.discs[s], d).And(empty))
	}
	return f
}

// GameOver reports whether neither side has a legal move. A full board
// is a special case: with no empty squares there are no destinations.
func (p Position) GameOver() bool {
	return p.LegalMoves(Black).IsZero() && p.LegalMoves(White).IsZero()
}
