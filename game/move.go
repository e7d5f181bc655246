package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Side identifies one of the two colors. Black always moves first.
type Side int8

const (
	Black Side = iota
	White
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// Symbol returns the board character of the side, as used by the save
// format and the CLI renderer.
func (s Side) Symbol() byte {
	if s == Black {
		return 'X'
	}
	return 'O'
}

// PassSquare is the square index of a pass move.
const PassSquare = -1

// Move is a destination square, or a pass, played by one side.
// It is immutable once created.
type Move struct {
	Square int
	Side   Side
}

// Pass builds the pass move for a side.
func Pass(side Side) Move {
	return Move{Square: PassSquare, Side: side}
}

// IsPass reports whether the move places no disc.
func (m Move) IsPass() bool {
	return m.Square == PassSquare
}

// Notation renders the move in the letter+number form used by the save
// format, e.g. "d3". Passes render as "-1-1".
func (m Move) Notation(size int) string {
	if m.IsPass() {
		return "-1-1"
	}
	col := m.Square % size
	row := m.Square / size
	return fmt.Sprintf("%c%d", 'a'+col, row+1)
}

// ParseSquare converts letter+number notation back to a square index on
// an N*N board. "-1-1" parses to PassSquare.
func ParseSquare(s string, size int) (int, error) {
	if s == "-1-1" {
		return PassSquare, nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("malformed square %q", s)
	}
	col := int(strings.ToLower(s)[0] - 'a')
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("malformed square %q", s)
	}
	row--
	if col < 0 || col >= size || row < 0 || row >= size {
		return 0, fmt.Errorf("square %q is outside the %dx%d board", s, size, size)
	}
	return row*size + col, nil
}
