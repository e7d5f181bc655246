package game

import "math/bits"

// Direction of a one-square shift on the board.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Directions lists all eight compass directions in a fixed order so that
// move generation and capture resolution walk them deterministically.
var Directions = [8]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// Board dimensions the packed representation supports. The dimension must
// be even so the four starting discs sit on the central diagonals.
const (
	MinBoardSize = 4
	MaxBoardSize = 16
)

const bitsWords = (MaxBoardSize * MaxBoardSize + 63) / 64

// Bits is a fixed-width bit set wide enough for any supported board.
// Bit i represents the square at row i/N, column i%N. It is a plain
// comparable value; every operation returns a new value.
type Bits [bitsWords]uint64

// Get reports whether bit sq is set.
func (b Bits) Get(sq int) bool {
	return b[sq/64]&(1<<(sq%64)) != 0
}

// With returns b with bit sq set.
func (b Bits) With(sq int) Bits {
	b[sq/64] |= 1 << (sq % 64)
	return b
}

// Without returns b with bit sq cleared.
func (b Bits) Without(sq int) Bits {
	b[sq/64] &^= 1 << (sq % 64)
	return b
}

// IsZero reports whether no bit is set.
func (b Bits) IsZero() bool {
	return b == Bits{}
}

// Popcount returns the number of set bits.
func (b Bits) Popcount() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b Bits) And(o Bits) Bits {
	for i := range b {
		b[i] &= o[i]
	}
	return b
}

func (b Bits) Or(o Bits) Bits {
	for i := range b {
		b[i] |= o[i]
	}
	return b
}

func (b Bits) Xor(o Bits) Bits {
	for i := range b {
		b[i] ^= o[i]
	}
	return b
}

// AndNot returns the bits of b that are not in o.
func (b Bits) AndNot(o Bits) Bits {
	for i := range b {
		b[i] &^= o[i]
	}
	return b
}

// shiftLeft moves every bit k squares towards higher indices, 0 <= k < 64.
func (b Bits) shiftLeft(k uint) Bits {
	var out Bits
	for i := bitsWords - 1; i > 0; i-- {
		out[i] = b[i]<<k | b[i-1]>>(64-k)
	}
	out[0] = b[0] << k
	return out
}

// shiftRight moves every bit k squares towards lower indices, 0 <= k < 64.
func (b Bits) shiftRight(k uint) Bits {
	var out Bits
	for i := 0; i < bitsWords-1; i++ {
		out[i] = b[i]>>k | b[i+1]<<(64-k)
	}
	out[bitsWords-1] = b[bitsWords-1] >> k
	return out
}

// Squares returns the indices of all set bits in ascending order.
func (b Bits) Squares() []int {
	sqs := make([]int, 0, b.Popcount())
	for i, w := range b {
		for w != 0 {
			sqs = append(sqs, i*64+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return sqs
}

// Layout holds the constants derived from a board dimension: the N*N
// field mask and the two column masks that keep a horizontal shift from
// wrapping between rows. A Layout is immutable once built.
type Layout struct {
	Size  int
	Field Bits // every square of the N*N board
	West  Bits // every square except the westmost column
	East  Bits // every square except the eastmost column
}

// NewLayout computes the masks for an N*N board. Callers validate N.
func NewLayout(size int) Layout {
	l := Layout{Size: size}
	for i := 0; i < size*size; i++ {
		l.Field = l.Field.With(i)
		if i%size != 0 {
			l.West = l.West.With(i)
		}
		if i%size != size-1 {
			l.East = l.East.With(i)
		}
	}
	return l
}

// Shift moves every bit one square in direction d. Bits in the edge
// column facing the horizontal component are masked out first, so a
// shift never wraps a row, and the result stays inside the field.
func (l Layout) Shift(b Bits, d Direction) Bits {
	n := uint(l.Size)
	switch d {
	case North:
		return b.shiftRight(n)
	case South:
		return b.shiftLeft(n).And(l.Field)
	case East:
		return b.And(l.East).shiftLeft(1).And(l.Field)
	case West:
		return b.And(l.West).shiftRight(1)
	case NorthEast:
		return b.And(l.East).shiftRight(n - 1)
	case NorthWest:
		return b.And(l.West).shiftRight(n + 1)
	case SouthEast:
		return b.And(l.East).shiftLeft(n + 1).And(l.Field)
	default: // SouthWest
		return b.And(l.West).shiftLeft(n - 1).And(l.Field)
	}
}
