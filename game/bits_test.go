package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitsSetOperations(t *testing.T) {
	t.Run("setting and clearing across word boundaries", func(t *testing.T) {
		b := Bits{}.With(0).With(63).With(64).With(200)

		require.True(t, b.Get(0))
		require.True(t, b.Get(63))
		require.True(t, b.Get(64))
		require.True(t, b.Get(200))
		require.False(t, b.Get(1))
		require.Equal(t, 4, b.Popcount())

		b = b.Without(63)
		require.False(t, b.Get(63), "Cleared bit should read as unset")
		require.Equal(t, 3, b.Popcount())
	})

	t.Run("squares enumerate ascending", func(t *testing.T) {
		b := Bits{}.With(130).With(5).With(64)
		require.Equal(t, []int{5, 64, 130}, b.Squares())
	})

	t.Run("boolean combinations", func(t *testing.T) {
		a := Bits{}.With(1).With(2)
		b := Bits{}.With(2).With(3)

		require.Equal(t, Bits{}.With(2), a.And(b))
		require.Equal(t, Bits{}.With(1).With(2).With(3), a.Or(b))
		require.Equal(t, Bits{}.With(1).With(3), a.Xor(b))
		require.Equal(t, Bits{}.With(1), a.AndNot(b))
		require.True(t, Bits{}.IsZero())
		require.False(t, a.IsZero())
	})
}

func TestLayoutShift(t *testing.T) {
	l := NewLayout(8)
	// d4: row 3, column 3.
	center := Bits{}.With(3*8 + 3)

	t.Run("interior square moves one step in every direction", func(t *testing.T) {
		wants := map[Direction]int{
			North:     2*8 + 3,
			South:     4*8 + 3,
			East:      3*8 + 4,
			West:      3*8 + 2,
			NorthEast: 2*8 + 4,
			NorthWest: 2*8 + 2,
			SouthEast: 4*8 + 4,
			SouthWest: 4*8 + 2,
		}
		for d, want := range wants {
			require.Equal(t, Bits{}.With(want), l.Shift(center, d),
				"Shift in direction %v should land on square %d", d, want)
		}
	})

	t.Run("shifts never wrap a row", func(t *testing.T) {
		east := Bits{}.With(7) // h1
		require.True(t, l.Shift(east, East).IsZero(), "East shift off the east column should vanish")
		require.True(t, l.Shift(east, NorthEast).IsZero())
		require.True(t, l.Shift(east, SouthEast).IsZero(), "SouthEast shift off the east column should vanish")
		require.True(t, l.Shift(east, South).Get(15), "A pure vertical shift keeps the east column")

		west := Bits{}.With(0) // a1
		require.True(t, l.Shift(west, West).IsZero(), "West shift off the west column should vanish")
		require.True(t, l.Shift(west, North).IsZero())
		require.True(t, l.Shift(west, NorthWest).IsZero())
	})

	t.Run("shifts never leave the field", func(t *testing.T) {
		bottom := Bits{}.With(7*8 + 0) // a8
		require.True(t, l.Shift(bottom, South).IsZero(), "South shift off the last row should vanish")
		require.True(t, l.Shift(bottom, SouthEast).IsZero(), "SouthEast shift off the last row should vanish")
	})

	t.Run("masks cover the right columns", func(t *testing.T) {
		require.Equal(t, 8*8, l.Field.Popcount())
		require.Equal(t, 8*7, l.West.Popcount())
		require.Equal(t, 8*7, l.East.Popcount())
		require.False(t, l.West.Get(8), "West mask excludes the a column")
		require.False(t, l.East.Get(15), "East mask excludes the h column")
	})
}

func TestLayoutShiftLargeBoard(t *testing.T) {
	l := NewLayout(16)
	// Square on the third word of the set: row 9, column 2.
	sq := 9*16 + 2
	b := Bits{}.With(sq)

	require.Equal(t, Bits{}.With(sq-16), l.Shift(b, North))
	require.Equal(t, Bits{}.With(sq+16), l.Shift(b, South))
	require.Equal(t, Bits{}.With(sq-15), l.Shift(b, NorthEast))
	require.Equal(t, Bits{}.With(sq+15), l.Shift(b, SouthWest))
}
