package savefile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"othello/game"
)

// sampleGame returns a 4x4 game with one applied move: black at b1.
func sampleGame(t *testing.T) *game.GameState {
	t.Helper()
	g, err := game.NewGame(4, 0)
	require.NoError(t, err)
	require.NoError(t, g.ApplyMove(game.Move{Square: 1, Side: game.Black}))
	return g
}

func TestExport(t *testing.T) {
	g := sampleGame(t)

	want := strings.Join([]string{
		"# board",
		"O",
		"_ X _ _",
		"_ X X _",
		"_ X O _",
		"_ _ _ _",
		"# history",
		"1. X b1",
	}, "\n")

	if diff := cmp.Diff(want, Export(g)); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportHistoryPairsPlies(t *testing.T) {
	g, err := game.NewGame(8, 0)
	require.NoError(t, err)
	require.NoError(t, g.ApplyMove(game.Move{Square: 2*8 + 3, Side: game.Black})) // d3
	require.NoError(t, g.ApplyMove(game.Move{Square: 2*8 + 2, Side: game.White})) // c3
	require.NoError(t, g.ApplyMove(game.Move{Square: 3*8 + 2, Side: game.Black})) // c4

	want := "# history\n1. X d3 O c3\n2. X c4"
	if diff := cmp.Diff(want, ExportHistory(g)); diff != "" {
		t.Errorf("ExportHistory() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportHistoryLeadingWhitePly(t *testing.T) {
	// A board-only save restores a state with no history; play from
	// there can open with a white ply, and the numbered pair format
	// still needs its black column filled with a pass.
	pos, err := game.RestorePosition(4,
		game.Bits{}.With(1).With(5).With(6).With(9),
		game.Bits{}.With(10))
	require.NoError(t, err)
	g := game.RestoreGame(pos, game.White)
	require.NoError(t, g.ApplyMove(game.Move{Square: 8, Side: game.White})) // a3

	want := "# history\n1. X -1-1 O a3\n"
	if diff := cmp.Diff(want, ExportHistory(g)); diff != "" {
		t.Errorf("ExportHistory() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRoundTrip(t *testing.T) {
	t.Run("a save with history replays to an undoable state", func(t *testing.T) {
		g := sampleGame(t)

		loaded, err := Parse(Export(g))

		require.NoError(t, err)
		require.Equal(t, g.Position(), loaded.Position())
		require.Equal(t, game.White, loaded.Turn())
		require.Equal(t, 1, loaded.Plies(), "Replayed history must survive the round trip")
		require.NoError(t, loaded.UndoMove(), "A loaded game should be undoable")
		require.Equal(t, game.Black, loaded.Turn())
	})

	t.Run("a board-only save restores the bare position", func(t *testing.T) {
		g := sampleGame(t)

		loaded, err := Parse(ExportBoard(g))

		require.NoError(t, err)
		require.Equal(t, g.Position(), loaded.Position())
		require.Equal(t, game.White, loaded.Turn())
		require.Equal(t, 0, loaded.Plies())
	})

	t.Run("a longer game survives intact", func(t *testing.T) {
		g, err := game.NewGame(8, 0)
		require.NoError(t, err)
		for ply := 0; ply < 12 && !g.IsTerminal(); ply++ {
			if g.MustPass() {
				require.NoError(t, g.ApplyMove(game.Pass(g.Turn())))
				continue
			}
			moves := g.LegalMoves().Squares()
			require.NoError(t, g.ApplyMove(game.Move{Square: moves[0], Side: g.Turn()}))
		}

		loaded, err := Parse(Export(g))
		require.NoError(t, err)
		require.Equal(t, g.Position(), loaded.Position())
		require.Equal(t, g.Turn(), loaded.Turn())
		require.Equal(t, g.Plies(), loaded.Plies())
	})

	t.Run("comments and blank lines are skipped", func(t *testing.T) {
		raw := "# a note\n\nX\n# another note\n_ X _ _\n_ X X _\n\n_ X O _\n_ _ _ _\n"
		loaded, err := Parse(raw)
		require.NoError(t, err)
		require.Equal(t, 4, loaded.Size())
		require.Equal(t, game.Black, loaded.Turn())
	})
}

func TestParseErrors(t *testing.T) {
	grid := "_ X _ _\n_ X X _\n_ X O _\n_ _ _ _"

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"empty input", "", "trying to parse an empty board"},
		{"bad color", "Z\n" + grid, "expected to find color"},
		{"truncated grid", "X\n_ X _ _\n_ X X _", "reached end of file"},
		{"ragged row", "X\n_ X _ _\n_ X X\n_ X O _\n_ _ _ _", "expected 4 cells, got 3"},
		{"unknown cell", "X\n_ X ? _\n_ X X _\n_ X O _\n_ _ _ _", "unexpected cell"},
		{"malformed history", "O\n" + grid + "\nX b1", "malformed history line"},
		{"bad history symbol", "O\n" + grid + "\n1. Q b1", "expected player symbol"},
		{"out of range move", "O\n" + grid + "\n1. X z9", "outside the 4x4 board"},
		{"illegal replayed move", "O\n" + grid + "\n1. X a1", "history replay failed"},
		{"history board mismatch", "X\n" + grid + "\n1. X b1", "does not reproduce the saved board"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Contains(t, parseErr.Msg, tc.want)
			require.Greater(t, parseErr.Line, 0, "Errors should carry the line they were found on")
		})
	}
}

func TestParseHistoryOvershoot(t *testing.T) {
	// One move too many: the replay runs fine but lands on a different
	// board than the saved grid.
	raw := "O\n_ X _ _\n_ X X _\n_ X O _\n_ _ _ _\n1. X b1 O a1\n"
	_, err := Parse(raw)
	require.Error(t, err, "A history that overshoots the saved board must be rejected")
}
