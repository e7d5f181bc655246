package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"othello/game"
)

func newStartState(t *testing.T, size int) *game.GameState {
	t.Helper()
	state, err := game.NewGame(size, 0)
	require.NoError(t, err)
	return state
}

func TestNewDefaults(t *testing.T) {
	s := New()
	require.Equal(t, Minimax, s.Algorithm())
	require.Equal(t, DefaultDepth, s.MaxDepth())
}

func TestOptions(t *testing.T) {
	s := New(
		WithAlgorithm(AlphaBeta),
		WithMaxDepth(5),
		WithTimeLimit(time.Second),
		WithShallowOrdering(true),
		WithHeuristic(game.AllInOne),
	)
	require.Equal(t, AlphaBeta, s.Algorithm())
	require.Equal(t, 5, s.MaxDepth())
}

func TestFindMoveReturnsLegalMove(t *testing.T) {
	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		t.Run(algorithm.String(), func(t *testing.T) {
			state := newStartState(t, 8)
			s := New(WithAlgorithm(algorithm), WithMaxDepth(3))

			move, result := s.FindMove(state)

			require.False(t, move.IsPass())
			require.True(t, state.LegalMoves().Get(move.Square), "The chosen move must be legal")
			require.Equal(t, game.Black, move.Side)
			require.Equal(t, 3, result.Depth, "All requested iterations should complete untimed")
			require.Greater(t, result.Nodes, uint64(0))
			require.False(t, result.TimedOut)
			require.Equal(t, game.Black, state.Turn(), "The caller's state must not be touched")
			require.Equal(t, 0, state.Plies())
		})
	}
}

func TestFindMovePassesWhenStuck(t *testing.T) {
	pos, err := game.RestorePosition(4, game.Bits{}.With(0), game.Bits{}.With(1))
	require.NoError(t, err)
	state := game.RestoreGame(pos, game.White)
	s := New(WithMaxDepth(3))

	move, result := s.FindMove(state)

	require.True(t, move.IsPass())
	require.Equal(t, game.White, move.Side)
	require.Equal(t, uint64(0), result.Nodes, "A forced pass needs no search")
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	// Pruning may skip subtrees but never changes the minimax value of a
	// completed search. Compare the two algorithms move by move along a
	// deterministic game prefix.
	state := newStartState(t, 6)
	plain := New(WithAlgorithm(Minimax), WithMaxDepth(3))
	pruned := New(WithAlgorithm(AlphaBeta), WithMaxDepth(3))

	for ply := 0; ply < 8 && !state.IsTerminal(); ply++ {
		if state.MustPass() {
			require.NoError(t, state.ApplyMove(game.Pass(state.Turn())))
			continue
		}
		moveA, resultA := plain.FindMove(state)
		moveB, resultB := pruned.FindMove(state)

		require.Equal(t, resultA.Score, resultB.Score, "Ply %d: scores must agree", ply)
		require.Equal(t, moveA, moveB, "Ply %d: first-in-order tie break keeps the moves aligned", ply)
		require.LessOrEqual(t, resultB.Nodes, resultA.Nodes, "Pruning should never visit more nodes")

		require.NoError(t, state.ApplyMove(moveA))
	}
}

func TestShallowOrderingKeepsTheResult(t *testing.T) {
	state := newStartState(t, 6)
	plain := New(WithAlgorithm(AlphaBeta), WithMaxDepth(4))
	ordered := New(WithAlgorithm(AlphaBeta), WithMaxDepth(4), WithShallowOrdering(true))

	_, resultA := plain.FindMove(state)
	_, resultB := ordered.FindMove(state)

	require.Equal(t, resultA.Score, resultB.Score, "Ordering is a speedup, not a semantic change")
}

func TestFindMoveIsDeterministic(t *testing.T) {
	state := newStartState(t, 8)
	s := New(WithAlgorithm(AlphaBeta), WithMaxDepth(3), WithShallowOrdering(true))

	first, _ := s.FindMove(state)
	for run := 0; run < 3; run++ {
		move, _ := s.FindMove(state)
		require.Equal(t, first, move, "Identical inputs must reproduce the move")
	}
}

func TestTimeLimit(t *testing.T) {
	t.Run("an exhausted budget still returns a defined move", func(t *testing.T) {
		state := newStartState(t, 8)
		s := New(WithAlgorithm(AlphaBeta), WithMaxDepth(20), WithTimeLimit(time.Nanosecond))

		move, result := s.FindMove(state)

		require.True(t, state.LegalMoves().Get(move.Square),
			"Even a depth-zero timeout must surface a legal incumbent")
		require.True(t, result.TimedOut)
		require.Less(t, result.Depth, 20)
	})

	t.Run("a generous budget completes every iteration", func(t *testing.T) {
		state := newStartState(t, 6)
		s := New(WithMaxDepth(2), WithTimeLimit(time.Minute))

		_, result := s.FindMove(state)

		require.False(t, result.TimedOut)
		require.Equal(t, 2, result.Depth)
	})

	t.Run("the search returns promptly after the deadline", func(t *testing.T) {
		state := newStartState(t, 8)
		limit := 50 * time.Millisecond
		s := New(WithAlgorithm(Minimax), WithMaxDepth(30), WithTimeLimit(limit))

		start := time.Now()
		s.FindMove(state)

		require.Less(t, time.Since(start), 10*limit, "Deadline polling bounds the overrun")
	})
}

func TestDepthClampsToRemainingSquares(t *testing.T) {
	// A 4x4 board has twelve empty squares at the start; a deeper request
	// cannot use them.
	state := newStartState(t, 4)
	s := New(WithAlgorithm(AlphaBeta), WithMaxDepth(64))

	move, result := s.FindMove(state)
	require.True(t, state.LegalMoves().Get(move.Square))
	require.LessOrEqual(t, result.Depth, 12, "Depth never exceeds the number of empty squares")
}
