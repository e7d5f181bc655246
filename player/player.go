// Package player provides the seats a game engine sequences: human,
// random and artificial players all answer the same NextMove call.
package player

import (
	"golang.org/x/exp/rand"

	"othello/game"
	"othello/searcher"
)

// Player is one seat at the board. NextMove must return a move legal in
// the given state, or a pass when the seat has no destination. The state
// is read-only for the seat; the engine applies the returned move.
type Player interface {
	NextMove(state *game.GameState) (game.Move, error)
}

// Human prompts for a move through a callback, keeping the
// prompt/parse loop outside the core.
type Human struct {
	Prompt func(state *game.GameState) (game.Move, error)
}

func (h *Human) NextMove(state *game.GameState) (game.Move, error) {
	if state.MustPass() {
		return game.Pass(state.Turn()), nil
	}
	return h.Prompt(state)
}

// Random plays a uniformly random legal move. Useful as a baseline
// opponent and in tests.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a random seat with its own seeded source.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) NextMove(state *game.GameState) (game.Move, error) {
	moves := state.LegalMoves().Squares()
	if len(moves) == 0 {
		return game.Pass(state.Turn()), nil
	}
	sq := moves[r.rng.Intn(len(moves))]
	return game.Move{Square: sq, Side: state.Turn()}, nil
}

// AI selects moves with a configured searcher and keeps the metrics of
// its most recent search for the benchmark collaborators.
type AI struct {
	searcher *searcher.Searcher
	last     searcher.Result
}

// NewAI wraps a searcher into a seat.
func NewAI(s *searcher.Searcher) *AI {
	return &AI{searcher: s}
}

func (a *AI) NextMove(state *game.GameState) (game.Move, error) {
	move, result := a.searcher.FindMove(state)
	a.last = result
	return move, nil
}

// LastResult returns the metrics of the most recent search.
func (a *AI) LastResult() searcher.Result {
	return a.last
}
