// Package engine sequences a game between two seats. It owns the only
// mutable GameState; seats see it read-only and searchers copy it.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"othello/game"
	"othello/player"
)

// MaxPlies caps a run as a stuck-loop guard. An N*N game needs at most
// N*N-4 placements plus interleaved passes, far below this.
const MaxPlies = 10000

// Engine drives one game to its end.
type Engine struct {
	state *game.GameState
	seats [2]player.Player // indexed by game.Side

	// PostPly, when set, runs after every applied ply, before the next
	// seat is asked to move. The CLI hooks rendering in here.
	PostPly func(*game.GameState, game.Move)
}

// New builds an engine around a fresh or loaded state.
func New(state *game.GameState, black, white player.Player) *Engine {
	return &Engine{state: state, seats: [2]player.Player{black, white}}
}

// State exposes the live game for rendering and persistence.
func (e *Engine) State() *game.GameState {
	return e.state
}

// Step plays a single ply: the seat to move is asked for a move, which
// is validated and applied. A stuck seat passes. Recoverable move
// errors are returned for re-prompting; the state is unchanged then.
func (e *Engine) Step() error {
	side := e.state.Turn()
	if e.state.MustPass() {
		log.Info().Str("side", side.String()).Msg("no legal moves, passing")
		if err := e.state.ApplyMove(game.Pass(side)); err != nil {
			return err
		}
		e.afterPly(game.Pass(side))
		return nil
	}

	move, err := e.seats[side].NextMove(e.state)
	if err != nil {
		return fmt.Errorf("seat %s: %w", side, err)
	}
	if err := e.state.ApplyMove(move); err != nil {
		return err
	}
	log.Debug().
		Str("side", side.String()).
		Str("move", move.Notation(e.state.Size())).
		Int("black", e.state.Position().Count(game.Black)).
		Int("white", e.state.Position().Count(game.White)).
		Msg("ply applied")
	e.afterPly(move)
	return nil
}

func (e *Engine) afterPly(move game.Move) {
	if e.PostPly != nil {
		e.PostPly(e.state, move)
	}
}

// Run loops Step until the game ends, then returns the outcome.
func (e *Engine) Run() (game.Outcome, error) {
	log.Info().
		Int("size", e.state.Size()).
		Bool("timed", e.state.Timed()).
		Msg("game started")
	for plies := 0; !e.state.IsTerminal(); plies++ {
		if plies > MaxPlies {
			return game.Draw, fmt.Errorf("game exceeded %d plies", MaxPlies)
		}
		if err := e.Step(); err != nil {
			return game.Draw, err
		}
	}
	outcome := e.state.Winner()
	log.Info().
		Str("winner", outcome.String()).
		Int("black", e.state.Position().Count(game.Black)).
		Int("white", e.state.Position().Count(game.White)).
		Msg("game over")
	return outcome, nil
}

// Undo takes back the last applied ply. When that ply was a pass it
// takes back the preceding disc placement as well, so an undo always
// rewinds a real move.
func (e *Engine) Undo() error {
	entries := e.state.History()
	if err := e.state.UndoMove(); err != nil {
		return err
	}
	if entries[len(entries)-1].Move.IsPass() {
		_ = e.state.UndoMove()
	}
	return nil
}

// ClockString renders a side's remaining blitz time as MM:SS.
func ClockString(state *game.GameState, s game.Side) string {
	total := int(state.Clock(s) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
