package searcher

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"othello/game"
)

// Result describes one completed FindMove call.
type Result struct {
	Move     game.Move
	Score    int
	Depth    int // deepest fully completed iteration; 0 when the budget beat depth 1
	Nodes    uint64
	Elapsed  time.Duration
	TimedOut bool
}

// errDeadline aborts the in-flight iteration when the budget runs out.
// It is control flow internal to the search, never surfaced to callers.
var errDeadline = errors.New("search deadline exceeded")

// search is the per-invocation state: an isolated copy of the game, the
// perspective to maximize for, and the deadline bookkeeping.
type search struct {
	state     *game.GameState
	side      game.Side
	heuristic game.Heuristic
	deadline  time.Time
	timed     bool
	nodes     uint64
}

// rootMove pairs a root destination with its last known score, for
// shallow ordering.
type rootMove struct {
	move  game.Move
	score int
}

// FindMove returns the best move for the side to move in state. The
// caller's state is never touched: the search applies and undoes moves
// on a private, untimed copy. With a time limit set the search is
// anytime: it deepens iteratively and keeps the best move of the
// deepest completed iteration as the incumbent, which is what a timeout
// returns. With no legal destination the result is a pass.
func (s *Searcher) FindMove(state *game.GameState) (game.Move, Result) {
	start := time.Now()
	sr := &search{
		state:     state.Copy(),
		side:      state.Turn(),
		heuristic: s.heuristic,
	}
	if s.limit > 0 {
		sr.timed = true
		sr.deadline = start.Add(s.limit)
	}

	legal := sr.state.LegalMoves().Squares()
	if len(legal) == 0 {
		move := game.Pass(sr.side)
		return move, Result{Move: move, Elapsed: time.Since(start)}
	}

	roots := make([]rootMove, len(legal))
	for i, sq := range legal {
		roots[i] = rootMove{move: game.Move{Square: sq, Side: sr.side}}
	}

	// Depth cannot usefully exceed the plies left in the game.
	depth := s.maxDepth
	if empties := sr.state.Position().Empty().Popcount(); depth > empties {
		depth = empties
	}
	if depth < 1 {
		depth = 1
	}

	// Incumbent slot: only a fully completed iteration overwrites it, so
	// a timeout never surfaces a half-pruned score. Until anything
	// completes it holds the first legal move.
	incumbent := Result{Move: roots[0].move}

	timedOut := false
	if s.shallow && len(roots) > 1 {
		timedOut = !s.order(sr, roots, &incumbent)
	}

	for d := 1; !timedOut && d <= depth; d++ {
		best, err := s.searchRoot(sr, roots, d)
		if err != nil {
			timedOut = true
			break
		}
		incumbent = best
		log.Debug().
			Int("depth", d).
			Str("move", best.Move.Notation(sr.state.Size())).
			Int("score", best.Score).
			Uint64("nodes", sr.nodes).
			Msg("iteration complete")
	}

	incumbent.Nodes = sr.nodes
	incumbent.Elapsed = time.Since(start)
	incumbent.TimedOut = timedOut
	return incumbent.Move, incumbent
}

// order runs the shallow pre-ordering pass: a fixed shallow evaluation
// of every root move, then a best-first stable sort. Better ordering
// only speeds alpha-beta up; it cannot change a completed search's
// result. Returns false when the deadline struck mid-pass, leaving the
// scored prefix sorted and the incumbent at the best scored move.
func (s *Searcher) order(sr *search, roots []rootMove, incumbent *Result) bool {
	scored := len(roots)
	for i := range roots {
		if err := sr.state.ApplyMove(roots[i].move); err != nil {
			panic(err)
		}
		score, err := sr.alphabeta(shallowDepth-1, -scoreInf, scoreInf)
		if uerr := sr.state.UndoMove(); uerr != nil {
			panic(uerr)
		}
		if err != nil {
			scored = i
			break
		}
		roots[i].score = score
		if i == 0 || score > incumbent.Score {
			incumbent.Move, incumbent.Score = roots[i].move, score
		}
	}
	slices.SortStableFunc(roots[:scored], func(a, b rootMove) int {
		return b.score - a.score
	})
	return scored == len(roots)
}

// searchRoot runs one full-depth iteration over the root moves and
// returns the best move of that iteration. Ties keep the earliest move
// in the current order, so repeated runs are deterministic.
func (s *Searcher) searchRoot(sr *search, roots []rootMove, depth int) (Result, error) {
	best := Result{Score: -scoreInf, Depth: depth}
	alpha, beta := -scoreInf, scoreInf
	for i := range roots {
		if err := sr.state.ApplyMove(roots[i].move); err != nil {
			panic(err)
		}
		var score int
		var err error
		if s.algorithm == AlphaBeta {
			score, err = sr.alphabeta(depth-1, alpha, beta)
		} else {
			score, err = sr.minimax(depth - 1)
		}
		if uerr := sr.state.UndoMove(); uerr != nil {
			panic(uerr)
		}
		if err != nil {
			return Result{}, err
		}
		if score > best.Score {
			best.Move, best.Score = roots[i].move, score
		}
		if s.algorithm == AlphaBeta && score > alpha {
			alpha = score
		}
	}
	return best, nil
}

// expand is the per-node bookkeeping: count the node and poll the
// deadline, so an overrun is bounded by a single node's work.
func (sr *search) expand() error {
	sr.nodes++
	if sr.timed && time.Now().After(sr.deadline) {
		return errDeadline
	}
	return nil
}

// leaf evaluates the current position for the searching side.
func (sr *search) leaf() int {
	return sr.heuristic(sr.state.Position(), sr.side)
}

// descend applies one ply, recurses, and undoes it again. The forced
// pass is the ply when moves is empty.
func (sr *search) descend(sq int, recurse func() (int, error)) (int, error) {
	move := game.Move{Square: sq, Side: sr.state.Turn()}
	if err := sr.state.ApplyMove(move); err != nil {
		panic(err)
	}
	score, err := recurse()
	if uerr := sr.state.UndoMove(); uerr != nil {
		panic(uerr)
	}
	return score, err
}

func (sr *search) minimax(depth int) (int, error) {
	if err := sr.expand(); err != nil {
		return 0, err
	}
	if depth == 0 || sr.state.Position().GameOver() {
		return sr.leaf(), nil
	}
	moves := sr.state.LegalMoves().Squares()
	if len(moves) == 0 {
		return sr.descend(game.PassSquare, func() (int, error) {
			return sr.minimax(depth - 1)
		})
	}
	maximizing := sr.state.Turn() == sr.side
	best := scoreInf
	if maximizing {
		best = -scoreInf
	}
	for _, sq := range moves {
		score, err := sr.descend(sq, func() (int, error) {
			return sr.minimax(depth - 1)
		})
		if err != nil {
			return 0, err
		}
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best, nil
}

// alphabeta is minimax with an (alpha, beta) window threaded through:
// once alpha meets beta the remaining siblings cannot change what the
// parent accepts and are skipped. Same best score as minimax at equal
// depth, in less work.
func (sr *search) alphabeta(depth, alpha, beta int) (int, error) {
	if err := sr.expand(); err != nil {
		return 0, err
	}
	if depth == 0 || sr.state.Position().GameOver() {
		return sr.leaf(), nil
	}
	moves := sr.state.LegalMoves().Squares()
	if len(moves) == 0 {
		return sr.descend(game.PassSquare, func() (int, error) {
			return sr.alphabeta(depth-1, alpha, beta)
		})
	}
	if sr.state.Turn() == sr.side {
		best := -scoreInf
		for _, sq := range moves {
			score, err := sr.descend(sq, func() (int, error) {
				return sr.alphabeta(depth-1, alpha, beta)
			})
			if err != nil {
				return 0, err
			}
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best, nil
	}
	best := scoreInf
	for _, sq := range moves {
		score, err := sr.descend(sq, func() (int, error) {
			return sr.alphabeta(depth-1, alpha, beta)
		})
		if err != nil {
			return 0, err
		}
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	return best, nil
}
