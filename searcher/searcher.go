// Package searcher implements the depth- and time-bounded adversarial
// search that picks moves for an artificial player.
package searcher

import (
	"time"

	"othello/game"
)

// Algorithm selects the tree-walk variant.
type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
)

func (a Algorithm) String() string {
	if a == AlphaBeta {
		return "alphabeta"
	}
	return "minimax"
}

// Default search parameters, matching the shipped configuration.
const (
	DefaultDepth = 3
	shallowDepth = 2 // pre-ordering pass depth
)

// Score bounds. Leaf scores are heuristic values well inside these.
const (
	scoreInf = 1 << 20
)

// Searcher holds the immutable configuration of one artificial player's
// search. Build it once with New and reuse it across moves; every
// FindMove call works on its own private state.
type Searcher struct {
	algorithm Algorithm
	maxDepth  int
	limit     time.Duration
	shallow   bool
	heuristic game.Heuristic
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithAlgorithm selects minimax or alpha-beta.
func WithAlgorithm(a Algorithm) Option {
	return func(s *Searcher) {
		s.algorithm = a
	}
}

// WithMaxDepth bounds the search depth in plies.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithTimeLimit sets the wall-clock budget for one FindMove call.
// Exceeding it is not an error: the search returns its incumbent.
func WithTimeLimit(limit time.Duration) Option {
	return func(s *Searcher) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithShallowOrdering enables the shallow pre-ordering pass over the
// root moves before the full-depth search.
func WithShallowOrdering(enabled bool) Option {
	return func(s *Searcher) {
		s.shallow = enabled
	}
}

// WithHeuristic sets the leaf evaluation.
func WithHeuristic(h game.Heuristic) Option {
	return func(s *Searcher) {
		if h != nil {
			s.heuristic = h
		}
	}
}

// New builds a Searcher. Defaults: minimax, depth 3, no time limit, no
// shallow ordering, corners-captured heuristic.
func New(options ...Option) *Searcher {
	s := &Searcher{
		algorithm: Minimax,
		maxDepth:  DefaultDepth,
		heuristic: game.CornersCaptured,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Algorithm returns the configured tree-walk variant.
func (s *Searcher) Algorithm() Algorithm {
	return s.algorithm
}

// MaxDepth returns the configured depth bound.
func (s *Searcher) MaxDepth() int {
	return s.maxDepth
}
