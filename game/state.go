package game

import "time"

// RecentMoves is how many applied moves the display history keeps.
const RecentMoves = 5

// Cell is the rendered content of one board square.
type Cell int8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Outcome is the result of a finished game.
type Outcome int8

const (
	Draw Outcome = iota
	BlackWins
	WhiteWins
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "black"
	case WhiteWins:
		return "white"
	default:
		return "draw"
	}
}

// won maps a side to its winning outcome.
func won(s Side) Outcome {
	if s == Black {
		return BlackWins
	}
	return WhiteWins
}

// HistoryEntry is one applied move together with its turn number. A turn
// spans two plies, black's then white's, so pass entries count too.
type HistoryEntry struct {
	Turn int
	Move Move
}

// record is one undo step: the position and clock state before the move.
type record struct {
	before Position
	clock  time.Duration // mover's remaining time before the move, timed games only
	move   Move
}

// GameState owns the current position, the side to move, the per-side
// clocks of a timed game and the applied-move history. No other
// component holds a mutable alias to any of it; searchers work on a
// Copy. All mutation goes through ApplyMove and UndoMove.
type GameState struct {
	pos       Position
	turn      Side
	timed     bool
	clocks    [2]time.Duration
	turnStart time.Time
	history   []record
}

// NewGame starts a game on an N*N board. A positive clock gives each
// side that much total thinking time (blitz play); zero means untimed.
func NewGame(size int, clock time.Duration) (*GameState, error) {
	pos, err := NewPosition(size)
	if err != nil {
		return nil, err
	}
	g := &GameState{pos: pos, turn: Black}
	if clock > 0 {
		g.timed = true
		g.clocks = [2]time.Duration{clock, clock}
		g.turnStart = time.Now()
	}
	return g, nil
}

// RestoreGame rebuilds an untimed state around a parsed position, used
// by the save-file loader when no replayable history is present.
func RestoreGame(pos Position, turn Side) *GameState {
	return &GameState{pos: pos, turn: turn}
}

// Copy returns an isolated snapshot for simulation. The copy is untimed:
// a searcher's private apply/undo must not drain the game clocks, and
// its terminal tests must not trip on a flag fall mid-search.
func (g *GameState) Copy() *GameState {
	history := make([]record, len(g.history))
	copy(history, g.history)
	return &GameState{pos: g.pos, turn: g.turn, history: history}
}

// Position returns the current board.
func (g *GameState) Position() Position {
	return g.pos
}

// Turn returns the side to move.
func (g *GameState) Turn() Side {
	return g.turn
}

// Size returns the board dimension N.
func (g *GameState) Size() int {
	return g.pos.Size()
}

// Timed reports whether blitz clocks are running.
func (g *GameState) Timed() bool {
	return g.timed
}

// Clock returns a side's remaining thinking time. In an untimed game it
// is zero. For the side to move the time spent on the current turn is
// already deducted.
func (g *GameState) Clock(s Side) time.Duration {
	remaining := g.clocks[s]
	if g.timed && s == g.turn {
		remaining -= time.Since(g.turnStart)
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// LegalMoves returns the destinations of the side to move. Empty means
// that side must pass.
func (g *GameState) LegalMoves() Bits {
	return g.pos.LegalMoves(g.turn)
}

// MustPass reports whether the side to move has no destination.
func (g *GameState) MustPass() bool {
	return g.LegalMoves().IsZero()
}

// ApplyMove validates and applies one ply. A pass is only legal while no
// destination exists (ErrMustPass guards the converse: a destination
// move while none is legal). In a timed game the thinking time since the
// previous ply is charged to the mover. The transition is atomic: on any
// error the state is untouched.
func (g *GameState) ApplyMove(m Move) error {
	if m.Side != g.turn {
		return &IllegalMoveError{Move: m, Size: g.Size()}
	}
	legal := g.LegalMoves()
	if m.IsPass() {
		if !legal.IsZero() {
			return &IllegalMoveError{Move: m, Size: g.Size()}
		}
	} else {
		if legal.IsZero() {
			return ErrMustPass
		}
		if !legal.Get(m.Square) {
			return &IllegalMoveError{Move: m, Size: g.Size()}
		}
	}

	rec := record{before: g.pos, clock: g.clocks[g.turn], move: m}
	if !m.IsPass() {
		g.pos = g.pos.Apply(g.turn, m.Square)
	}
	g.history = append(g.history, rec)
	if g.timed {
		g.clocks[g.turn] -= time.Since(g.turnStart)
		if g.clocks[g.turn] < 0 {
			g.clocks[g.turn] = 0
		}
		g.turnStart = time.Now()
	}
	g.turn = g.turn.Opponent()
	return nil
}

// UndoMove reverses the most recent ply by restoring the snapshot taken
// before it. Captures are not invertible from the resulting board alone,
// which is why ApplyMove keeps the full previous position.
func (g *GameState) UndoMove() error {
	if len(g.history) == 0 {
		return ErrCannotUndo
	}
	rec := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.pos = rec.before
	g.turn = rec.move.Side
	if g.timed {
		g.clocks[g.turn] = rec.clock
		g.turnStart = time.Now()
	}
	return nil
}

// IsTerminal re-evaluates the end-of-game predicate: neither side can
// move (a full board is one instance), or a blitz clock has run out. It
// is never cached; a stored flag could go stale across undos.
func (g *GameState) IsTerminal() bool {
	if g.timed && (g.Clock(Black) == 0 || g.Clock(White) == 0) {
		return true
	}
	return g.pos.GameOver()
}

// Winner returns the outcome of a finished game: a flag fall loses
// outright, otherwise the strict disc majority wins and equality is a
// draw. Calling it on a live game is a contract violation.
func (g *GameState) Winner() Outcome {
	if !g.IsTerminal() {
		panic("winner: game is not over")
	}
	if g.timed {
		if g.Clock(Black) == 0 && g.Clock(White) > 0 {
			return WhiteWins
		}
		if g.Clock(White) == 0 && g.Clock(Black) > 0 {
			return BlackWins
		}
	}
	black, white := g.pos.Count(Black), g.pos.Count(White)
	switch {
	case black > white:
		return BlackWins
	case white > black:
		return WhiteWins
	default:
		return Draw
	}
}

// TurnNumber returns the 1-based turn counter. There are two plies per
// turn, black's then white's; passes are counted like any other ply.
func (g *GameState) TurnNumber() int {
	return len(g.history)/2 + 1
}

// Plies returns how many plies have been applied.
func (g *GameState) Plies() int {
	return len(g.history)
}

// History returns the full applied-move sequence, oldest first, for
// external persistence.
func (g *GameState) History() []HistoryEntry {
	return g.historyTail(len(g.history))
}

// Recent returns the last RecentMoves applied moves for display.
func (g *GameState) Recent() []HistoryEntry {
	return g.historyTail(RecentMoves)
}

func (g *GameState) historyTail(n int) []HistoryEntry {
	if n > len(g.history) {
		n = len(g.history)
	}
	entries := make([]HistoryEntry, 0, n)
	for i := len(g.history) - n; i < len(g.history); i++ {
		entries = append(entries, HistoryEntry{Turn: i/2 + 1, Move: g.history[i].move})
	}
	return entries
}

// Grid renders the board as rows of cells, Grid()[row][col], for the
// presentation collaborators.
func (g *GameState) Grid() [][]Cell {
	n := g.Size()
	grid := make([][]Cell, n)
	for row := 0; row < n; row++ {
		grid[row] = make([]Cell, n)
		for col := 0; col < n; col++ {
			sq := row*n + col
			switch {
			case g.pos.Discs(Black).Get(sq):
				grid[row][col] = CellBlack
			case g.pos.Discs(White).Get(sq):
				grid[row][col] = CellWhite
			}
		}
	}
	return grid
}
