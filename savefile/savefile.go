// Package savefile reads and writes the textual save format: a "# board"
// section with the side to move and the grid, then an optional
// "# history" section listing the applied moves. Loading a save with
// history replays it from the starting position, which restores an
// undo-able state; without history only the bare position comes back.
package savefile

import (
	"fmt"
	"strings"

	"othello/game"
)

const (
	commentPrefix = "#"
	emptyCell     = '_'
)

// ParseError reports a malformed save together with the 1-based line it
// was detected on.
type ParseError struct {
	Msg  string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Msg, e.Line)
}

// ExportBoard renders the board section.
func ExportBoard(g *game.GameState) string {
	var b strings.Builder
	b.WriteString("# board\n")
	b.WriteByte(g.Turn().Symbol())
	for _, row := range g.Grid() {
		b.WriteByte('\n')
		for col, cell := range row {
			if col > 0 {
				b.WriteByte(' ')
			}
			switch cell {
			case game.CellBlack:
				b.WriteByte(game.Black.Symbol())
			case game.CellWhite:
				b.WriteByte(game.White.Symbol())
			default:
				b.WriteByte(emptyCell)
			}
		}
	}
	return b.String()
}

// ExportHistory renders the history section, one numbered turn of two
// plies per line.
func ExportHistory(g *game.GameState) string {
	var b strings.Builder
	b.WriteString("# history\n")
	for i, entry := range g.History() {
		notation := entry.Move.Notation(g.Size())
		if entry.Move.Side == game.Black {
			fmt.Fprintf(&b, "%d. X %s", entry.Turn, notation)
		} else {
			if i%2 == 0 {
				// A leading white ply still gets a numbered line.
				fmt.Fprintf(&b, "%d. X -1-1", entry.Turn)
			}
			fmt.Fprintf(&b, " O %s\n", notation)
		}
	}
	return b.String()
}

// Export renders the whole save: board plus history.
func Export(g *game.GameState) string {
	return ExportBoard(g) + "\n" + ExportHistory(g)
}

// Parse rebuilds a GameState from a save. The grid decides size, discs
// and side to move; when a history section follows, the moves are
// replayed from the starting position and must reproduce that grid.
func Parse(raw string) (*game.GameState, error) {
	p := &parser{lines: strings.Split(raw, "\n")}

	turn, err := p.parseTurn()
	if err != nil {
		return nil, err
	}
	pos, err := p.parseGrid()
	if err != nil {
		return nil, err
	}
	moves, err := p.parseHistory(pos.Size())
	if err != nil {
		return nil, err
	}
	if moves == nil {
		return game.RestoreGame(pos, turn), nil
	}

	replayed, err := game.NewGame(pos.Size(), 0)
	if err != nil {
		return nil, err
	}
	for _, m := range moves {
		if err := replayed.ApplyMove(m); err != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("history replay failed at %s: %v", m.Notation(pos.Size()), err), Line: p.line}
		}
	}
	if replayed.Position() != pos || replayed.Turn() != turn {
		return nil, &ParseError{Msg: "history does not reproduce the saved board", Line: p.line}
	}
	return replayed, nil
}

type parser struct {
	lines []string
	line  int // 0-based cursor
}

// next advances to the next line that is neither blank nor a comment.
func (p *parser) next() (string, bool) {
	for p.line < len(p.lines) {
		s := strings.TrimSpace(p.lines[p.line])
		p.line++
		if s == "" || strings.HasPrefix(s, commentPrefix) {
			continue
		}
		return s, true
	}
	return "", false
}

// peek reports whether any content line remains, without consuming it.
func (p *parser) peek() bool {
	for i := p.line; i < len(p.lines); i++ {
		s := strings.TrimSpace(p.lines[i])
		if s != "" && !strings.HasPrefix(s, commentPrefix) {
			return true
		}
	}
	return false
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: p.line}
}

func (p *parser) parseTurn() (game.Side, error) {
	s, ok := p.next()
	if !ok {
		return game.Black, p.errorf("trying to parse an empty board")
	}
	switch s {
	case "X":
		return game.Black, nil
	case "O":
		return game.White, nil
	default:
		return game.Black, p.errorf("expected to find color, got %q", s)
	}
}

func (p *parser) parseGrid() (game.Position, error) {
	first, ok := p.next()
	if !ok {
		return game.Position{}, p.errorf("reached end of file before the board")
	}
	size := len(strings.Fields(first))
	var black, white game.Bits
	row := first
	for y := 0; ; y++ {
		cells := strings.Fields(row)
		if len(cells) != size {
			return game.Position{}, p.errorf("expected %d cells, got %d", size, len(cells))
		}
		for x, cell := range cells {
			switch cell {
			case string(game.Black.Symbol()):
				black = black.With(y*size + x)
			case string(game.White.Symbol()):
				white = white.With(y*size + x)
			case string(emptyCell):
			default:
				return game.Position{}, p.errorf("unexpected cell %q", cell)
			}
		}
		if y == size-1 {
			break
		}
		row, ok = p.next()
		if !ok {
			return game.Position{}, p.errorf("reached end of file before finished parsing")
		}
	}
	pos, err := game.RestorePosition(size, black, white)
	if err != nil {
		return game.Position{}, p.errorf("%v", err)
	}
	return pos, nil
}

// parseHistory reads the remaining move lines. It returns nil (and no
// error) when the save carries no history section.
func (p *parser) parseHistory(size int) ([]game.Move, error) {
	if !p.peek() {
		return nil, nil
	}
	var moves []game.Move
	for {
		line, ok := p.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		// Layout: "<turn>. X <move> [O <move>]"
		if len(fields) < 3 || !strings.HasSuffix(fields[0], ".") {
			return nil, p.errorf("malformed history line %q", line)
		}
		fields = fields[1:]
		for len(fields) >= 2 {
			var side game.Side
			switch fields[0] {
			case "X":
				side = game.Black
			case "O":
				side = game.White
			default:
				return nil, p.errorf("expected player symbol, got %q", fields[0])
			}
			sq, err := game.ParseSquare(fields[1], size)
			if err != nil {
				return nil, p.errorf("%v", err)
			}
			moves = append(moves, game.Move{Square: sq, Side: side})
			fields = fields[2:]
		}
		if len(fields) != 0 {
			return nil, p.errorf("malformed history line %q", line)
		}
	}
	return moves, nil
}
