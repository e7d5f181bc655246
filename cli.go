package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"othello/config"
	"othello/engine"
	"othello/game"
	"othello/savefile"
)

// Command sentinels travel out of the human seat's prompt, through the
// engine's seat-error wrap, back to the interactive loop.
var (
	errQuit     = errors.New("quit")
	errSaveQuit = errors.New("save and quit")
	errRestart  = errors.New("restart")
	errForfeit  = errors.New("forfeit")
	errUndo     = errors.New("undo")
)

// cli holds the pieces of one interactive session.
type cli struct {
	cfg   config.Config
	input *bufio.Scanner
}

// runInteractive plays normal or blitz games at the terminal until the
// user quits.
func runInteractive(cfg config.Config, savePath string) error {
	c := &cli{cfg: cfg, input: bufio.NewScanner(os.Stdin)}

	state, err := c.initialState(savePath)
	if err != nil {
		return err
	}
	for {
		again, err := c.playGame(state)
		if err != nil || !again {
			return err
		}
		state, err = c.freshState()
		if err != nil {
			return err
		}
	}
}

func (c *cli) freshState() (*game.GameState, error) {
	var clock time.Duration
	if c.cfg.Mode == config.ModeBlitz {
		clock = c.cfg.BlitzTime
	}
	return game.NewGame(c.cfg.Size, clock)
}

func (c *cli) initialState(savePath string) (*game.GameState, error) {
	if savePath == "" {
		return c.freshState()
	}
	raw, err := os.ReadFile(savePath)
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	state, err := savefile.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("load save %s: %w", savePath, err)
	}
	fmt.Printf("Loaded game from %s\n", savePath)
	return state, nil
}

// playGame drives one game to its end, a forfeit or a quit. It reports
// whether the user asked for a fresh game.
func (c *cli) playGame(state *game.GameState) (bool, error) {
	eng := engine.New(state,
		seatFor(c.cfg, game.Black, c.prompt),
		seatFor(c.cfg, game.White, c.prompt))
	eng.PostPly = func(s *game.GameState, _ game.Move) {
		c.displayTurn(s)
	}
	c.displayTurn(state)

	for !state.IsTerminal() {
		err := eng.Step()
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			fmt.Println("Exiting without saving...")
			return false, nil
		case errors.Is(err, errSaveQuit):
			return false, c.saveGame(state, false)
		case errors.Is(err, errRestart):
			return true, nil
		case errors.Is(err, errForfeit):
			loser := state.Turn()
			fmt.Printf("%s forfeited.\n", loser)
			fmt.Printf("Game Over, %s wins!\n", loser.Opponent())
			return false, nil
		case errors.Is(err, errUndo):
			if undoErr := eng.Undo(); undoErr != nil {
				fmt.Println("Nothing to undo.")
			}
			c.displayTurn(state)
		default:
			return false, err
		}
	}

	fmt.Printf("Final score - Black: %d, White: %d\n",
		state.Position().Count(game.Black), state.Position().Count(game.White))
	switch outcome := state.Winner(); outcome {
	case game.Draw:
		fmt.Println("Game Over, it's a draw!")
	default:
		fmt.Printf("Game Over, %s wins!\n", outcome)
	}
	return false, nil
}

// prompt reads commands until one of them produces a move or leaves the
// game via a sentinel.
func (c *cli) prompt(state *game.GameState) (game.Move, error) {
	for {
		if state.Timed() {
			fmt.Printf("Black Time: %s\n", engine.ClockString(state, game.Black))
			fmt.Printf("White Time: %s\n", engine.ClockString(state, game.White))
		}
		fmt.Print("Enter your move or command: ")
		if !c.input.Scan() {
			return game.Move{}, errQuit
		}
		line := strings.ToLower(strings.TrimSpace(c.input.Text()))

		switch line {
		case "":
			continue
		case "?":
			printHelp(state.Size())
			continue
		case "r":
			printRules()
			c.input.Scan()
			continue
		case "s":
			return game.Move{}, errSaveQuit
		case "sh":
			if err := c.saveGame(state, true); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			continue
		case "ff":
			return game.Move{}, errForfeit
		case "restart":
			return game.Move{}, errRestart
		case "u", "undo":
			return game.Move{}, errUndo
		case "q":
			return game.Move{}, errQuit
		}

		sq, err := game.ParseSquare(line, state.Size())
		if err != nil || sq == game.PassSquare {
			fmt.Printf("Error: unrecognized string %s\nInvalid command. Please try again.\n", line)
			printHelp(state.Size())
			continue
		}
		if !state.LegalMoves().Get(sq) {
			fmt.Println("Invalid move. Not a legal play. Try again.")
			continue
		}
		return game.Move{Square: sq, Side: state.Turn()}, nil
	}
}

// saveGame prompts for a file name and writes the state, or only its
// history, in the save format.
func (c *cli) saveGame(state *game.GameState, onlyHistory bool) error {
	fmt.Print("enter save file name: ")
	if !c.input.Scan() {
		return errors.New("no save file name given")
	}
	name := strings.TrimSpace(c.input.Text()) + ".sav"

	content := savefile.Export(state)
	if onlyHistory {
		content = savefile.ExportHistory(state)
	}
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		return fmt.Errorf("save to %s: %w", name, err)
	}
	fmt.Printf("Game saved in %s\n", name)
	return nil
}

// displayTurn renders the turn header, the recent plays, the board with
// the current player's possible moves, and whose turn it is.
func (c *cli) displayTurn(state *game.GameState) {
	fmt.Printf("=== turn %d ===\n", state.TurnNumber())
	c.displayHistory(state)
	fmt.Println(renderBoard(state))
	c.displayPossibleMoves(state)
	side := state.Turn()
	fmt.Printf("\n%s's turn (%c)\n", side, side.Symbol())
}

func (c *cli) displayHistory(state *game.GameState) {
	recent := state.Recent()
	if len(recent) == 0 {
		return
	}
	lines := make([]string, 0, len(recent))
	for _, entry := range recent {
		if entry.Move.IsPass() {
			lines = append(lines, fmt.Sprintf("%s passed", entry.Move.Side))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s placed a piece at %s",
			entry.Move.Side, strings.ToUpper(entry.Move.Notation(state.Size()))))
	}
	fmt.Printf("Play history:\n%s\n\n", strings.Join(lines, "\n"))
}

func (c *cli) displayPossibleMoves(state *game.GameState) {
	fmt.Println("Possible moves: ")
	for _, sq := range state.LegalMoves().Squares() {
		fmt.Printf("%s ", game.Move{Square: sq, Side: state.Turn()}.Notation(state.Size()))
	}
	fmt.Println()
}

// renderBoard draws the position with column letters, row numbers and a
// dot on every square the side to move may play. Boards of size ten and
// up get an extra alignment space for the two-digit row numbers.
func renderBoard(state *game.GameState) string {
	size := state.Size()
	wide := size >= 10
	legal := state.LegalMoves()
	grid := state.Grid()

	var b strings.Builder
	b.WriteString("  ")
	if wide {
		b.WriteByte(' ')
	}
	for col := 0; col < size; col++ {
		if col > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte('a' + col))
	}
	for row := 0; row < size; row++ {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%d ", row+1)
		if wide && row < 9 {
			b.WriteByte(' ')
		}
		for col := 0; col < size; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			switch {
			case grid[row][col] == game.CellBlack:
				b.WriteByte('X')
			case grid[row][col] == game.CellWhite:
				b.WriteByte('O')
			case legal.Get(row*size + col):
				b.WriteString("·")
			default:
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}

func printHelp(size int) {
	last := fmt.Sprintf("%c%d", 'a'+size-1, size)
	fmt.Println("\nOthello Game Help")
	fmt.Println("=================")
	fmt.Printf("  a1     - Play at position a1 (up to %s)\n", last)
	fmt.Println("  ?      - Show this help message")
	fmt.Println("  r      - Show the game rules")
	fmt.Println("  q      - Quit without saving")
	fmt.Println("  s      - Save and quit")
	fmt.Println("  sh     - Save game history")
	fmt.Println("  ff     - Forfeit the current game")
	fmt.Println("  u      - Take back the last move")
	fmt.Println("  restart - Restart the game")
	fmt.Println("\nCoordinate format: [column][row] (e.g., a1, b2)")
}

func printRules() {
	fmt.Println("\nOthello/Reversi Rules")
	fmt.Println("====================")
	fmt.Println("Objective:")
	fmt.Println("  Have the majority of your color discs on the board when the game ends.")
	fmt.Println("\nSetup:")
	fmt.Println("  - The game begins with four discs placed in the center in a 2x2 pattern,")
	fmt.Println("    with same-colored discs positioned diagonally.")
	fmt.Println("  - Black moves first")
	fmt.Println("\nGameplay:")
	fmt.Println("  1. A move places a disc of your color on an empty square")
	fmt.Println("  2. A legal move must outflank at least one of your opponent's discs:")
	fmt.Println("     a straight line of opposing discs bordered at each end by your color")
	fmt.Println("  3. All outflanked discs flip to your color")
	fmt.Println("  4. A player with no legal move passes")
	fmt.Println("  5. The game ends when neither player can move")
	fmt.Println("\nWinning:")
	fmt.Println("  The player with the most discs at the end wins; equal counts draw.")
	fmt.Println("\nPress Enter to continue playing...")
}
