// othello is a terminal Othello/Reversi game: human or artificial
// players on a configurable board, with blitz clocks, save files, a
// single-move contest mode and an AI-vs-AI benchmark mode.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"othello/config"
	"othello/engine"
	"othello/game"
	"othello/metrics"
	"othello/player"
	"othello/savefile"
)

const programVersion = "1.0.0"

var (
	configPath = flag.String("config", "", "load configuration from a YAML file")
	boardSize  = flag.Int("size", 0, "board size (even, 4-16)")
	debugMode  = flag.Bool("debug", false, "enable debug logging")
	version    = flag.Bool("version", false, "print version and exit")

	blitzMode = flag.Bool("blitz", false, "enable blitz mode with per-side clocks")
	blitzTime = flag.Duration("time", 0, "blitz time per side (default 30m)")

	contestFile = flag.String("contest", "", "contest mode: load save FILE, play one AI move, save back")

	aiSeats     = flag.String("ai", "", "artificial seats: X, O, A (both) or B (both, separate configs)")
	aiAlgorithm = flag.String("ai-algorithm", "", "search algorithm: minimax or alphabeta")
	aiDepth     = flag.Int("ai-depth", 0, "search depth in plies")
	aiHeuristic = flag.String("ai-heuristic", "", "heuristic: coin_parity, corners_captured, mobility, frontier, positional or all_in_one")
	aiTime      = flag.Duration("ai-time", -1, "wall-clock budget per AI move (0 disables)")
	aiShallow   = flag.Bool("ai-shallow", false, "enable shallow root-move ordering")

	whiteAlgorithm = flag.String("white-ai-algorithm", "", "white search algorithm (seats B)")
	whiteDepth     = flag.Int("white-ai-depth", 0, "white search depth (seats B)")
	whiteHeuristic = flag.String("white-ai-heuristic", "", "white heuristic (seats B)")
	whiteTime      = flag.Duration("white-ai-time", -1, "white budget per move (seats B)")
	whiteShallow   = flag.Bool("white-ai-shallow", false, "white shallow ordering (seats B)")

	numGames   = flag.Int("games", 10, "games to play in AI benchmark mode")
	benchmark  = flag.Bool("benchmark", false, "AI benchmark mode: play -games AI-vs-AI games and write CSV metrics")
	metricsDir = flag.String("metrics-dir", "benchmarks", "directory for benchmark CSV output")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("othello version %s\n", programVersion)
		return
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "othello: %v\n", err)
		os.Exit(1)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	switch cfg.Mode {
	case config.ModeContest:
		err = runContest(cfg, *contestFile)
	case config.ModeAI:
		err = runBenchmark(cfg, *numGames, *metricsDir)
	default:
		err = runInteractive(cfg, flag.Arg(0))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "othello: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig layers flags over the optional config file over defaults.
func buildConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if *boardSize > 0 {
		cfg.Size = *boardSize
	}
	if *debugMode {
		cfg.Debug = true
	}
	if *blitzMode {
		cfg.Mode = config.ModeBlitz
	}
	if *blitzTime > 0 {
		cfg.Mode = config.ModeBlitz
		cfg.BlitzTime = *blitzTime
	}
	if *contestFile != "" {
		cfg.Mode = config.ModeContest
	}
	if *benchmark {
		cfg.Mode = config.ModeAI
	}
	if *aiSeats != "" {
		cfg.AIColor = *aiSeats
	}
	applyAIFlags(&cfg.Black, *aiAlgorithm, *aiDepth, *aiHeuristic, *aiTime, *aiShallow)
	if cfg.AIColor == "B" {
		applyAIFlags(&cfg.White, *whiteAlgorithm, *whiteDepth, *whiteHeuristic, *whiteTime, *whiteShallow)
	} else {
		cfg.White = cfg.Black
	}

	return cfg, cfg.Validate()
}

func applyAIFlags(ai *config.AI, algorithm string, depth int, heuristic string, budget time.Duration, shallow bool) {
	if algorithm != "" {
		ai.Algorithm = algorithm
	}
	if depth > 0 {
		ai.Depth = depth
	}
	if heuristic != "" {
		ai.Heuristic = heuristic
	}
	if budget >= 0 {
		ai.Time = budget
	}
	if shallow {
		ai.Shallow = true
	}
}

// seatFor builds the seat playing side s, given the prompt used for
// human seats.
func seatFor(cfg config.Config, s game.Side, prompt func(*game.GameState) (game.Move, error)) player.Player {
	artificial := false
	switch cfg.AIColor {
	case "A", "B":
		artificial = true
	case "X":
		artificial = s == game.Black
	case "O":
		artificial = s == game.White
	}
	if !artificial {
		return &player.Human{Prompt: prompt}
	}
	if s == game.White {
		return player.NewAI(cfg.White.Searcher())
	}
	return player.NewAI(cfg.Black.Searcher())
}

// runContest loads a save, computes a single AI move for the side to
// move, prints it, and writes the advanced state back.
func runContest(cfg config.Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("contest: %w", err)
	}
	state, err := savefile.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("contest: %w", err)
	}
	if state.IsTerminal() {
		return fmt.Errorf("contest: game in %s is already over", path)
	}

	ai := cfg.Black
	if cfg.AIColor == "B" && state.Turn() == game.White {
		ai = cfg.White
	}
	move, result := ai.Searcher().FindMove(state)
	log.Info().
		Str("move", move.Notation(state.Size())).
		Int("score", result.Score).
		Int("depth", result.Depth).
		Uint64("nodes", result.Nodes).
		Bool("timed_out", result.TimedOut).
		Msg("contest move found")
	if err := state.ApplyMove(move); err != nil {
		return fmt.Errorf("contest: %w", err)
	}
	fmt.Println(move.Notation(state.Size()))
	if err := os.WriteFile(path, []byte(savefile.Export(state)), 0644); err != nil {
		return fmt.Errorf("contest: %w", err)
	}
	return nil
}

// runBenchmark plays AI-vs-AI games and writes per-game and per-move
// search metrics as CSV.
func runBenchmark(cfg config.Config, games int, outDir string) error {
	writer, err := metrics.NewWriter(outDir)
	if err != nil {
		return err
	}
	agents := []metrics.AgentConfig{
		agentConfig(1, cfg.Black),
		agentConfig(2, cfg.White),
	}
	if err := writer.WriteAgentConfigs(agents); err != nil {
		return err
	}

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for id := 1; id <= games; id++ {
		state, err := game.NewGame(cfg.Size, 0)
		if err != nil {
			return err
		}
		seats := [2]*player.AI{player.NewAI(cfg.Black.Searcher()), player.NewAI(cfg.White.Searcher())}
		eng := engine.New(state, seats[game.Black], seats[game.White])

		start := time.Now()
		for !state.IsTerminal() {
			side := state.Turn()
			asked := !state.MustPass()
			if err := eng.Step(); err != nil {
				return err
			}
			if asked {
				result := seats[side].LastResult()
				moveRecords = append(moveRecords, metrics.NewMoveRecord(
					id, state.Plies(), side.String(), result.Move.Notation(state.Size()), result))
			}
		}
		outcome := state.Winner()
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         id,
			BlackAgent: agents[0].ID,
			WhiteAgent: agents[1].ID,
			Winner:     outcome.String(),
			Plies:      state.Plies(),
			BlackDiscs: state.Position().Count(game.Black),
			WhiteDiscs: state.Position().Count(game.White),
			StartTime:  start,
			EndTime:    time.Now(),
		})
		fmt.Printf("game %d: %s (%d-%d in %d plies)\n", id, outcome,
			state.Position().Count(game.Black), state.Position().Count(game.White), state.Plies())
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	fmt.Printf("metrics written to %s\n", writer.Dir())
	return nil
}

func agentConfig(id int, ai config.AI) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:        id,
		Algorithm: ai.Algorithm,
		Depth:     ai.Depth,
		Heuristic: ai.Heuristic,
		TimeLimit: ai.Time,
		Shallow:   ai.Shallow,
	}
}
