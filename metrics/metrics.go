// Package metrics records per-move search statistics of AI-vs-AI
// benchmark games and writes them as CSV for offline analysis.
package metrics

import (
	"time"

	"othello/searcher"
)

// AgentConfig identifies one benchmarked searcher configuration.
type AgentConfig struct {
	ID        int
	Algorithm string
	Depth     int
	Heuristic string
	TimeLimit time.Duration
	Shallow   bool
}

// GameRecord summarizes one finished benchmark game.
type GameRecord struct {
	ID         int
	BlackAgent int // AgentConfig.ID
	WhiteAgent int // AgentConfig.ID
	Winner     string
	Plies      int
	BlackDiscs int
	WhiteDiscs int
	StartTime  time.Time
	EndTime    time.Time
}

// MoveRecord captures the search behind a single played move.
type MoveRecord struct {
	Game     int // GameRecord.ID
	Ply      int
	Side     string
	Move     string
	Score    int
	Depth    int
	Nodes    uint64
	Elapsed  time.Duration
	TimedOut bool
}

// NewMoveRecord flattens a search result into a record.
func NewMoveRecord(gameID, ply int, side, move string, r searcher.Result) MoveRecord {
	return MoveRecord{
		Game:     gameID,
		Ply:      ply,
		Side:     side,
		Move:     move,
		Score:    r.Score,
		Depth:    r.Depth,
		Nodes:    r.Nodes,
		Elapsed:  r.Elapsed,
		TimedOut: r.TimedOut,
	}
}
