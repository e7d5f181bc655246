package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer persists benchmark records under a timestamped run directory.
type Writer struct {
	baseDir string
}

// NewWriter creates the run directory under root and returns a writer
// bound to it.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the run directory.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	return nil
}

// WriteAgentConfigs writes the benchmarked configurations.
func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Algorithm,
			strconv.Itoa(c.Depth),
			c.Heuristic,
			c.TimeLimit.String(),
			strconv.FormatBool(c.Shallow),
		})
	}
	header := []string{"id", "algorithm", "depth", "heuristic", "time_limit", "shallow"}
	return w.writeCSV("agent_configs.csv", header, rows)
}

// WriteGameRecords writes one row per finished game.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.BlackAgent),
			strconv.Itoa(r.WhiteAgent),
			r.Winner,
			strconv.Itoa(r.Plies),
			strconv.Itoa(r.BlackDiscs),
			strconv.Itoa(r.WhiteDiscs),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
		})
	}
	header := []string{"id", "black_agent", "white_agent", "winner", "plies", "black_discs", "white_discs", "start_time", "end_time"}
	return w.writeCSV("game_records.csv", header, rows)
}

// WriteMoveRecords writes one row per searched move.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Ply),
			r.Side,
			r.Move,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Depth),
			strconv.FormatUint(r.Nodes, 10),
			r.Elapsed.String(),
			strconv.FormatBool(r.TimedOut),
		})
	}
	header := []string{"game", "ply", "side", "move", "score", "depth", "nodes", "elapsed", "timed_out"}
	return w.writeCSV("move_records.csv", header, rows)
}
