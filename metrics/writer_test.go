package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"othello/searcher"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	info, err := os.Stat(w.Dir())
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, root, filepath.Dir(w.Dir()), "The run directory lives under the root")
}

func TestWriteAgentConfigs(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	err = w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Algorithm: "alphabeta", Depth: 3, Heuristic: "corners_captured", TimeLimit: 5 * time.Second, Shallow: true},
	})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, []string{"id", "algorithm", "depth", "heuristic", "time_limit", "shallow"}, rows[0])
	require.Equal(t, []string{"1", "alphabeta", "3", "corners_captured", "5s", "true"}, rows[1])
}

func TestWriteGameRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err = w.WriteGameRecords([]GameRecord{
		{ID: 1, BlackAgent: 1, WhiteAgent: 2, Winner: "black", Plies: 60,
			BlackDiscs: 40, WhiteDiscs: 24, StartTime: at, EndTime: at.Add(time.Minute)},
	})
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, "black", rows[1][3])
	require.Equal(t, "2026-01-02T03:04:05Z", rows[1][7])
}

func TestWriteMoveRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	record := NewMoveRecord(1, 7, "white", "d3", searcher.Result{
		Score: 42, Depth: 3, Nodes: 1234, Elapsed: 20 * time.Millisecond,
	})

	require.NoError(t, w.WriteMoveRecords([]MoveRecord{record}))

	rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{"1", "7", "white", "d3", "42", "3", "1234", "20ms", "false"}, rows[1])
}
