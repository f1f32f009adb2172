package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// LeaderboardRow is the CSV shape of one final leaderboard entry.
type LeaderboardRow struct {
	Rank     int     `csv:"rank"`
	ID       uint64  `csv:"creature_id"`
	Distance float64 `csv:"distance"`
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir            string
	populationFile *os.File

	populationHeaderWritten bool
}

// NewOutputManager creates an output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	populationPath := filepath.Join(dir, "population.csv")
	f, err := os.Create(populationPath)
	if err != nil {
		return nil, fmt.Errorf("creating population.csv: %w", err)
	}

	return &OutputManager{dir: dir, populationFile: f}, nil
}

// WriteWindow writes one window stats record to population.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.populationHeaderWritten {
		if err := gocsv.Marshal(records, om.populationFile); err != nil {
			return fmt.Errorf("writing population stats: %w", err)
		}
		om.populationHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.populationFile); err != nil {
			return fmt.Errorf("writing population stats: %w", err)
		}
	}

	return nil
}

// WriteLeaderboard dumps the current ranking to leaderboard.csv,
// overwriting any previous dump.
func (om *OutputManager) WriteLeaderboard(lb *Leaderboard) error {
	if om == nil {
		return nil
	}

	rows := make([]LeaderboardRow, 0, len(lb.Top()))
	for _, e := range lb.Top() {
		rows = append(rows, LeaderboardRow{Rank: e.Rank, ID: e.ID, Distance: e.Distance})
	}

	path := filepath.Join(om.dir, "leaderboard.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating leaderboard.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing leaderboard: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	if om.populationFile != nil {
		return om.populationFile.Close()
	}
	return nil
}
