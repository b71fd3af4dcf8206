package tuning

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

// CheckpointVersion is the current checkpoint format version.
const CheckpointVersion = "1.0"

// IndividualData is the serializable form of an Individual.
type IndividualData struct {
	Prefs     solver.PreferenceSet `json:"prefs"`
	Fitness   float64              `json:"fitness"`
	Evaluated bool                 `json:"evaluated"`
}

// CheckpointData is the serializable state of a tuning run.
type CheckpointData struct {
	Config       *EvolutionConfig  `json:"config"`
	Generation   int               `json:"generation"`
	Population   []IndividualData  `json:"population"`
	BestEver     *IndividualData   `json:"best_ever,omitempty"`
	StatsHistory []GenerationStats `json:"stats_history"`
	Timestamp    time.Time         `json:"timestamp"`
	RNGSeed      int64             `json:"rng_seed"`
	Version      string            `json:"version"`
}

// SaveCheckpoint writes the engine's current state to path, atomically
// (write to a temp file, then rename).
func (e *EvolutionEngine) SaveCheckpoint(path string) error {
	if e.Population == nil {
		return fmt.Errorf("tuning: no population to save")
	}

	popData := make([]IndividualData, len(e.Population.Individuals))
	for i, ind := range e.Population.Individuals {
		popData[i] = IndividualData{Prefs: ind.Prefs, Fitness: ind.Fitness, Evaluated: ind.Evaluated}
	}

	var bestData *IndividualData
	if e.BestEver != nil {
		bestData = &IndividualData{Prefs: e.BestEver.Prefs, Fitness: e.BestEver.Fitness, Evaluated: e.BestEver.Evaluated}
	}

	checkpoint := CheckpointData{
		Config:       e.Config,
		Generation:   e.Population.Generation,
		Population:   popData,
		BestEver:     bestData,
		StatsHistory: e.StatsHistory,
		Timestamp:    time.Now(),
		RNGSeed:      e.Config.RandomSeed,
		Version:      CheckpointVersion,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("tuning: failed to create checkpoint directory: %w", err)
	}

	tempPath := path + ".tmp"
	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("tuning: failed to marshal checkpoint: %w", err)
	}
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("tuning: failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("tuning: failed to finalize checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint file written by SaveCheckpoint.
func LoadCheckpoint(path string) (*CheckpointData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tuning: failed to read checkpoint: %w", err)
	}
	var checkpoint CheckpointData
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("tuning: failed to unmarshal checkpoint: %w", err)
	}
	return &checkpoint, nil
}

// RestoreFromCheckpoint restores engine state from checkpoint data.
func (e *EvolutionEngine) RestoreFromCheckpoint(checkpoint *CheckpointData) error {
	if checkpoint == nil {
		return fmt.Errorf("tuning: nil checkpoint")
	}

	if checkpoint.Config != nil {
		e.Config = checkpoint.Config
	}

	individuals := make([]*Individual, len(checkpoint.Population))
	for i, data := range checkpoint.Population {
		individuals[i] = &Individual{Prefs: data.Prefs, Fitness: data.Fitness, Evaluated: data.Evaluated}
	}
	e.Population = NewPopulation(individuals)
	e.Population.Generation = checkpoint.Generation

	if checkpoint.BestEver != nil {
		e.BestEver = &Individual{
			Prefs:     checkpoint.BestEver.Prefs,
			Fitness:   checkpoint.BestEver.Fitness,
			Evaluated: checkpoint.BestEver.Evaluated,
		}
	}

	e.StatsHistory = checkpoint.StatsHistory
	return nil
}
