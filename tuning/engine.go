package tuning

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

// EvolutionConfig holds configuration for an evolutionary run.
type EvolutionConfig struct {
	NumPlayers           int     // Seats in each evaluated game
	PopulationSize       int     // Candidates per generation
	MaxGenerations       int     // Maximum generations to run
	ElitismRate          float64 // Top percentage preserved (0.1 = 10%)
	CrossoverRate        float64 // Probability of crossover (0.7 = 70%)
	TournamentSize       int     // Tournament selection size
	PlateauThreshold     int     // Generations without improvement before stopping (0 = disabled)
	ImprovementThreshold float64 // Minimum improvement to not be a plateau (0.005 = 0.5%)
	DiversityThreshold   float64 // Not read by the engine: every child is mutated once regardless of diversity
	RandomSeed           int64   // Random seed (0 = use time)
	NumWorkers           int     // Parallel evaluation workers (0 = auto)
	GamesPerEval         int     // Games per fitness evaluation
	MaxDepth             int     // Solver search depth used during evaluation
	MaxHasDepth          int     // Solver has-card search depth used during evaluation
	Verbose              bool    // Enable generation-progress logging
}

// DefaultConfig returns a default tuning configuration.
func DefaultConfig() *EvolutionConfig {
	return &EvolutionConfig{
		NumPlayers:           3,
		PopulationSize:       40,
		MaxGenerations:       30,
		ElitismRate:          0.1,
		CrossoverRate:        0.7,
		TournamentSize:       3,
		PlateauThreshold:     0,
		ImprovementThreshold: 0.005,
		DiversityThreshold:   0.1,
		RandomSeed:           0,
		NumWorkers:           0,
		GamesPerEval:         20,
		MaxDepth:             6,
		MaxHasDepth:          6,
		Verbose:              false,
	}
}

// GenerationStats holds statistics for a single generation.
type GenerationStats struct {
	Generation  int
	BestFitness float64
	AvgFitness  float64
	Diversity   float64
	Evaluations int
	Timestamp   time.Time
}

// EvolutionEngine runs the evolutionary loop over preference
// configurations.
type EvolutionEngine struct {
	Config       *EvolutionConfig
	Population   *Population
	StatsHistory []GenerationStats
	BestEver     *Individual
	Rng          *rand.Rand
	Evaluator    *ParallelEvaluator
	Crossover    *UniformCrossover

	OnGenerationComplete func(stats GenerationStats)
}

// NewEvolutionEngine creates a new tuning engine.
func NewEvolutionEngine(config *EvolutionConfig) *EvolutionEngine {
	if config == nil {
		config = DefaultConfig()
	}

	seed := config.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &EvolutionEngine{
		Config:       config,
		Rng:          rng,
		Evaluator:    NewParallelEvaluator(config.NumPlayers, config.MaxDepth, config.MaxHasDepth, config.NumWorkers),
		Crossover:    NewUniformCrossover(config.CrossoverRate),
		StatsHistory: make([]GenerationStats, 0, config.MaxGenerations),
	}
}

// InitializePopulation fills the population with random preference
// configurations.
func (e *EvolutionEngine) InitializePopulation() error {
	if e.Config.PopulationSize < 1 {
		return fmt.Errorf("tuning: population size must be positive")
	}
	if e.Config.Verbose {
		log.Printf("tuning: initializing population of size %d", e.Config.PopulationSize)
	}

	individuals := make([]*Individual, e.Config.PopulationSize)
	for i := range individuals {
		individuals[i] = &Individual{
			Prefs:     RandomPreferenceSet(e.Config.NumPlayers, e.Rng),
			Fitness:   0.0,
			Evaluated: false,
		}
	}

	e.Population = NewPopulation(individuals)
	return nil
}

// EvaluatePopulation scores every unevaluated individual.
func (e *EvolutionEngine) EvaluatePopulation() {
	if e.Population == nil {
		return
	}
	unevaluated := e.Population.GetUnevaluated()
	if len(unevaluated) == 0 {
		return
	}
	if e.Config.Verbose {
		log.Printf("tuning: evaluating %d individuals...", len(unevaluated))
	}

	seed := uint64(e.Rng.Int63())
	e.Evaluator.EvaluateIndividuals(unevaluated, e.Config.GamesPerEval, seed)

	if e.Config.Verbose {
		log.Printf("tuning: evaluation complete, avg fitness %.3f", e.Population.GetAverageFitness())
	}
}

// CreateOffspring builds the next generation via elitism plus
// selection/crossover/mutation.
func (e *EvolutionEngine) CreateOffspring() []*Individual {
	offspring := make([]*Individual, 0, e.Config.PopulationSize)

	nElite := int(float64(e.Config.PopulationSize) * e.Config.ElitismRate)
	for _, ind := range SelectElite(e.Population, nElite) {
		offspring = append(offspring, ind.Clone())
	}

	for len(offspring) < e.Config.PopulationSize {
		parent1 := TournamentSelection(e.Population, e.Config.TournamentSize, e.Rng)
		parent2 := TournamentSelection(e.Population, e.Config.TournamentSize, e.Rng)

		var child1, child2 solver.PreferenceSet
		if e.Rng.Float64() < e.Crossover.Probability() {
			child1, child2 = e.Crossover.Crossover(parent1.Prefs, parent2.Prefs, e.Rng)
		} else {
			child1, child2 = clonePrefs(parent1.Prefs), clonePrefs(parent2.Prefs)
		}

		Mutate(child1, e.Rng)
		Mutate(child2, e.Rng)

		offspring = append(offspring, &Individual{Prefs: child1})
		if len(offspring) < e.Config.PopulationSize {
			offspring = append(offspring, &Individual{Prefs: child2})
		}
	}

	return offspring[:e.Config.PopulationSize]
}

// CheckPlateau returns true if recent generations show no improvement.
func (e *EvolutionEngine) CheckPlateau() bool {
	if e.Config.PlateauThreshold <= 0 {
		return false
	}
	if len(e.StatsHistory) < e.Config.PlateauThreshold {
		return false
	}

	recent := e.StatsHistory[len(e.StatsHistory)-e.Config.PlateauThreshold:]
	bestRecent := recent[0].BestFitness
	oldestRecent := recent[0].BestFitness
	for _, s := range recent {
		if s.BestFitness > bestRecent {
			bestRecent = s.BestFitness
		}
	}
	if oldestRecent == 0 {
		return false
	}

	improvement := (bestRecent - oldestRecent) / oldestRecent
	return improvement < e.Config.ImprovementThreshold
}

// Evolve runs the generational loop to completion or plateau.
func (e *EvolutionEngine) Evolve() error {
	if e.Population == nil {
		if err := e.InitializePopulation(); err != nil {
			return err
		}
	}
	e.EvaluatePopulation()

	for generation := 0; generation < e.Config.MaxGenerations; generation++ {
		best := e.Population.GetBestIndividual()
		avgFitness := e.Population.GetAverageFitness()
		diversity := e.Population.ComputeDiversity()

		if e.BestEver == nil || best.Fitness > e.BestEver.Fitness {
			e.BestEver = best.Clone()
		}

		stats := GenerationStats{
			Generation:  generation,
			BestFitness: best.Fitness,
			AvgFitness:  avgFitness,
			Diversity:   diversity,
			Evaluations: len(e.Population.Individuals),
			Timestamp:   time.Now(),
		}
		e.StatsHistory = append(e.StatsHistory, stats)

		if e.OnGenerationComplete != nil {
			e.OnGenerationComplete(stats)
		}
		if e.Config.Verbose {
			log.Printf("tuning: generation %d best=%.4f avg=%.4f diversity=%.4f", generation, best.Fitness, avgFitness, diversity)
		}

		if e.CheckPlateau() {
			if e.Config.Verbose {
				log.Println("tuning: stopping due to plateau")
			}
			break
		}

		offspring := e.CreateOffspring()
		e.Population = NewPopulation(offspring)
		e.Population.Generation = generation + 1

		e.EvaluatePopulation()
	}

	return nil
}

// GetStats returns the recorded generation statistics.
func (e *EvolutionEngine) GetStats() []GenerationStats {
	return e.StatsHistory
}
