package tuning

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/MarcusRainbow/QuantumGoFish/player"
	"github.com/MarcusRainbow/QuantumGoFish/simulation"
	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

// ParallelEvaluator scores individuals by playing each preference
// configuration against itself many times and measuring how decisive
// (non-drawn) the resulting games are — ported from the teacher's
// genome ParallelEvaluator, with fitness.Evaluator.Evaluate replaced by
// simulation.AggregatedStats.DecisivenessRate.
type ParallelEvaluator struct {
	NumWorkers  int
	NumPlayers  int
	MaxDepth    int
	MaxHasDepth int
}

// NewParallelEvaluator creates a new parallel evaluator.
func NewParallelEvaluator(numPlayers, maxDepth, maxHasDepth, numWorkers int) *ParallelEvaluator {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &ParallelEvaluator{
		NumWorkers:  numWorkers,
		NumPlayers:  numPlayers,
		MaxDepth:    maxDepth,
		MaxHasDepth: maxHasDepth,
	}
}

// evaluationTask is a single individual's evaluation job.
type evaluationTask struct {
	index int
	prefs solver.PreferenceSet
}

// evaluationResult holds one individual's fitness.
type evaluationResult struct {
	index   int
	fitness float64
}

// EvaluateIndividuals runs gamesPerEval games for each individual in
// parallel and writes the resulting fitness back onto it.
func (pe *ParallelEvaluator) EvaluateIndividuals(individuals []*Individual, gamesPerEval int, seed uint64) {
	if len(individuals) == 0 {
		return
	}

	tasks := make(chan evaluationTask, len(individuals))
	results := make(chan evaluationResult, len(individuals))

	var wg sync.WaitGroup
	for w := 0; w < pe.NumWorkers; w++ {
		wg.Add(1)
		go pe.worker(tasks, results, &wg, gamesPerEval, seed)
	}

	for i, ind := range individuals {
		tasks <- evaluationTask{index: i, prefs: ind.Prefs}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	fitnesses := make([]float64, len(individuals))
	for result := range results {
		fitnesses[result.index] = result.fitness
	}

	for i, ind := range individuals {
		ind.Fitness = fitnesses[i]
		ind.Evaluated = true
	}
}

func (pe *ParallelEvaluator) worker(tasks <-chan evaluationTask, results chan<- evaluationResult, wg *sync.WaitGroup, gamesPerEval int, seed uint64) {
	defer wg.Done()
	for task := range tasks {
		results <- evaluationResult{index: task.index, fitness: pe.evaluatePrefs(task.prefs, gamesPerEval, seed)}
	}
}

func (pe *ParallelEvaluator) evaluatePrefs(prefs solver.PreferenceSet, gamesPerEval int, seed uint64) float64 {
	seatToInstance := make([]int, pe.NumPlayers)
	for i := range seatToInstance {
		seatToInstance[i] = i
	}

	roster := func(gameIndex int, rng *rand.Rand) ([]int, []player.Player) {
		instances := make([]player.Player, pe.NumPlayers)
		for i := 0; i < pe.NumPlayers; i++ {
			instances[i] = solver.NewCleverPlayer(pe.MaxDepth, pe.MaxHasDepth, 0, prefs, false)
		}
		return seatToInstance, instances
	}

	stats := simulation.RunBatch(pe.NumPlayers, gamesPerEval, seed, roster)
	return stats.DecisivenessRate()
}
