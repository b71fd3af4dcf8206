package simulation

import (
	"math/rand"
	"runtime"
	"sync"
)

// GameJob is one unit of work handed to a RunBatchParallel worker.
type GameJob struct {
	GameIndex int
	Rng       *rand.Rand
}

// RunBatchParallelN runs numGames games across numWorkers goroutines. Use
// this when the caller already manages its own concurrency budget (e.g.
// package tuning evaluating several candidates at once) to avoid
// oversubscribing the machine.
func RunBatchParallelN(numPlayers, numGames int, seed uint64, roster Roster, numWorkers int) AggregatedStats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan GameJob, numGames)
	results := make(chan GameResult, numGames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, jobs, results, roster)
	}

	// Each game gets its own *rand.Rand, seeded deterministically from
	// the batch seed, so results are reproducible regardless of which
	// worker happens to pick up which job.
	rng := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i < numGames; i++ {
		jobs <- GameJob{GameIndex: i, Rng: rand.New(rand.NewSource(rng.Int63()))}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	return aggregateParallelResults(numPlayers, results, numGames)
}

// RunBatchParallel runs numGames games using one worker per CPU
// (runtime.NumCPU).
func RunBatchParallel(numPlayers, numGames int, seed uint64, roster Roster) AggregatedStats {
	return RunBatchParallelN(numPlayers, numGames, seed, roster, runtime.NumCPU())
}

func worker(wg *sync.WaitGroup, jobs <-chan GameJob, results chan<- GameResult, roster Roster) {
	defer wg.Done()
	for job := range jobs {
		results <- RunSingleGame(roster, job.GameIndex, job.Rng)
	}
}

func aggregateParallelResults(numPlayers int, results <-chan GameResult, numGames int) AggregatedStats {
	allResults := make([]GameResult, 0, numGames)
	for result := range results {
		allResults = append(allResults, result)
	}
	return aggregateResults(numPlayers, allResults)
}
