// Package simulation runs batches of complete games and aggregates
// win/draw/turn-count statistics across them. It has no equivalent in the
// original Rust project; it is a natural fit for answering questions like
// "how often does player 2 win with these preferences, holding depth
// fixed?" and backs the fitness evaluation used by package tuning.
package simulation

import (
	"math/rand"
	"time"

	"github.com/MarcusRainbow/QuantumGoFish/fish"
	"github.com/MarcusRainbow/QuantumGoFish/game"
	"github.com/MarcusRainbow/QuantumGoFish/player"
)

// Roster builds the seat assignment and player instances for one game in
// a batch. gameIndex is the 0-based index of the game within the batch;
// rng is a random source seeded deterministically from the batch seed
// (shared by every game in RunBatch, one per game in RunBatchParallelN),
// available to rosters that want per-game variation.
type Roster func(gameIndex int, rng *rand.Rand) (seatToInstance []int, instances []player.Player)

// GameResult holds the outcome of a single game.
type GameResult struct {
	Winner     int
	Turns      int
	DurationNs uint64
}

// AggregatedStats summarizes a batch of game results. Wins is indexed by
// player id and sized to the number of seats in the batch's games.
type AggregatedStats struct {
	TotalGames    int
	Wins          []uint32
	Draws         uint32
	AvgTurns      float64
	MedianTurns   int
	AvgDurationNs uint64
}

// RunBatch plays numGames independent games built by roster, seeded
// deterministically from seed, and aggregates the results.
func RunBatch(numPlayers, numGames int, seed uint64, roster Roster) AggregatedStats {
	rng := rand.New(rand.NewSource(int64(seed)))
	results := make([]GameResult, numGames)

	for i := 0; i < numGames; i++ {
		results[i] = RunSingleGame(roster, i, rng)
	}

	return aggregateResults(numPlayers, results)
}

// RunSingleGame plays one complete game to termination using the roster
// built for gameIndex.
func RunSingleGame(roster Roster, gameIndex int, rng *rand.Rand) GameResult {
	start := time.Now()

	seatToInstance, instances := roster(gameIndex, rng)
	winner, turns := game.Play(seatToInstance, instances)

	return GameResult{
		Winner:     winner,
		Turns:      turns,
		DurationNs: uint64(time.Since(start).Nanoseconds()),
	}
}

// aggregateResults computes summary statistics over a batch of results.
func aggregateResults(numPlayers int, results []GameResult) AggregatedStats {
	stats := AggregatedStats{
		TotalGames: len(results),
		Wins:       make([]uint32, numPlayers),
	}

	turnCounts := make([]int, 0, len(results))
	totalDuration := uint64(0)

	for _, result := range results {
		if result.Winner == fish.NoWinner {
			stats.Draws++
		} else {
			stats.Wins[result.Winner]++
		}

		turnCounts = append(turnCounts, result.Turns)
		totalDuration += result.DurationNs
	}

	if len(turnCounts) > 0 {
		sum := 0
		for _, tc := range turnCounts {
			sum += tc
		}
		stats.AvgTurns = float64(sum) / float64(len(turnCounts))
		stats.MedianTurns = median(turnCounts)
	}

	if stats.TotalGames > 0 {
		stats.AvgDurationNs = totalDuration / uint64(stats.TotalGames)
	}

	return stats
}

// median calculates the median of a slice, sorting a copy in place.
func median(values []int) int {
	if len(values) == 0 {
		return 0
	}

	// Simple bubble sort: batches run in the hundreds at most, so
	// quadratic sorting here is not worth complicating.
	sorted := make([]int, len(values))
	copy(sorted, values)

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i] > sorted[j] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// DecisivenessRate is the fraction of games in the batch that ended in a
// win rather than a draw. tuning uses this as a fitness signal: higher
// means the preference configuration produces more decisive play.
func (s AggregatedStats) DecisivenessRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return 1 - float64(s.Draws)/float64(s.TotalGames)
}
