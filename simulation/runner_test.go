package simulation

import (
	"math/rand"
	"testing"

	"github.com/MarcusRainbow/QuantumGoFish/fish"
	"github.com/MarcusRainbow/QuantumGoFish/player"
	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

// twoCleverRoster seats one fresh symmetric clever player in both seats
// every game, so a batch of these is deterministic game-for-game.
func twoCleverRoster(gameIndex int, rng *rand.Rand) ([]int, []player.Player) {
	clever := solver.NewCleverPlayer(1000, 1000, 0, nil, true)
	return []int{0, 0}, []player.Player{clever}
}

func TestRunSingleGameTwoClever(t *testing.T) {
	result := RunSingleGame(twoCleverRoster, 0, rand.New(rand.NewSource(1)))
	if result.Winner != fish.NoWinner {
		t.Fatalf("Winner = %d, want a draw (%d)", result.Winner, fish.NoWinner)
	}
	if result.Turns <= 0 {
		t.Fatalf("Turns = %d, want > 0", result.Turns)
	}
}

func TestRunBatchAggregatesDraws(t *testing.T) {
	stats := RunBatch(2, 5, 42, twoCleverRoster)
	if stats.TotalGames != 5 {
		t.Fatalf("TotalGames = %d, want 5", stats.TotalGames)
	}
	if stats.Draws != 5 {
		t.Fatalf("Draws = %d, want 5 (two symmetric clever players always draw)", stats.Draws)
	}
	if stats.DecisivenessRate() != 0 {
		t.Fatalf("DecisivenessRate = %v, want 0", stats.DecisivenessRate())
	}
	if stats.AvgTurns <= 0 {
		t.Fatalf("AvgTurns = %v, want > 0", stats.AvgTurns)
	}
}

func TestRunBatchParallelMatchesSerialGameCount(t *testing.T) {
	serial := RunBatch(2, 8, 7, twoCleverRoster)
	parallel := RunBatchParallelN(2, 8, 7, twoCleverRoster, 4)

	if parallel.TotalGames != serial.TotalGames {
		t.Fatalf("TotalGames = %d, want %d", parallel.TotalGames, serial.TotalGames)
	}
	if parallel.Draws != serial.Draws {
		t.Fatalf("Draws = %d, want %d", parallel.Draws, serial.Draws)
	}
}

func TestMedianOddAndEven(t *testing.T) {
	if got := median([]int{3, 1, 2}); got != 2 {
		t.Fatalf("median(odd) = %d, want 2", got)
	}
	if got := median([]int{1, 2, 3, 4}); got != 2 {
		t.Fatalf("median(even) = %d, want 2", got)
	}
	if got := median(nil); got != 0 {
		t.Fatalf("median(nil) = %d, want 0", got)
	}
}
