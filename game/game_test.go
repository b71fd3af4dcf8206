package game

import (
	"testing"

	"github.com/MarcusRainbow/QuantumGoFish/fish"
	"github.com/MarcusRainbow/QuantumGoFish/player"
	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

// Two symmetric clever players, no preferences, always draw: perfect
// play on both sides with no tie-breaking preference cannot decide a
// winner.
func TestTwoCleverPlayersDraw(t *testing.T) {
	clever := solver.NewCleverPlayer(1000, 1000, 0, nil, true)
	result, _ := Play([]int{0, 0}, []player.Player{clever})
	if result != fish.NoWinner {
		t.Fatalf("Play = %d, want a draw (%d)", result, fish.NoWinner)
	}
}

// Three symmetric clever players with rotation-symmetric preferences
// [[2],[0],[1]] also draw.
func TestThreeCleverBiasedPlayersDraw(t *testing.T) {
	prefs := solver.PreferenceSet{{2}, {0}, {1}}
	clever := solver.NewCleverPlayer(1000, 1000, 0, prefs, true)
	result, _ := Play([]int{0, 0, 0}, []player.Player{clever})
	if result != fish.NoWinner {
		t.Fatalf("Play = %d, want a draw (%d)", result, fish.NoWinner)
	}
}
