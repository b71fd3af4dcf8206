package tuning

import (
	"math/rand"
	"testing"

	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

func TestUniformCrossoverProducesValidChildren(t *testing.T) {
	parent1 := solver.PreferenceSet{{1, 2}, {0, 2}, {0, 1}}
	parent2 := solver.PreferenceSet{{2, 1}, {2, 0}, {1, 0}}

	c := NewUniformCrossover(1.0)
	rng := rand.New(rand.NewSource(3))

	child1, child2 := c.Crossover(parent1, parent2, rng)

	if len(child1) != len(parent1) || len(child2) != len(parent2) {
		t.Fatalf("children have wrong number of players: %d, %d", len(child1), len(child2))
	}

	for i := range child1 {
		fromP1 := equalSlice(child1[i], parent1[i])
		fromP2 := equalSlice(child1[i], parent2[i])
		if !fromP1 && !fromP2 {
			t.Errorf("child1[%d] = %v, not drawn from either parent", i, child1[i])
		}
	}
}

func TestUniformCrossoverDoesNotMutateParents(t *testing.T) {
	parent1 := solver.PreferenceSet{{1, 2}, {0, 2}, {0, 1}}
	parent2 := solver.PreferenceSet{{2, 1}, {2, 0}, {1, 0}}
	orig1 := clonePrefs(parent1)
	orig2 := clonePrefs(parent2)

	c := NewUniformCrossover(1.0)
	rng := rand.New(rand.NewSource(9))
	c.Crossover(parent1, parent2, rng)

	for i := range parent1 {
		if !equalSlice(parent1[i], orig1[i]) {
			t.Errorf("parent1[%d] mutated by Crossover", i)
		}
	}
	for i := range parent2 {
		if !equalSlice(parent2[i], orig2[i]) {
			t.Errorf("parent2[%d] mutated by Crossover", i)
		}
	}
}

func TestMutateChangesOneSlotAtMost(t *testing.T) {
	prefs := solver.PreferenceSet{{1, 2}, {0, 2}, {0, 1}}
	before := clonePrefs(prefs)

	rng := rand.New(rand.NewSource(5))
	Mutate(prefs, rng)

	changed := 0
	for i := range prefs {
		if !equalSlice(prefs[i], before[i]) {
			changed++
		}
	}
	if changed > 1 {
		t.Errorf("Mutate touched %d player slots, want at most 1", changed)
	}
}

func TestRandomPreferenceSetIsAPermutationPerPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	prefs := RandomPreferenceSet(4, rng)

	if len(prefs) != 4 {
		t.Fatalf("len(prefs) = %d, want 4", len(prefs))
	}
	for i, p := range prefs {
		if len(p) != 3 {
			t.Fatalf("player %d: len(prefs) = %d, want 3", i, len(p))
		}
		seen := make(map[int]bool)
		for _, opponent := range p {
			if opponent == i {
				t.Errorf("player %d prefers itself", i)
			}
			if seen[opponent] {
				t.Errorf("player %d has duplicate opponent %d", i, opponent)
			}
			seen[opponent] = true
		}
	}
}

func equalSlice(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
