package tuning

import (
	"math/rand"

	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

// CrossoverOperator produces offspring from two parent preference
// configurations.
type CrossoverOperator interface {
	Crossover(parent1, parent2 solver.PreferenceSet, rng *rand.Rand) (solver.PreferenceSet, solver.PreferenceSet)
	Probability() float64
}

// UniformCrossover swaps each player's entire preference list
// independently between parents on a coin flip — the preference-vector
// analog of the teacher's field-by-field genome crossover.
type UniformCrossover struct {
	probability float64
}

// NewUniformCrossover creates a new uniform crossover operator.
func NewUniformCrossover(probability float64) *UniformCrossover {
	return &UniformCrossover{probability: probability}
}

// Probability returns the crossover probability.
func (c *UniformCrossover) Probability() float64 {
	return c.probability
}

// Crossover produces two offspring by swapping per-player preference
// slots on independent coin flips.
func (c *UniformCrossover) Crossover(parent1, parent2 solver.PreferenceSet, rng *rand.Rand) (solver.PreferenceSet, solver.PreferenceSet) {
	child1 := clonePrefs(parent1)
	child2 := clonePrefs(parent2)

	for i := range child1 {
		if i >= len(child2) {
			break
		}
		if rng.Float64() < 0.5 {
			child1[i], child2[i] = child2[i], child1[i]
		}
	}

	return child1, child2
}

func clonePrefs(prefs solver.PreferenceSet) solver.PreferenceSet {
	out := make(solver.PreferenceSet, len(prefs))
	for i, p := range prefs {
		out[i] = append([]int(nil), p...)
	}
	return out
}

// Mutate randomly swaps two entries within one randomly chosen player's
// preference list, leaving the rest of the configuration untouched.
func Mutate(prefs solver.PreferenceSet, rng *rand.Rand) {
	if len(prefs) == 0 {
		return
	}
	p := prefs[rng.Intn(len(prefs))]
	if len(p) < 2 {
		return
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p))
	p[i], p[j] = p[j], p[i]
}

// RandomPreferenceSet builds a preference configuration for numPlayers
// seats, each player's list a random permutation of every other seat.
func RandomPreferenceSet(numPlayers int, rng *rand.Rand) solver.PreferenceSet {
	prefs := make(solver.PreferenceSet, numPlayers)
	for i := 0; i < numPlayers; i++ {
		others := make([]int, 0, numPlayers-1)
		for j := 0; j < numPlayers; j++ {
			if j != i {
				others = append(others, j)
			}
		}
		rng.Shuffle(len(others), func(a, b int) {
			others[a], others[b] = others[b], others[a]
		})
		prefs[i] = others
	}
	return prefs
}
