// Package tuning evolves per-player preference vectors by the same
// genetic-algorithm shape the teacher uses to evolve card-game rule
// genomes: a population of candidates, tournament selection plus
// elitism, uniform crossover, random mutation, scored each generation
// by simulation.RunBatch.
package tuning

import "github.com/MarcusRainbow/QuantumGoFish/solver"

// Individual is one candidate preference configuration together with its
// measured fitness.
type Individual struct {
	Prefs     solver.PreferenceSet
	Fitness   float64
	Evaluated bool
}

// Clone deep-copies the individual, including its preference slices.
func (ind *Individual) Clone() *Individual {
	prefs := make(solver.PreferenceSet, len(ind.Prefs))
	for i, p := range ind.Prefs {
		prefs[i] = append([]int(nil), p...)
	}
	return &Individual{
		Prefs:     prefs,
		Fitness:   ind.Fitness,
		Evaluated: ind.Evaluated,
	}
}
