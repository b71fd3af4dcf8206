package tuning

import (
	"math/rand"
	"testing"

	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

func samplePrefs(seed int64) solver.PreferenceSet {
	return RandomPreferenceSet(3, rand.New(rand.NewSource(seed)))
}

func TestNewPopulation(t *testing.T) {
	individuals := make([]*Individual, 5)
	for i := 0; i < 5; i++ {
		individuals[i] = &Individual{Prefs: samplePrefs(int64(i)), Fitness: float64(i), Evaluated: true}
	}

	pop := NewPopulation(individuals)

	if pop.Size() != 5 {
		t.Errorf("Expected size 5, got %d", pop.Size())
	}
	if pop.Generation != 0 {
		t.Errorf("Expected generation 0, got %d", pop.Generation)
	}
}

func TestPopulationGetBestIndividual(t *testing.T) {
	individuals := []*Individual{
		{Prefs: samplePrefs(1), Fitness: 0.3, Evaluated: true},
		{Prefs: samplePrefs(2), Fitness: 0.9, Evaluated: true},
		{Prefs: samplePrefs(3), Fitness: 0.5, Evaluated: true},
	}

	pop := NewPopulation(individuals)
	best := pop.GetBestIndividual()

	if best.Fitness != 0.9 {
		t.Errorf("Expected best fitness 0.9, got %f", best.Fitness)
	}
}

func TestPopulationGetAverageFitness(t *testing.T) {
	individuals := []*Individual{
		{Prefs: samplePrefs(1), Fitness: 0.2, Evaluated: true},
		{Prefs: samplePrefs(2), Fitness: 0.4, Evaluated: true},
		{Prefs: samplePrefs(3), Fitness: 0.6, Evaluated: true},
	}

	pop := NewPopulation(individuals)
	avg := pop.GetAverageFitness()

	expected := 0.4
	if avg < expected-0.01 || avg > expected+0.01 {
		t.Errorf("Expected average fitness ~%f, got %f", expected, avg)
	}
}

func TestPopulationGetAverageFitnessPartiallyEvaluated(t *testing.T) {
	individuals := []*Individual{
		{Prefs: samplePrefs(1), Fitness: 0.5, Evaluated: true},
		{Prefs: samplePrefs(2), Fitness: 0.0, Evaluated: false},
		{Prefs: samplePrefs(3), Fitness: 0.5, Evaluated: true},
	}

	pop := NewPopulation(individuals)
	avg := pop.GetAverageFitness()

	expected := 0.5
	if avg < expected-0.01 || avg > expected+0.01 {
		t.Errorf("Expected average fitness %f for evaluated only, got %f", expected, avg)
	}
}

func TestPopulationComputeDiversity(t *testing.T) {
	shared := samplePrefs(1)
	identical := make([]*Individual, 5)
	for i := range identical {
		identical[i] = &Individual{Prefs: clonePrefs(shared), Fitness: 0.5, Evaluated: true}
	}
	identicalDiv := NewPopulation(identical).ComputeDiversity()

	diverse := make([]*Individual, 5)
	for i := range diverse {
		diverse[i] = &Individual{Prefs: samplePrefs(int64(i) * 17), Fitness: 0.5, Evaluated: true}
	}
	diverseDiv := NewPopulation(diverse).ComputeDiversity()

	if diverseDiv < identicalDiv {
		t.Errorf("Expected diverse pop diversity (%f) >= identical (%f)", diverseDiv, identicalDiv)
	}
	if identicalDiv != 0.0 {
		t.Errorf("Expected identical population diversity 0, got %f", identicalDiv)
	}
}

func TestPopulationSortByFitness(t *testing.T) {
	individuals := []*Individual{
		{Prefs: samplePrefs(1), Fitness: 0.3},
		{Prefs: samplePrefs(2), Fitness: 0.9},
		{Prefs: samplePrefs(3), Fitness: 0.1},
		{Prefs: samplePrefs(4), Fitness: 0.7},
	}

	pop := NewPopulation(individuals)
	sorted := pop.SortByFitness()

	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Fitness < sorted[i+1].Fitness {
			t.Errorf("Not sorted at index %d: %f < %f", i, sorted[i].Fitness, sorted[i+1].Fitness)
		}
	}
}

func TestPopulationGetUnevaluated(t *testing.T) {
	individuals := []*Individual{
		{Prefs: samplePrefs(1), Fitness: 0.5, Evaluated: true},
		{Prefs: samplePrefs(2), Fitness: 0.0, Evaluated: false},
		{Prefs: samplePrefs(3), Fitness: 0.5, Evaluated: true},
		{Prefs: samplePrefs(4), Fitness: 0.0, Evaluated: false},
	}

	pop := NewPopulation(individuals)
	unevaluated := pop.GetUnevaluated()

	if len(unevaluated) != 2 {
		t.Errorf("Expected 2 unevaluated, got %d", len(unevaluated))
	}
}

func TestPopulationCheckDiversityCrisis(t *testing.T) {
	shared := samplePrefs(1)
	identical := make([]*Individual, 10)
	for i := range identical {
		identical[i] = &Individual{Prefs: clonePrefs(shared)}
	}
	pop := NewPopulation(identical)

	if !pop.CheckDiversityCrisis() {
		t.Error("Expected diversity crisis with identical preference configurations")
	}
}

func TestIndividualClone(t *testing.T) {
	original := &Individual{Prefs: samplePrefs(1), Fitness: 0.75, Evaluated: true}
	clone := original.Clone()

	if clone.Fitness != original.Fitness {
		t.Errorf("Clone fitness mismatch: %f vs %f", clone.Fitness, original.Fitness)
	}
	if clone.Evaluated != original.Evaluated {
		t.Error("Clone evaluated mismatch")
	}

	clone.Prefs[0][0] = -1
	if original.Prefs[0][0] == -1 {
		t.Error("Modifying clone's prefs affected the original")
	}
}

func TestPreferenceDistance(t *testing.T) {
	a := solver.PreferenceSet{{1, 2}, {0, 2}, {0, 1}}
	b := solver.PreferenceSet{{2, 1}, {2, 0}, {1, 0}}

	sameDist := PreferenceDistance(a, a)
	if sameDist != 0.0 {
		t.Errorf("Expected distance 0 for identical configuration, got %f", sameDist)
	}

	diffDist := PreferenceDistance(a, b)
	if diffDist <= 0.0 {
		t.Errorf("Expected positive distance for reversed preferences, got %f", diffDist)
	}
	if diffDist > 1.0 {
		t.Errorf("Distance should be <= 1.0, got %f", diffDist)
	}
}

func TestPreferenceDistanceSymmetric(t *testing.T) {
	a := samplePrefs(1)
	b := samplePrefs(2)

	dist1 := PreferenceDistance(a, b)
	dist2 := PreferenceDistance(b, a)

	if dist1 != dist2 {
		t.Errorf("Distance not symmetric: %f vs %f", dist1, dist2)
	}
}
