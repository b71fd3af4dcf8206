package tuning

import (
	"math/rand"
	"testing"
)

func createTestPopulation(n int) *Population {
	individuals := make([]*Individual, n)
	for i := 0; i < n; i++ {
		individuals[i] = &Individual{
			Prefs:     samplePrefs(int64(i)),
			Fitness:   float64(i) / float64(n-1),
			Evaluated: true,
		}
	}
	return NewPopulation(individuals)
}

func TestTournamentSelectionBasic(t *testing.T) {
	pop := createTestPopulation(10)
	rng := rand.New(rand.NewSource(42))

	selected := TournamentSelection(pop, 3, rng)
	if selected == nil {
		t.Fatal("TournamentSelection returned nil")
	}

	found := false
	for _, ind := range pop.Individuals {
		if ind == selected {
			found = true
			break
		}
	}
	if !found {
		t.Error("Selected individual not in population")
	}
}

func TestTournamentSelectionEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	if selected := TournamentSelection(NewPopulation(nil), 3, rng); selected != nil {
		t.Error("Expected nil for empty population")
	}
}

func TestTournamentSelectionNil(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	if selected := TournamentSelection(nil, 3, rng); selected != nil {
		t.Error("Expected nil for nil population")
	}
}

func TestTournamentSelectionLargeTournamentPicksBest(t *testing.T) {
	pop := createTestPopulation(5)
	rng := rand.New(rand.NewSource(42))

	selected := TournamentSelection(pop, 10, rng)
	if selected.Fitness != 1.0 {
		t.Errorf("With full tournament, expected best (1.0), got %f", selected.Fitness)
	}
}

func TestSelectElite(t *testing.T) {
	pop := createTestPopulation(10)
	elite := SelectElite(pop, 3)

	if len(elite) != 3 {
		t.Fatalf("Expected 3 elite, got %d", len(elite))
	}
	for i := 0; i < len(elite)-1; i++ {
		if elite[i].Fitness < elite[i+1].Fitness {
			t.Errorf("Elite not sorted descending at %d", i)
		}
	}
}

func TestSelectEliteByRate(t *testing.T) {
	pop := createTestPopulation(20)
	elite := SelectEliteByRate(pop, 0.1)
	if len(elite) != 2 {
		t.Fatalf("Expected 2 elite (10%% of 20), got %d", len(elite))
	}
}

func TestRouletteWheelSelectionFavorsHigherFitness(t *testing.T) {
	individuals := []*Individual{
		{Prefs: samplePrefs(1), Fitness: 0.01, Evaluated: true},
		{Prefs: samplePrefs(2), Fitness: 100.0, Evaluated: true},
	}
	pop := NewPopulation(individuals)
	rng := rand.New(rand.NewSource(1))

	highWins := 0
	for i := 0; i < 50; i++ {
		if RouletteWheelSelection(pop, rng) == individuals[1] {
			highWins++
		}
	}
	if highWins < 40 {
		t.Errorf("Expected roulette selection to favor high fitness, got %d/50", highWins)
	}
}

func TestRankSelection(t *testing.T) {
	pop := createTestPopulation(10)
	rng := rand.New(rand.NewSource(7))

	selected := RankSelection(pop, rng)
	if selected == nil {
		t.Fatal("RankSelection returned nil")
	}
}

func TestTruncationSelection(t *testing.T) {
	pop := createTestPopulation(10)
	top := TruncationSelection(pop, 0.3)
	if len(top) != 3 {
		t.Fatalf("Expected 3 individuals (30%% of 10), got %d", len(top))
	}
}

func TestSelectDiverseReturnsRequestedCount(t *testing.T) {
	pop := createTestPopulation(10)
	diverse := SelectDiverse(pop, 4)
	if len(diverse) != 4 {
		t.Fatalf("Expected 4 diverse individuals, got %d", len(diverse))
	}
}
