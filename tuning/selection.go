package tuning

import (
	"math/rand"
	"sort"
)

// TournamentSelection selects an individual via tournament selection. k
// is the tournament size (number of candidates sampled).
func TournamentSelection(pop *Population, k int, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	if k > len(pop.Individuals) {
		k = len(pop.Individuals)
	}
	if k < 1 {
		k = 1
	}

	indices := rng.Perm(len(pop.Individuals))[:k]
	candidates := make([]*Individual, k)
	for i, idx := range indices {
		candidates[i] = pop.Individuals[idx]
	}

	best := candidates[0]
	for _, ind := range candidates[1:] {
		if ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best
}

// SelectElite returns the top n individuals by fitness.
func SelectElite(pop *Population, n int) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	if n > len(pop.Individuals) {
		n = len(pop.Individuals)
	}
	if n < 1 {
		return nil
	}

	sorted := make([]*Individual, len(pop.Individuals))
	copy(sorted, pop.Individuals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Fitness > sorted[j].Fitness
	})
	return sorted[:n]
}

// SelectEliteByRate returns the top percentage of individuals.
// elitismRate should be in [0.0, 1.0].
func SelectEliteByRate(pop *Population, elitismRate float64) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n := int(float64(len(pop.Individuals)) * elitismRate)
	if n < 1 {
		n = 1
	}
	return SelectElite(pop, n)
}

// RouletteWheelSelection selects an individual using fitness-proportionate
// selection.
func RouletteWheelSelection(pop *Population, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}

	var totalFitness float64
	for _, ind := range pop.Individuals {
		if ind.Fitness > 0 {
			totalFitness += ind.Fitness
		}
	}
	if totalFitness <= 0 {
		return pop.Individuals[rng.Intn(len(pop.Individuals))]
	}

	spin := rng.Float64() * totalFitness
	var cumulative float64
	for _, ind := range pop.Individuals {
		if ind.Fitness > 0 {
			cumulative += ind.Fitness
			if cumulative >= spin {
				return ind
			}
		}
	}
	return pop.Individuals[len(pop.Individuals)-1]
}

// RankSelection selects an individual using rank-based selection: better
// individuals have higher probability, but not proportional to fitness.
func RankSelection(pop *Population, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n := len(pop.Individuals)

	sorted := make([]*Individual, n)
	copy(sorted, pop.Individuals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Fitness < sorted[j].Fitness
	})

	totalRank := float64(n * (n + 1) / 2)
	spin := rng.Float64() * totalRank
	var cumulative float64
	for rank, ind := range sorted {
		cumulative += float64(rank + 1)
		if cumulative >= spin {
			return ind
		}
	}
	return sorted[n-1]
}

// TruncationSelection returns the top percentage of the population.
// truncationRate should be in (0.0, 1.0].
func TruncationSelection(pop *Population, truncationRate float64) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n := int(float64(len(pop.Individuals)) * truncationRate)
	if n < 1 {
		n = 1
	}
	return SelectElite(pop, n)
}

// SelectDiverse greedily selects n individuals maximizing diversity,
// starting from the best individual.
func SelectDiverse(pop *Population, n int) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	if n >= len(pop.Individuals) {
		return pop.Individuals
	}
	if n < 1 {
		return nil
	}

	sorted := SelectElite(pop, len(pop.Individuals))
	selected := []*Individual{sorted[0]}
	remaining := sorted[1:]

	for len(selected) < n && len(remaining) > 0 {
		bestIdx := 0
		bestMinDist := -1.0

		for i, candidate := range remaining {
			minDist := 1.0
			for _, sel := range selected {
				dist := PreferenceDistance(candidate.Prefs, sel.Prefs)
				if dist < minDist {
					minDist = dist
				}
			}
			if minDist > bestMinDist {
				bestMinDist = minDist
				bestIdx = i
			}
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}
