package tuning

import "math/rand"

// DiversityThreshold is the threshold below which diversity is considered
// critical.
const DiversityThreshold = 0.1

// Population is a generation's worth of candidates.
type Population struct {
	Individuals []*Individual
	Generation  int
}

// NewPopulation wraps a slice of individuals as generation 0.
func NewPopulation(individuals []*Individual) *Population {
	return &Population{Individuals: individuals, Generation: 0}
}

// Size returns the number of individuals in the population.
func (p *Population) Size() int {
	return len(p.Individuals)
}

// GetBestIndividual returns the individual with the highest fitness.
func (p *Population) GetBestIndividual() *Individual {
	if len(p.Individuals) == 0 {
		return nil
	}
	best := p.Individuals[0]
	for _, ind := range p.Individuals[1:] {
		if ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best
}

// GetAverageFitness returns the average fitness of evaluated individuals.
func (p *Population) GetAverageFitness() float64 {
	if len(p.Individuals) == 0 {
		return 0.0
	}
	var sum float64
	var count int
	for _, ind := range p.Individuals {
		if ind.Evaluated {
			sum += ind.Fitness
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

// ComputeDiversity calculates population diversity using pairwise
// preference distances. Higher = more diverse, lower = converged.
func (p *Population) ComputeDiversity() float64 {
	if len(p.Individuals) < 2 {
		return 0.0
	}

	var totalDistance float64
	var pairCount int

	if len(p.Individuals) <= 50 {
		for i := 0; i < len(p.Individuals); i++ {
			for j := i + 1; j < len(p.Individuals); j++ {
				totalDistance += PreferenceDistance(p.Individuals[i].Prefs, p.Individuals[j].Prefs)
				pairCount++
			}
		}
	} else {
		for k := 0; k < 100; k++ {
			i := rand.Intn(len(p.Individuals))
			j := rand.Intn(len(p.Individuals))
			if i == j {
				j = (i + 1) % len(p.Individuals)
			}
			totalDistance += PreferenceDistance(p.Individuals[i].Prefs, p.Individuals[j].Prefs)
			pairCount++
		}
	}

	if pairCount == 0 {
		return 0.0
	}
	return totalDistance / float64(pairCount)
}

// CheckDiversityCrisis returns true if diversity has collapsed.
func (p *Population) CheckDiversityCrisis() bool {
	return p.ComputeDiversity() < DiversityThreshold
}

// GetUnevaluated returns all individuals that haven't been evaluated.
func (p *Population) GetUnevaluated() []*Individual {
	var unevaluated []*Individual
	for _, ind := range p.Individuals {
		if !ind.Evaluated {
			unevaluated = append(unevaluated, ind)
		}
	}
	return unevaluated
}

// SortByFitness returns individuals sorted by fitness, descending.
func (p *Population) SortByFitness() []*Individual {
	sorted := make([]*Individual, len(p.Individuals))
	copy(sorted, p.Individuals)

	// Insertion sort: stable, and good enough for population sizes in
	// the hundreds.
	for i := 1; i < len(sorted); i++ {
		j := i
		for j > 0 && sorted[j-1].Fitness < sorted[j].Fitness {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
			j--
		}
	}
	return sorted
}

// PreferenceDistance computes a normalized distance between two
// preference configurations (0.0 = identical, 1.0 = maximally
// different), the same Hamming-over-structural-features shape as the
// teacher's GenomeDistance.
func PreferenceDistance(a, b [][]int) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return 0.0
	}

	var distance float64
	for i := 0; i < n; i++ {
		var pa, pb []int
		if i < len(a) {
			pa = a[i]
		}
		if i < len(b) {
			pb = b[i]
		}
		distance += sliceDistance(pa, pb)
	}
	return distance / float64(n)
}

// sliceDistance is the fraction of positions at which two equal-length
// preference slices disagree, or 1.0 if their lengths differ.
func sliceDistance(a, b []int) float64 {
	if len(a) != len(b) {
		return 1.0
	}
	if len(a) == 0 {
		return 0.0
	}
	var mismatches int
	for i := range a {
		if a[i] != b[i] {
			mismatches++
		}
	}
	return float64(mismatches) / float64(len(a))
}
