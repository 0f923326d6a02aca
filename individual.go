package caravel

// Individual pairs a genotype with its fitness vector. Rank and Distance are
// filled in by a non-dominated sorter when one is in use.
type Individual struct {
	Genotype *Tree
	Fitness  []float64
	Rank     int
	Distance float64
}

// NewIndividual creates an individual with room for the given number of
// objectives.
func NewIndividual(objectives int) *Individual {
	return &Individual{Fitness: make([]float64, objectives)}
}

// GetFitness returns the fitness value of objective i.
func (ind *Individual) GetFitness(i int) float64 { return ind.Fitness[i] }

// SetFitness sets the fitness value of objective i.
func (ind *Individual) SetFitness(v float64, i int) { ind.Fitness[i] = v }

// SingleObjectiveComparison orders individuals by one objective, smaller
// fitness first.
type SingleObjectiveComparison struct {
	Objective int
}

// Compare reports whether a precedes b.
func (c SingleObjectiveComparison) Compare(a, b *Individual) bool {
	return a.Fitness[c.Objective] < b.Fitness[c.Objective]
}

// CrowdedComparison orders individuals by non-domination rank, breaking ties
// with crowding distance (larger distance first).
type CrowdedComparison struct{}

// Compare reports whether a precedes b.
func (CrowdedComparison) Compare(a, b *Individual) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Distance > b.Distance
}
