package caravel

import "time"

// GeneticAlgorithmConfig carries the run parameters consumed by an external
// evolutionary driver. All fields are plain values with no defaulting;
// validating them (probabilities in [0, 1], non-zero population and so on)
// is the driver's responsibility, not this package's.
type GeneticAlgorithmConfig struct {
	Generations          int           // generational budget
	Evaluations          int           // fitness evaluation budget
	Iterations           int           // local-search iterations per individual
	PopulationSize       int
	PoolSize             int           // recombination pool size
	CrossoverProbability float64
	MutationProbability  float64
	Epsilon              float64       // fitness-comparison tolerance
	Seed                 uint64        // random seed
	TimeLimit            time.Duration // wall-clock limit, 0 for none
}
