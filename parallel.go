package caravel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ============================================================================
// Parallel Execution Configuration
// ============================================================================

// ParallelConfig controls parallelization behavior
type ParallelConfig struct {
	// MinTreesForParallel is the minimum work units to justify parallel overhead
	MinTreesForParallel int

	// MorselSize is the number of trees per work unit
	MorselSize int

	// MaxWorkers limits the number of worker goroutines (0 = GOMAXPROCS)
	MaxWorkers int

	// Enabled controls whether parallelism is used at all
	Enabled bool
}

// DefaultParallelConfig returns sensible defaults
func DefaultParallelConfig() *ParallelConfig {
	return &ParallelConfig{
		MinTreesForParallel: 16,
		MorselSize:          8,
		MaxWorkers:          0, // Use all CPUs
		Enabled:             true,
	}
}

// globalConfig is the default configuration
var globalConfig = DefaultParallelConfig()

// SetParallelConfig sets the global parallelization configuration
func SetParallelConfig(cfg *ParallelConfig) {
	if cfg != nil {
		globalConfig = cfg
	}
}

// GetParallelConfig returns the current configuration
func GetParallelConfig() *ParallelConfig {
	return globalConfig
}

// numWorkers returns the number of workers to use
func (cfg *ParallelConfig) numWorkers() int {
	if cfg.MaxWorkers > 0 {
		return cfg.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// shouldParallelize determines if an operation should be parallelized
func (cfg *ParallelConfig) shouldParallelize(units int) bool {
	return cfg.Enabled && units >= cfg.MinTreesForParallel
}

// ============================================================================
// Morsel-Based Work Distribution
// ============================================================================

// morselIterator hands out index ranges to workers via an atomic cursor,
// so faster workers steal work from slower ones.
type morselIterator struct {
	total      int
	morselSize int
	next       int64
}

func newMorselIterator(total, morselSize int) *morselIterator {
	if morselSize <= 0 {
		morselSize = globalConfig.MorselSize
	}
	return &morselIterator{total: total, morselSize: morselSize}
}

// nextMorsel returns the next [start, end) range, or (0, 0) when exhausted.
// Safe for concurrent use.
func (mi *morselIterator) nextMorsel() (int, int) {
	for {
		start := atomic.LoadInt64(&mi.next)
		if int(start) >= mi.total {
			return 0, 0
		}
		end := int(start) + mi.morselSize
		if end > mi.total {
			end = mi.total
		}
		if atomic.CompareAndSwapInt64(&mi.next, start, int64(end)) {
			return int(start), end
		}
		// Another worker claimed it, try again
	}
}

// ParallelFor executes fn for each morsel in parallel using work-stealing
func ParallelFor(total int, fn func(start, end int)) {
	cfg := globalConfig
	if !cfg.shouldParallelize(total) {
		fn(0, total)
		return
	}

	workers := cfg.numWorkers()
	iter := newMorselIterator(total, cfg.MorselSize)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				start, end := iter.nextMorsel()
				if start == end {
					return
				}
				fn(start, end)
			}
		}()
	}
	wg.Wait()
}

// ============================================================================
// Batch Evaluation
// ============================================================================

// EvaluateBatch evaluates every tree over the rows covered by r, spreading
// the population across workers. Results are index-aligned with trees.
//
// Each tree either yields a prediction vector or an error; a failed tree
// does not stop the rest of the batch. The first error encountered (lowest
// tree index) is returned alongside the results.
func EvaluateBatch(trees []*Tree, ds *Dataset, r Range) ([][]float64, error) {
	results := make([][]float64, len(trees))
	errs := make([]error, len(trees))

	ParallelFor(len(trees), func(start, end int) {
		for i := start; i < end; i++ {
			results[i], errs[i] = Evaluate(trees[i], ds, r)
		}
	})

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// EvaluateBatchAll evaluates every tree over every row of the dataset.
func EvaluateBatchAll(trees []*Tree, ds *Dataset) ([][]float64, error) {
	return EvaluateBatch(trees, ds, Range{Start: 0, End: ds.Rows()})
}
