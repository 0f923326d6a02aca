package caravel

import (
	"sync"
)

// Evaluation allocates one scratch vector per tree node. Trees are evaluated
// millions of times during a run, so the vectors are recycled through
// power-of-2 bucketed pools instead of hitting the allocator on every call.

var (
	vecPools [32]*sync.Pool
	poolInit sync.Once
)

func initPools() {
	poolInit.Do(func() {
		for i := range vecPools {
			size := 1 << i
			vecPools[i] = &sync.Pool{
				New: func() interface{} {
					buf := make([]float64, size)
					return &buf
				},
			}
		}
	})
}

// getBucket returns the pool bucket index for a given size
func getBucket(size int) int {
	if size <= 0 {
		return 0
	}
	// Find the smallest power of 2 >= size
	bucket := 0
	n := size - 1
	for n > 0 {
		n >>= 1
		bucket++
	}
	if bucket >= 32 {
		bucket = 31
	}
	return bucket
}

// getVec returns a float64 slice of exactly 'size' elements from the pool.
func getVec(size int) []float64 {
	initPools()
	bucket := getBucket(size)
	buf := *vecPools[bucket].Get().(*[]float64)
	if cap(buf) < size {
		return make([]float64, size)
	}
	return buf[:size]
}

// putVec returns a slice obtained from getVec to its pool.
func putVec(buf []float64) {
	if buf == nil {
		return
	}
	c := cap(buf)
	if c == 0 {
		return
	}
	bucket := getBucket(c)
	if 1<<bucket != c {
		// Oversized allocation that bypassed the pool
		return
	}
	buf = buf[:c]
	vecPools[bucket].Put(&buf)
}
