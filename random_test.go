package caravel

import (
	"math/rand"
	"testing"
)

// Both engines must satisfy rand.Source64.
var (
	_ rand.Source64 = (*RomuTrio)(nil)
	_ rand.Source64 = (*Sfc64)(nil)
)

func TestRomuTrioDeterminism(t *testing.T) {
	a := NewRomuTrio(42)
	b := NewRomuTrio(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("RomuTrio diverged at step %d for equal seeds", i)
		}
	}

	c := NewRomuTrio(43)
	d := NewRomuTrio(42)
	same := true
	for i := 0; i < 10; i++ {
		if c.Uint64() != d.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Error("RomuTrio produced identical streams for different seeds")
	}
}

func TestSfc64Determinism(t *testing.T) {
	a := NewSfc64(42)
	b := NewSfc64(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("Sfc64 diverged at step %d for equal seeds", i)
		}
	}
}

func TestEnginesReseed(t *testing.T) {
	a := NewRomuTrio(7)
	first := a.Uint64()
	a.Seed(7)
	if a.Uint64() != first {
		t.Error("RomuTrio Seed did not reset the stream")
	}

	s := NewSfc64(7)
	sFirst := s.Uint64()
	s.Seed(7)
	if s.Uint64() != sFirst {
		t.Error("Sfc64 Seed did not reset the stream")
	}
}

func TestEngineSpread(t *testing.T) {
	// Cheap sanity check that output is not degenerate: values in a short
	// stream should be distinct.
	seen := make(map[uint64]bool)
	r := NewSfc64(99)
	for i := 0; i < 1000; i++ {
		v := r.Uint64()
		if seen[v] {
			t.Fatalf("Sfc64 repeated value %d within 1000 draws", v)
		}
		seen[v] = true
	}
}

func TestInt63NonNegative(t *testing.T) {
	r := NewRomuTrio(5)
	s := NewSfc64(5)
	for i := 0; i < 100; i++ {
		if r.Int63() < 0 || s.Int63() < 0 {
			t.Fatal("Int63 returned a negative value")
		}
	}
}
