package caravel

import "testing"

func TestSingleObjectiveComparison(t *testing.T) {
	a := NewIndividual(2)
	b := NewIndividual(2)
	a.SetFitness(1.0, 0)
	a.SetFitness(9.0, 1)
	b.SetFitness(2.0, 0)
	b.SetFitness(1.0, 1)

	cmp := SingleObjectiveComparison{Objective: 0}
	if !cmp.Compare(a, b) {
		t.Error("Compare(a, b) = false, want true on objective 0")
	}
	cmp.Objective = 1
	if cmp.Compare(a, b) {
		t.Error("Compare(a, b) = true, want false on objective 1")
	}
	if a.GetFitness(1) != 9.0 {
		t.Errorf("GetFitness(1) = %v, want 9", a.GetFitness(1))
	}
}

func TestCrowdedComparison(t *testing.T) {
	a := &Individual{Rank: 0, Distance: 1}
	b := &Individual{Rank: 1, Distance: 5}
	c := &Individual{Rank: 0, Distance: 3}

	cmp := CrowdedComparison{}
	if !cmp.Compare(a, b) {
		t.Error("lower rank should precede")
	}
	if cmp.Compare(a, c) {
		t.Error("equal rank: larger distance should precede")
	}
	if !cmp.Compare(c, a) {
		t.Error("Compare(c, a) = false, want true")
	}
}
