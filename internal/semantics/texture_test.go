package semantics

import "testing"

func TestCountValleys(t *testing.T) {
	flat := make([]float64, 100)
	for i := range flat {
		flat[i] = 50
	}
	if got := countValleys(flat, 0.3); got != 0 {
		t.Fatalf("flat projection: expected 0 valleys, got %d", got)
	}

	// Two deep gaps between three plateaus.
	gapped := make([]float64, 150)
	for i := range gapped {
		gapped[i] = 100
	}
	for i := 40; i < 60; i++ {
		gapped[i] = 0
	}
	for i := 90; i < 110; i++ {
		gapped[i] = 0
	}
	if got := countValleys(gapped, 0.3); got < 2 {
		t.Fatalf("gapped projection: expected at least 2 valleys, got %d", got)
	}

	if got := countValleys(nil, 0.3); got != 0 {
		t.Fatalf("empty projection: expected 0 valleys, got %d", got)
	}
}

func TestMovingAverageWindowBounds(t *testing.T) {
	values := []float64{0, 10, 20, 30, 40}
	out := movingAverage(values, 3)
	if len(out) != len(values) {
		t.Fatalf("length mismatch: %d vs %d", len(out), len(values))
	}
	if out[0] != 5 {
		t.Fatalf("edge average: expected 5, got %f", out[0])
	}
	if out[2] != 20 {
		t.Fatalf("center average: expected 20, got %f", out[2])
	}
}
