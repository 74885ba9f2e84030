package sampler

import (
	"context"
	"image"
	"testing"

	"gocv.io/x/gocv"

	"oralscan/internal/anomaly"
	"oralscan/internal/testsupport"
)

// fakeSource serves synthetic frames so sampler behavior is testable without
// decoding real video.
type fakeSource struct {
	count int
	fps   float64
	make  func(index int) (gocv.Mat, bool)
}

func (f *fakeSource) Frame(index int) (gocv.Mat, bool) {
	if index < 0 || index >= f.count {
		return gocv.Mat{}, false
	}
	return f.make(index)
}

func (f *fakeSource) Count() int   { return f.count }
func (f *fakeSource) FPS() float64 { return f.fps }

func neutralFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(255, 255, 255, 0), 120, 160, gocv.MatTypeCV8UC3)
}

func inflamedFrame(t *testing.T) gocv.Mat {
	t.Helper()
	mat := neutralFrame()
	roi := mat.Region(image.Rect(0, 0, 160, 60))
	defer roi.Close()
	fill := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(testsupport.ColorInflamedRed.B, testsupport.ColorInflamedRed.G, testsupport.ColorInflamedRed.R, 0),
		roi.Rows(), roi.Cols(), gocv.MatTypeCV8UC3)
	defer fill.Close()
	fill.CopyTo(&roi)
	return mat
}

// TestExtractFlagsInjectedAnomaly models a 20s/30fps capture with inflamed
// tissue visible in frames 150-180.
func TestExtractFlagsInjectedAnomaly(t *testing.T) {
	src := &fakeSource{
		count: 600,
		fps:   30,
		make: func(index int) (gocv.Mat, bool) {
			if index >= 150 && index <= 180 {
				return inflamedFrame(t), true
			}
			return neutralFrame(), true
		},
	}

	s := New(anomaly.NewScorer(anomaly.Policy{}), Policy{}, nil)
	candidates, err := s.Extract(context.Background(), src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	defer CloseAll(candidates)

	if len(candidates) < 5 || len(candidates) > 25 {
		t.Fatalf("candidate count %d outside [5,25]", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Index <= candidates[i-1].Index {
			t.Fatalf("indices not strictly ascending: %d then %d", candidates[i-1].Index, candidates[i].Index)
		}
	}

	foundPriority := false
	for _, c := range candidates {
		if c.AnomalyScore < 0 || c.AnomalyScore > 1 {
			t.Fatalf("anomaly score out of range: %v", c.AnomalyScore)
		}
		if c.Track == TrackRuleTriggered && c.Index >= 150 && c.Index <= 180 {
			foundPriority = true
			hasRed := false
			for _, r := range c.Reasons {
				if r == anomaly.ReasonGumInflammation {
					hasRed = true
				}
			}
			if !hasRed {
				t.Fatalf("priority candidate missing gum_inflammation reason: %v", c.Reasons)
			}
		}
	}
	if !foundPriority {
		t.Fatal("expected a rule-triggered candidate in frames 150-180")
	}
}

func TestExtractNoReadableFrames(t *testing.T) {
	src := &fakeSource{
		count: 100,
		fps:   30,
		make:  func(int) (gocv.Mat, bool) { return gocv.Mat{}, false },
	}
	s := New(anomaly.NewScorer(anomaly.Policy{}), Policy{}, nil)
	if _, err := s.Extract(context.Background(), src); err != ErrNoReadableFrames {
		t.Fatalf("expected ErrNoReadableFrames, got %v", err)
	}
}

func TestExtractToleratesIsolatedCorruptFrames(t *testing.T) {
	src := &fakeSource{
		count: 300,
		fps:   30,
		make: func(index int) (gocv.Mat, bool) {
			if index%2 == 1 {
				return gocv.Mat{}, false
			}
			return neutralFrame(), true
		},
	}
	s := New(anomaly.NewScorer(anomaly.Policy{}), Policy{}, nil)
	candidates, err := s.Extract(context.Background(), src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	defer CloseAll(candidates)
	if len(candidates) < 5 {
		t.Fatalf("expected padding to reach the floor, got %d", len(candidates))
	}
}

func TestExtractPadsShortSource(t *testing.T) {
	src := &fakeSource{
		count: 8,
		fps:   30,
		make:  func(int) (gocv.Mat, bool) { return neutralFrame(), true },
	}
	s := New(anomaly.NewScorer(anomaly.Policy{}), Policy{}, nil)
	candidates, err := s.Extract(context.Background(), src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	defer CloseAll(candidates)
	if len(candidates) < 5 {
		t.Fatalf("expected at least the floor from an 8-frame source, got %d", len(candidates))
	}
}

func TestExtractCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{
		count: 100,
		fps:   30,
		make:  func(int) (gocv.Mat, bool) { return neutralFrame(), true },
	}
	s := New(anomaly.NewScorer(anomaly.Policy{}), Policy{}, nil)
	if _, err := s.Extract(ctx, src); err == nil {
		t.Fatal("expected context cancellation error")
	}
}
