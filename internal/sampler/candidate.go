package sampler

import (
	"time"

	"gocv.io/x/gocv"

	"oralscan/internal/anomaly"
)

// Track identifies which sampling track proposed a candidate.
type Track string

const (
	TrackRuleTriggered Track = "rule_triggered"
	TrackUniform       Track = "uniform"
)

// Candidate is a frame proposed by either track, prior to final bounding.
// The Image is owned by the candidate; callers release it with Close.
type Candidate struct {
	Index     int
	Timestamp time.Duration
	Image     gocv.Mat
	Track     Track
	// AnomalyScore is 0 for uniform candidates; they are never scored.
	AnomalyScore float64
	Reasons      []anomaly.Reason
	// Quality is Laplacian sharpness, recorded for uniform candidates only.
	Quality float64
}

// Close releases the candidate's pixel buffer. Safe to call more than once.
func (c *Candidate) Close() {
	_ = c.Image.Close()
}

// CloseAll releases every candidate in the slice.
func CloseAll(candidates []Candidate) {
	for i := range candidates {
		candidates[i].Close()
	}
}
