package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"oralscan/internal/evidence"
	"oralscan/internal/frames"
	"oralscan/internal/sampler"
	"oralscan/internal/semantics"
	"oralscan/internal/services"
)

// persistKeyframes writes each candidate's image as a JPEG under the session
// directory and returns the finished keyframe records in source order.
func (p *Pipeline) persistKeyframes(sessionID string, candidates []sampler.Candidate, tags []semantics.Tags) ([]evidence.Keyframe, error) {
	dir := filepath.Join(p.cfg.Paths.KeyframeDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "persist", "create session directory", err)
	}

	params := []int{gocv.IMWriteJpegQuality, p.cfg.Keyframes.JPEGQuality}

	keyframes := make([]evidence.Keyframe, 0, len(candidates))
	for i, candidate := range candidates {
		path := filepath.Join(dir, fmt.Sprintf("frame_%06d.jpg", candidate.Index))
		if ok := gocv.IMWriteWithParams(path, candidate.Image, params); !ok {
			return nil, services.Wrap(services.ErrTransient, "pipeline", "persist",
				fmt.Sprintf("encode keyframe %d", candidate.Index), nil)
		}

		keyframes = append(keyframes, evidence.Keyframe{
			ID:           uuid.NewString(),
			Index:        candidate.Index,
			Timestamp:    frames.FormatTimestamp(candidate.Timestamp),
			Seconds:      candidate.Timestamp.Seconds(),
			Tags:         tags[i],
			ImagePath:    path,
			AnomalyScore: candidate.AnomalyScore,
			Strategy:     string(candidate.Track),
			Quality:      candidate.Quality,
		})
	}
	return keyframes, nil
}
