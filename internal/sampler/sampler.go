package sampler

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"oralscan/internal/anomaly"
	"oralscan/internal/frames"
	"oralscan/internal/logging"
	"oralscan/internal/metrics"
)

// ErrNoReadableFrames indicates every scanned frame failed to decode.
var ErrNoReadableFrames = errors.New("no readable frames in source")

// Policy centralizes the sampler bounds and thresholds.
type Policy struct {
	MaxKeyframes         int
	MinKeyframes         int
	UniformSampleCount   int
	PriorityThreshold    float64
	ScanSamplesPerSecond float64
	// ProximityWindow is the frame distance within which uniform samples are
	// considered duplicates of a priority candidate.
	ProximityWindow int
}

// DefaultPolicy returns the sampler defaults.
func DefaultPolicy() Policy {
	return Policy{
		MaxKeyframes:         25,
		MinKeyframes:         5,
		UniformSampleCount:   20,
		PriorityThreshold:    0.5,
		ScanSamplesPerSecond: 1.0,
		ProximityWindow:      5,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.MaxKeyframes <= 0 {
		p.MaxKeyframes = d.MaxKeyframes
	}
	if p.MinKeyframes <= 0 || p.MinKeyframes > p.MaxKeyframes {
		p.MinKeyframes = d.MinKeyframes
		if p.MinKeyframes > p.MaxKeyframes {
			p.MinKeyframes = p.MaxKeyframes
		}
	}
	if p.UniformSampleCount <= 0 {
		p.UniformSampleCount = d.UniformSampleCount
	}
	if p.PriorityThreshold <= 0 || p.PriorityThreshold >= 1 {
		p.PriorityThreshold = d.PriorityThreshold
	}
	if p.ScanSamplesPerSecond <= 0 {
		p.ScanSamplesPerSecond = d.ScanSamplesPerSecond
	}
	if p.ProximityWindow <= 0 {
		p.ProximityWindow = d.ProximityWindow
	}
	return p
}

// Sampler runs the dual-track extraction against a frame provider.
type Sampler struct {
	scorer *anomaly.Scorer
	policy Policy
	logger *slog.Logger
}

// New constructs a Sampler; zero-valued policy fields fall back to defaults.
func New(scorer *anomaly.Scorer, policy Policy, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Sampler{scorer: scorer, policy: policy.normalized(), logger: logger}
}

// Extract runs both tracks and returns the bounded, index-ordered candidate
// sequence. The caller owns the returned candidates' pixel buffers.
func (s *Sampler) Extract(ctx context.Context, src frames.Provider) ([]Candidate, error) {
	priority, readable, err := s.scanPriority(ctx, src)
	if err != nil {
		CloseAll(priority)
		return nil, err
	}

	uniform, uniformReadable := s.sampleUniform(ctx, src, indices(priority))
	if readable+uniformReadable == 0 {
		return nil, ErrNoReadableFrames
	}

	merged, displaced := merge(priority, uniform)
	CloseAll(displaced)

	bounded, excess := bound(merged, s.policy.MaxKeyframes)
	CloseAll(excess)

	final := s.pad(ctx, src, bounded)

	s.logger.Info("dual-track extraction complete",
		slog.Int("priority", len(priority)),
		slog.Int("uniform", len(uniform)),
		slog.Int("final", len(final)))
	return final, nil
}

// scanPriority walks the source at the policy stride and keeps frames whose
// anomaly score clears the priority threshold. Unreadable frames are skipped.
func (s *Sampler) scanPriority(ctx context.Context, src frames.Provider) ([]Candidate, int, error) {
	stride := 1
	if fps := src.FPS(); fps > 0 {
		stride = int(fps / s.policy.ScanSamplesPerSecond)
		if stride < 1 {
			stride = 1
		}
	}

	var candidates []Candidate
	readable := 0
	for index := 0; index < src.Count(); index += stride {
		if err := ctx.Err(); err != nil {
			return candidates, readable, err
		}
		mat, ok := src.Frame(index)
		if !ok {
			metrics.UnreadableFramesTotal.Inc()
			continue
		}
		readable++
		metrics.FramesScannedTotal.Inc()

		score, reasons := s.scorer.Score(mat)
		if score < s.policy.PriorityThreshold {
			mat.Close()
			continue
		}
		metrics.PriorityCandidatesTotal.Inc()
		candidates = append(candidates, Candidate{
			Index:        index,
			Timestamp:    frames.Timestamp(index, src.FPS()),
			Image:        mat,
			Track:        TrackRuleTriggered,
			AnomalyScore: score,
			Reasons:      reasons,
		})
		s.logger.Debug("priority frame",
			slog.Int(logging.FieldFrameIndex, index),
			slog.Float64("score", score))
	}
	return candidates, readable, nil
}

// sampleUniform picks evenly spaced coverage frames, skipping the proximity
// window around priority candidates.
func (s *Sampler) sampleUniform(ctx context.Context, src frames.Provider, priorityIdx []int) ([]Candidate, int) {
	picks := withoutNearby(
		uniformIndices(s.policy.UniformSampleCount, src.Count()),
		priorityIdx, s.policy.ProximityWindow)

	var candidates []Candidate
	readable := 0
	for _, index := range picks {
		if ctx.Err() != nil {
			break
		}
		mat, ok := src.Frame(index)
		if !ok {
			metrics.UnreadableFramesTotal.Inc()
			continue
		}
		readable++
		candidates = append(candidates, Candidate{
			Index:     index,
			Timestamp: frames.Timestamp(index, src.FPS()),
			Image:     mat,
			Track:     TrackUniform,
			Quality:   frames.Quality(mat),
		})
	}
	return candidates, readable
}

// pad tops the sequence back up to the keyframe floor with additional uniform
// samples, avoiding indices already selected. Gives up when the source is
// exhausted.
func (s *Sampler) pad(ctx context.Context, src frames.Provider, current []Candidate) []Candidate {
	if len(current) >= s.policy.MinKeyframes {
		return current
	}

	taken := indexSet(current)
	for n := s.policy.MinKeyframes + len(current); len(current) < s.policy.MinKeyframes; n *= 2 {
		progressed := false
		for _, index := range uniformIndices(n, src.Count()) {
			if ctx.Err() != nil {
				return current
			}
			if _, exists := taken[index]; exists {
				continue
			}
			taken[index] = struct{}{}
			mat, ok := src.Frame(index)
			if !ok {
				continue
			}
			progressed = true
			current = append(current, Candidate{
				Index:     index,
				Timestamp: frames.Timestamp(index, src.FPS()),
				Image:     mat,
				Track:     TrackUniform,
				Quality:   frames.Quality(mat),
			})
			if len(current) >= s.policy.MinKeyframes {
				break
			}
		}
		if n >= src.Count() && !progressed {
			break
		}
	}

	sort.SliceStable(current, func(i, j int) bool { return current[i].Index < current[j].Index })
	return current
}
