package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"oralscan/internal/anomaly"
	"oralscan/internal/baseline"
	"oralscan/internal/config"
	"oralscan/internal/evidence"
	"oralscan/internal/frames"
	"oralscan/internal/logging"
	"oralscan/internal/metrics"
	"oralscan/internal/sampler"
	"oralscan/internal/semantics"
	"oralscan/internal/services"
)

// Pipeline orchestrates keyframe extraction, classification, matching, and
// evidence assembly for one configured installation.
type Pipeline struct {
	cfg        *config.Config
	logger     *slog.Logger
	classifier *semantics.Classifier
	sampler    *sampler.Sampler
	matcher    *baseline.Matcher
	assembler  *evidence.Assembler
}

// New builds a pipeline from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.FieldComponent, "pipeline")

	samplerPolicy := sampler.Policy{
		MaxKeyframes:         cfg.Keyframes.Max,
		MinKeyframes:         cfg.Keyframes.Min,
		UniformSampleCount:   cfg.Keyframes.UniformSampleCount,
		PriorityThreshold:    cfg.Keyframes.PriorityThreshold,
		ScanSamplesPerSecond: cfg.Keyframes.ScanSamplesPerSecond,
		ProximityWindow:      cfg.Keyframes.ProximityWindow,
	}

	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		classifier: semantics.NewClassifier(semantics.DefaultPolicy()),
		sampler:    sampler.New(anomaly.NewScorer(anomaly.Policy{}), samplerPolicy, logger),
		matcher:    baseline.NewMatcher(baseline.MatchPolicy{MinScore: cfg.Matching.MinMatchScore}),
		assembler:  evidence.NewAssembler(logger),
	}
}

// Classify tags a single frame.
func (p *Pipeline) Classify(frame gocv.Mat) semantics.Tags {
	return p.classifier.Classify(frame)
}

// ExtractKeyframes validates and decodes a video file, then runs the full
// extraction flow. Keyframe images are written under the session's directory.
func (p *Pipeline) ExtractKeyframes(ctx context.Context, videoPath, sessionID string) ([]evidence.Keyframe, error) {
	limits := frames.Limits{
		MaxDurationSeconds: p.cfg.Video.MaxDurationSeconds,
		MaxSizeMB:          p.cfg.Video.MaxSizeMB,
	}
	if err := frames.Validate(videoPath, limits); err != nil {
		metrics.RunsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	src, err := frames.Open(videoPath)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, services.Wrap(services.ErrValidation, "pipeline", "extract", "open video source", err)
	}
	defer func() { _ = src.Close() }()

	return p.ExtractFromProvider(ctx, src, sessionID)
}

// ExtractFromProvider runs extraction against an already-open frame source.
func (p *Pipeline) ExtractFromProvider(ctx context.Context, src frames.Provider, sessionID string) ([]evidence.Keyframe, error) {
	started := time.Now()
	defer func() {
		metrics.RunDuration.WithLabelValues("extract").Observe(time.Since(started).Seconds())
	}()

	candidates, err := p.sampler.Extract(ctx, src)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	defer sampler.CloseAll(candidates)

	tags := p.classifyAll(ctx, candidates)
	if err := ctx.Err(); err != nil {
		metrics.RunsTotal.WithLabelValues("canceled").Inc()
		return nil, err
	}

	keyframes, err := p.persistKeyframes(sessionID, candidates, tags)
	if err != nil {
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.RunsTotal.WithLabelValues("success").Inc()
	p.logger.Info("keyframes extracted",
		logging.FieldRunID, sessionID,
		"count", len(keyframes),
		"duration", time.Since(started).Round(time.Millisecond).String())
	return keyframes, nil
}

// classifyAll fans classification out over a worker pool and gathers results
// back by candidate position.
func (p *Pipeline) classifyAll(ctx context.Context, candidates []sampler.Candidate) []semantics.Tags {
	tags := make([]semantics.Tags, len(candidates))
	if len(candidates) == 0 {
		return tags
	}

	workers := runtime.NumCPU()
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tags[i] = p.classifier.Classify(candidates[i].Image)
			}
		}()
	}

feed:
	for i := range candidates {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return tags
}

// MatchAgainstBaseline scores every keyframe against the user's stored
// baseline. The second return reports whether the user has any baseline
// frames at all.
func (p *Pipeline) MatchAgainstBaseline(ctx context.Context, store *baseline.Store, userID string, keyframes []evidence.Keyframe) ([]evidence.MatchRecord, bool, error) {
	if store == nil {
		return nil, false, nil
	}

	snapshot, err := store.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, false, services.Wrap(services.ErrTransient, "pipeline", "match", "load baseline snapshot", err)
	}
	if !snapshot.HasFrames() {
		return nil, false, nil
	}

	var records []evidence.MatchRecord
	for _, kf := range keyframes {
		match, ok := p.matcher.BestMatch(kf.Tags, snapshot)
		if !ok {
			continue
		}
		metrics.MatchScores.Observe(match.Score)
		records = append(records, evidence.MatchRecord{
			FrameID:           kf.ID,
			BaselineFrameID:   match.Frame.ID,
			BaselineSessionID: match.Frame.SessionID,
			ZoneID:            int(match.Frame.Zone),
			ZoneName:          match.Frame.Zone.DisplayName(),
			BaselineTimestamp: match.Frame.Timestamp,
			BaselineImageURL:  match.Frame.ImagePath,
			BaselineCreatedAt: match.Frame.CapturedAt.Format(time.RFC3339),
			MatchScore:        match.Score,
		})
	}

	p.logger.Info("baseline matching complete",
		logging.FieldUserID, userID,
		"matched", len(records),
		"keyframes", len(keyframes))
	return records, true, nil
}

// BuildRepresentativeBaseline picks one stand-in frame per covered zone.
func (p *Pipeline) BuildRepresentativeBaseline(ctx context.Context, store *baseline.Store, userID string) (map[baseline.Zone]baseline.Frame, error) {
	snapshot, err := store.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "representative", "load baseline snapshot", err)
	}
	return snapshot.Representative(), nil
}

// AssembleEvidence builds the final bundle for a session.
func (p *Pipeline) AssembleEvidence(input evidence.Input) (*evidence.Bundle, error) {
	return p.assembler.Assemble(input)
}

// QuickCheck runs the full analysis flow for one video: extract, match
// against the user's baseline when a store is supplied, and assemble.
func (p *Pipeline) QuickCheck(ctx context.Context, store *baseline.Store, videoPath, userID string) (*evidence.Bundle, error) {
	sessionID := uuid.NewString()
	ctx = services.WithRunID(ctx, sessionID)

	keyframes, err := p.ExtractKeyframes(ctx, videoPath, sessionID)
	if err != nil {
		return nil, err
	}

	matches, hasBaseline, err := p.MatchAgainstBaseline(ctx, store, userID, keyframes)
	if err != nil {
		return nil, err
	}

	return p.AssembleEvidence(evidence.Input{
		SessionID:   sessionID,
		UserID:      userID,
		SessionType: evidence.SessionQuickCheck,
		Keyframes:   keyframes,
		Matches:     matches,
		HasBaseline: hasBaseline,
	})
}

// RecordBaseline extracts keyframes from a zone recording and appends them to
// the user's stored baseline.
func (p *Pipeline) RecordBaseline(ctx context.Context, store *baseline.Store, videoPath, userID string, zone baseline.Zone) (*evidence.Bundle, error) {
	session, err := store.NewSession(ctx, userID, zone)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "baseline", "create session", err)
	}
	ctx = services.WithRunID(ctx, session.ID)

	keyframes, err := p.ExtractKeyframes(ctx, videoPath, session.ID)
	if err != nil {
		return nil, err
	}

	stored := make([]baseline.Frame, 0, len(keyframes))
	for _, kf := range keyframes {
		stored = append(stored, baseline.Frame{
			FrameIndex: kf.Index,
			Timestamp:  kf.Seconds,
			ImagePath:  kf.ImagePath,
			Tags:       kf.Tags,
		})
	}
	if _, err := store.AppendFrames(ctx, session, stored); err != nil {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "baseline", "store frames", err)
	}

	return p.AssembleEvidence(evidence.Input{
		SessionID:   session.ID,
		UserID:      userID,
		SessionType: evidence.SessionBaseline,
		Zone:        zone,
		Keyframes:   keyframes,
	})
}
