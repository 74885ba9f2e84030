package pipeline

import (
	"context"
	"image"
	"os"
	"testing"

	"gocv.io/x/gocv"

	"oralscan/internal/baseline"
	"oralscan/internal/evidence"
	"oralscan/internal/sampler"
	"oralscan/internal/semantics"
	"oralscan/internal/testsupport"
)

// fakeSource serves synthetic frames without touching a video decoder.
type fakeSource struct {
	count int
	fps   float64
	make  func(t *testing.T, index int) gocv.Mat
	t     *testing.T
}

func (f *fakeSource) Frame(index int) (gocv.Mat, bool) {
	if index < 0 || index >= f.count {
		return gocv.NewMat(), false
	}
	frame := f.make(f.t, index)
	clone := frame.Clone()
	return clone, true
}

func (f *fakeSource) Count() int   { return f.count }
func (f *fakeSource) FPS() float64 { return f.fps }

func neutralSource(t *testing.T, count int) *fakeSource {
	return &fakeSource{
		count: count,
		fps:   30,
		t:     t,
		make: func(t *testing.T, index int) gocv.Mat {
			return testsupport.SolidFrame(t, 120, 160, testsupport.ColorToothWhite)
		},
	}
}

func TestExtractFromProviderProducesBoundedKeyframes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)

	keyframes, err := p.ExtractFromProvider(context.Background(), neutralSource(t, 600), "session-1")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(keyframes) < cfg.Keyframes.Min || len(keyframes) > cfg.Keyframes.Max {
		t.Fatalf("keyframe count %d outside [%d, %d]", len(keyframes), cfg.Keyframes.Min, cfg.Keyframes.Max)
	}

	for i, kf := range keyframes {
		if kf.ID == "" {
			t.Fatalf("keyframe %d missing id", i)
		}
		if i > 0 && kf.Index <= keyframes[i-1].Index {
			t.Fatalf("keyframes out of source order at %d", i)
		}
		if kf.Tags.ToothType != semantics.ToothAnterior {
			t.Fatalf("white frame should classify anterior, got %q", kf.Tags.ToothType)
		}
		if _, err := os.Stat(kf.ImagePath); err != nil {
			t.Fatalf("keyframe image not persisted: %v", err)
		}
	}
}

// TestExtractFromProviderTagsInflamedRegion models a 20s capture where frames
// 150-180 show reddened gum tissue and asserts the full extract-and-classify
// path surfaces a rule-triggered keyframe carrying the gum issue tag.
func TestExtractFromProviderTagsInflamedRegion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)

	src := &fakeSource{
		count: 600,
		fps:   30,
		t:     t,
		make: func(t *testing.T, index int) gocv.Mat {
			if index >= 150 && index <= 180 {
				frame := testsupport.SolidFrame(t, 120, 160, testsupport.ColorGumPink)
				testsupport.PaintRegion(t, frame, image.Rect(0, 0, 160, 24), testsupport.ColorInflamedRed)
				return frame
			}
			return testsupport.SolidFrame(t, 120, 160, testsupport.ColorToothWhite)
		},
	}

	keyframes, err := p.ExtractFromProvider(context.Background(), src, "session-inflamed")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	foundTriggered := false
	for _, kf := range keyframes {
		if kf.Index < 150 || kf.Index > 180 {
			continue
		}
		if !kf.Tags.HasIssue(semantics.IssueGumIssue) {
			t.Fatalf("inflamed keyframe %d missing %q: %v", kf.Index, semantics.IssueGumIssue, kf.Tags.Issues)
		}
		if kf.Strategy == string(sampler.TrackRuleTriggered) {
			foundTriggered = true
		}
	}
	if !foundTriggered {
		t.Fatal("expected a rule-triggered keyframe in frames 150-180")
	}
}

func TestExtractFromProviderCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ExtractFromProvider(ctx, neutralSource(t, 600), "session-1"); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestMatchAgainstBaseline(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)
	ctx := context.Background()

	store, err := baseline.OpenPath(cfg.Paths.BaselineDB)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	// No stored frames yet: no matches, no baseline.
	keyframes := []evidence.Keyframe{{
		ID: "kf-1",
		Tags: semantics.Tags{
			Side:      semantics.SideUnknown,
			ToothType: semantics.ToothAnterior,
			Region:    semantics.RegionUnknown,
		},
	}}
	matches, hasBaseline, err := p.MatchAgainstBaseline(ctx, store, "user-1", keyframes)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if hasBaseline || len(matches) != 0 {
		t.Fatalf("expected empty result without baseline, got %d matches", len(matches))
	}

	session, err := store.NewSession(ctx, "user-1", baseline.ZoneUpperFront)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	_, err = store.AppendFrames(ctx, session, []baseline.Frame{{
		FrameIndex: 3,
		Timestamp:  0.1,
		ImagePath:  "ref.jpg",
		Tags: semantics.Tags{
			Side:      semantics.SideUnknown,
			ToothType: semantics.ToothAnterior,
			Region:    semantics.RegionUnknown,
			Issues:    []semantics.Issue{semantics.IssueNone},
		},
	}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	matches, hasBaseline, err = p.MatchAgainstBaseline(ctx, store, "user-1", keyframes)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !hasBaseline {
		t.Fatal("expected baseline to be reported")
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].ZoneID != int(baseline.ZoneUpperFront) {
		t.Fatalf("match zone = %d", matches[0].ZoneID)
	}
	if matches[0].ZoneName != baseline.ZoneUpperFront.DisplayName() {
		t.Fatalf("match zone name = %q", matches[0].ZoneName)
	}
	if matches[0].MatchScore < cfg.Matching.MinMatchScore {
		t.Fatalf("accepted score %f below threshold", matches[0].MatchScore)
	}
}

func TestMatchAgainstBaselineNilStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)

	matches, hasBaseline, err := p.MatchAgainstBaseline(context.Background(), nil, "user-1", nil)
	if err != nil || hasBaseline || matches != nil {
		t.Fatalf("nil store should be a quiet no-op, got %v %v %v", matches, hasBaseline, err)
	}
}

func TestBuildRepresentativeBaseline(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)
	ctx := context.Background()

	store, err := baseline.OpenPath(cfg.Paths.BaselineDB)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	session, err := store.NewSession(ctx, "user-1", baseline.ZoneLowerFront)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	refTags := semantics.Tags{
		Side: semantics.SideLower, ToothType: semantics.ToothAnterior,
		Region: semantics.RegionGum, Issues: []semantics.Issue{semantics.IssueNone},
	}
	_, err = store.AppendFrames(ctx, session, []baseline.Frame{
		{FrameIndex: 0, ImagePath: "a.jpg", Tags: refTags},
		{FrameIndex: 1, ImagePath: "b.jpg", Tags: refTags},
		{FrameIndex: 2, ImagePath: "c.jpg", Tags: refTags},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	reps, err := p.BuildRepresentativeBaseline(ctx, store, "user-1")
	if err != nil {
		t.Fatalf("representative: %v", err)
	}
	if len(reps) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(reps))
	}
	if got := reps[baseline.ZoneLowerFront].FrameIndex; got != 1 {
		t.Fatalf("expected middle frame index 1, got %d", got)
	}
}

func TestQuickCheckAssembly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)
	ctx := context.Background()

	keyframes, err := p.ExtractFromProvider(ctx, neutralSource(t, 300), "session-qc")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	bundle, err := p.AssembleEvidence(evidence.Input{
		SessionID:   "session-qc",
		UserID:      "user-1",
		SessionType: evidence.SessionQuickCheck,
		Keyframes:   keyframes,
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if bundle.TotalFrames != len(keyframes) {
		t.Fatalf("bundle frame count %d != %d", bundle.TotalFrames, len(keyframes))
	}
	if bundle.Baseline == nil || bundle.Baseline.HasBaseline {
		t.Fatalf("expected empty baseline reference, got %+v", bundle.Baseline)
	}
	for _, frame := range bundle.Frames {
		if frame.ImageBase64 == "" {
			t.Fatalf("frame %s missing inline image payload", frame.FrameID)
		}
	}
}

func TestClassifyPassthrough(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := New(cfg, nil)

	frame := testsupport.SolidFrame(t, 120, 160, testsupport.ColorToothWhite)
	tags := p.Classify(frame)
	if tags.ToothType != semantics.ToothAnterior {
		t.Fatalf("expected anterior, got %q", tags.ToothType)
	}
}
