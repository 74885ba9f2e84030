package evidence

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"oralscan/internal/baseline"
	"oralscan/internal/semantics"
	"oralscan/internal/services"
)

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestAssembleEmptySet(t *testing.T) {
	assembler := NewAssembler(nil)

	_, err := assembler.Assemble(Input{SessionID: "s1", UserID: "u1", SessionType: SessionQuickCheck})
	if !errors.Is(err, ErrNoKeyframes) {
		t.Fatalf("expected ErrNoKeyframes, got %v", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestAssembleOrdersAndEncodes(t *testing.T) {
	dir := t.TempDir()
	assembler := NewAssembler(nil)

	bundle, err := assembler.Assemble(Input{
		SessionID:   "s1",
		UserID:      "u1",
		SessionType: SessionBaseline,
		Zone:        baseline.ZoneUpperFront,
		Keyframes: []Keyframe{
			{ID: "b", Index: 90, Timestamp: "00:03.00", ImagePath: writeImage(t, dir, "b.jpg")},
			{ID: "a", Index: 30, Timestamp: "00:01.00", ImagePath: writeImage(t, dir, "a.jpg")},
		},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if bundle.TotalFrames != 2 || len(bundle.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(bundle.Frames))
	}
	if bundle.Frames[0].FrameID != "a" {
		t.Fatalf("frames not in source order: first is %q", bundle.Frames[0].FrameID)
	}
	want := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	if bundle.Frames[0].ImageBase64 != want {
		t.Fatalf("image payload mismatch")
	}
	if bundle.ZoneID != int(baseline.ZoneUpperFront) {
		t.Fatalf("zone id not carried: %d", bundle.ZoneID)
	}
	if bundle.Baseline != nil {
		t.Fatal("baseline sessions should not carry a reference block")
	}
}

func TestAssembleMissingImageKeepsMetadata(t *testing.T) {
	assembler := NewAssembler(nil)

	bundle, err := assembler.Assemble(Input{
		SessionID:   "s1",
		UserID:      "u1",
		SessionType: SessionQuickCheck,
		Keyframes: []Keyframe{
			{ID: "a", Index: 0, Timestamp: "00:00.00", ImagePath: "/nonexistent/frame.jpg",
				Tags: semantics.Tags{Side: semantics.SideUpper}},
		},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	frame := bundle.Frames[0]
	if frame.ImageBase64 != "" {
		t.Fatal("missing file should omit the payload")
	}
	if frame.MetaTags.Side != semantics.SideUpper {
		t.Fatal("metadata should survive a missing image")
	}
}

func TestAssembleBaselineReference(t *testing.T) {
	assembler := NewAssembler(nil)

	keyframes := []Keyframe{{ID: "a", Index: 0, Timestamp: "00:00.00", ImagePath: "/missing.jpg"}}

	bundle, err := assembler.Assemble(Input{
		SessionID: "s1", UserID: "u1", SessionType: SessionQuickCheck,
		Keyframes: keyframes, HasBaseline: false,
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if bundle.Baseline == nil || bundle.Baseline.HasBaseline {
		t.Fatalf("expected empty reference block, got %+v", bundle.Baseline)
	}
	if bundle.Baseline.ComparisonMode != baseline.ModeNone {
		t.Fatalf("expected mode none, got %q", bundle.Baseline.ComparisonMode)
	}

	matches := []MatchRecord{
		{FrameID: "a", ZoneID: 1, MatchScore: 0.7},
		{FrameID: "a", ZoneID: 2, MatchScore: 0.65},
		{FrameID: "a", ZoneID: 3, MatchScore: 1.0},
	}
	bundle, err = assembler.Assemble(Input{
		SessionID: "s1", UserID: "u1", SessionType: SessionQuickCheck,
		Keyframes: keyframes, HasBaseline: true, Matches: matches,
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if got := bundle.Baseline.ComparisonMode; got != baseline.ModePartial {
		t.Fatalf("3 matched zones should grade partial, got %q", got)
	}
	if len(bundle.Baseline.Matches) != 3 {
		t.Fatalf("matches not carried: %d", len(bundle.Baseline.Matches))
	}
}

func TestBundleJSONShape(t *testing.T) {
	dir := t.TempDir()
	assembler := NewAssembler(nil)

	bundle, err := assembler.Assemble(Input{
		SessionID: "s1", UserID: "u1", SessionType: SessionQuickCheck,
		Keyframes: []Keyframe{
			{ID: "a", Index: 0, Timestamp: "00:00.00", ImagePath: writeImage(t, dir, "a.jpg"),
				Strategy: "rule_triggered", AnomalyScore: 0.6},
		},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	raw, err := bundle.JSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	for _, key := range []string{"session_id", "session_type", "total_frames", "frames", "baseline_reference"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %q in bundle JSON", key)
		}
	}
	if _, ok := decoded["zone_id"]; ok {
		t.Fatal("quick check bundles should omit zone_id")
	}
}
