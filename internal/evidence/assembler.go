package evidence

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"sort"
	"time"

	"oralscan/internal/baseline"
	"oralscan/internal/logging"
	"oralscan/internal/services"
)

// ErrNoKeyframes marks an assembly attempt with an empty keyframe set.
var ErrNoKeyframes = errors.New("no keyframes to assemble")

// Input collects everything the assembler needs for one session.
type Input struct {
	SessionID   string
	UserID      string
	SessionType string
	Zone        baseline.Zone
	Keyframes   []Keyframe
	Matches     []MatchRecord
	HasBaseline bool
}

// Assembler builds evidence bundles.
type Assembler struct {
	logger *slog.Logger
}

// NewAssembler returns an assembler logging through the given logger.
func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{logger: logger.With(logging.FieldComponent, "evidence")}
}

// Assemble builds the bundle for one session. Keyframes are reordered by
// source position. A keyframe whose image file cannot be read keeps its
// metadata and omits the inline payload.
func (a *Assembler) Assemble(input Input) (*Bundle, error) {
	if len(input.Keyframes) == 0 {
		return nil, services.Wrap(services.ErrValidation, "evidence", "assemble",
			"session produced no keyframes", ErrNoKeyframes)
	}

	keyframes := make([]Keyframe, len(input.Keyframes))
	copy(keyframes, input.Keyframes)
	sort.Slice(keyframes, func(i, j int) bool { return keyframes[i].Index < keyframes[j].Index })

	frames := make([]FrameRecord, 0, len(keyframes))
	for _, kf := range keyframes {
		record := FrameRecord{
			FrameID:            kf.ID,
			FrameIndex:         kf.Index,
			Timestamp:          kf.Timestamp,
			MetaTags:           kf.Tags,
			ImageURL:           kf.ImagePath,
			AnomalyScore:       kf.AnomalyScore,
			ExtractionStrategy: kf.Strategy,
			Quality:            kf.Quality,
		}

		if payload, err := os.ReadFile(kf.ImagePath); err == nil {
			record.ImageBase64 = base64.StdEncoding.EncodeToString(payload)
		} else {
			a.logger.Warn("keyframe image unreadable, keeping metadata only",
				logging.FieldFrameIndex, kf.Index, "path", kf.ImagePath, "error", err)
		}

		frames = append(frames, record)
	}

	bundle := &Bundle{
		SessionID:   input.SessionID,
		UserID:      input.UserID,
		SessionType: input.SessionType,
		ZoneID:      int(input.Zone),
		CreatedAt:   time.Now().UTC(),
		TotalFrames: len(frames),
		Frames:      frames,
	}

	if input.SessionType == SessionQuickCheck {
		bundle.Baseline = a.buildReference(input)
	}

	return bundle, nil
}

// buildReference grades baseline coverage by the number of distinct zones
// that produced an accepted match.
func (a *Assembler) buildReference(input Input) *Reference {
	if !input.HasBaseline {
		return &Reference{HasBaseline: false, ComparisonMode: baseline.ModeNone}
	}

	zones := make(map[int]bool)
	for _, match := range input.Matches {
		zones[match.ZoneID] = true
	}

	return &Reference{
		HasBaseline:    true,
		ComparisonMode: baseline.ModeForZoneCount(len(zones)),
		Matches:        input.Matches,
	}
}
