package baseline

import (
	"time"

	"oralscan/internal/semantics"
)

// Session records one baseline recording pass over a single zone.
type Session struct {
	ID        string
	UserID    string
	Zone      Zone
	CreatedAt time.Time
}

// Frame is one stored reference keyframe with its classification.
type Frame struct {
	ID         int64
	SessionID  string
	UserID     string
	Zone       Zone
	FrameIndex int
	Timestamp  float64
	ImagePath  string
	Tags       semantics.Tags
	CapturedAt time.Time
}

// Snapshot is a user's full baseline loaded into memory for matching.
type Snapshot struct {
	UserID string
	frames map[Zone][]Frame
}

// HasFrames reports whether the snapshot holds any reference frames at all.
func (s *Snapshot) HasFrames() bool {
	return s != nil && len(s.frames) > 0
}

// Zones lists the zones with at least one stored frame, in zone order.
func (s *Snapshot) Zones() []Zone {
	var zones []Zone
	for _, z := range AllZones() {
		if len(s.frames[z]) > 0 {
			zones = append(zones, z)
		}
	}
	return zones
}

// FramesForZone returns the stored frames for one zone, oldest capture first.
func (s *Snapshot) FramesForZone(zone Zone) []Frame {
	return s.frames[zone]
}

// Coverage maps every zone to whether the snapshot covers it.
func (s *Snapshot) Coverage() map[Zone]bool {
	coverage := make(map[Zone]bool, ZoneCount)
	for _, z := range AllZones() {
		coverage[z] = len(s.frames[z]) > 0
	}
	return coverage
}

// Representative picks one stand-in frame per covered zone: the middle frame
// of the zone's stored sequence, which tends to be the steadiest view.
func (s *Snapshot) Representative() map[Zone]Frame {
	out := make(map[Zone]Frame)
	for _, z := range AllZones() {
		frames := s.frames[z]
		if len(frames) == 0 {
			continue
		}
		out[z] = frames[len(frames)/2]
	}
	return out
}
