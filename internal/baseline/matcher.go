package baseline

import (
	"sort"

	"oralscan/internal/semantics"
)

// ComparisonMode grades how much of the mouth a match run could compare
// against stored references.
type ComparisonMode string

const (
	ModeNone    ComparisonMode = "none"
	ModeMinimal ComparisonMode = "minimal"
	ModePartial ComparisonMode = "partial"
	ModeFull    ComparisonMode = "full"
)

// ModeForZoneCount grades coverage by how many distinct zones produced at
// least one accepted match.
func ModeForZoneCount(matchedZones int) ComparisonMode {
	switch {
	case matchedZones <= 0:
		return ModeNone
	case matchedZones <= 2:
		return ModeMinimal
	case matchedZones <= 5:
		return ModePartial
	default:
		return ModeFull
	}
}

// MatchPolicy carries the structural matching weights and acceptance
// threshold. Weights sum to 1; an unknown value on either side of an axis
// earns partial credit instead of a hard mismatch, since unknown means
// unclassifiable rather than different.
type MatchPolicy struct {
	SideWeight      float64
	ToothTypeWeight float64
	RegionWeight    float64
	UnknownCredit   float64
	MinScore        float64
}

// DefaultMatchPolicy returns the tuned matching weights.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{}.normalized()
}

func (p MatchPolicy) normalized() MatchPolicy {
	if p.SideWeight <= 0 {
		p.SideWeight = 0.35
	}
	if p.ToothTypeWeight <= 0 {
		p.ToothTypeWeight = 0.35
	}
	if p.RegionWeight <= 0 {
		p.RegionWeight = 0.30
	}
	if p.UnknownCredit <= 0 {
		p.UnknownCredit = 0.3
	}
	if p.MinScore <= 0 {
		p.MinScore = 0.5
	}
	return p
}

// Match pairs a reference frame with the score it earned.
type Match struct {
	Frame Frame
	Score float64
}

// Matcher scores structural tag agreement between new frames and stored
// reference frames. It never inspects pixels.
type Matcher struct {
	policy MatchPolicy
}

// NewMatcher builds a matcher. Zero-valued policy fields fall back to the
// defaults.
func NewMatcher(policy MatchPolicy) *Matcher {
	return &Matcher{policy: policy.normalized()}
}

// Score computes weighted tag agreement between two classifications. Each
// axis contributes its full weight on an exact known-value match, partial
// credit when either side is unknown, and nothing on a known mismatch.
func (m *Matcher) Score(a, b semantics.Tags) float64 {
	var score float64

	switch {
	case a.Side == b.Side && a.Side != semantics.SideUnknown:
		score += m.policy.SideWeight
	case a.Side == semantics.SideUnknown || b.Side == semantics.SideUnknown:
		score += m.policy.SideWeight * m.policy.UnknownCredit
	}

	switch {
	case a.ToothType == b.ToothType && a.ToothType != semantics.ToothUnknown:
		score += m.policy.ToothTypeWeight
	case a.ToothType == semantics.ToothUnknown || b.ToothType == semantics.ToothUnknown:
		score += m.policy.ToothTypeWeight * m.policy.UnknownCredit
	}

	switch {
	case a.Region == b.Region && a.Region != semantics.RegionUnknown:
		score += m.policy.RegionWeight
	case a.Region == semantics.RegionUnknown || b.Region == semantics.RegionUnknown:
		score += m.policy.RegionWeight * m.policy.UnknownCredit
	}

	if score > 1 {
		score = 1
	}
	return score
}

// BestMatch returns the highest-scoring reference frame at or above the
// acceptance threshold. Ties go to the earliest-captured frame, then the
// lowest frame id, so repeated runs against the same baseline always pick
// the same reference.
func (m *Matcher) BestMatch(tags semantics.Tags, snapshot *Snapshot) (Match, bool) {
	if !snapshot.HasFrames() {
		return Match{}, false
	}

	candidates := snapshot.orderedFrames()
	best := Match{}
	found := false
	for _, frame := range candidates {
		score := m.Score(tags, frame.Tags)
		if score < m.policy.MinScore {
			continue
		}
		if !found || score > best.Score {
			best = Match{Frame: frame, Score: score}
			found = true
		}
	}
	return best, found
}

// MatchedZones counts the distinct zones appearing in a set of matches.
func MatchedZones(matches []Match) int {
	seen := make(map[Zone]bool)
	for _, match := range matches {
		seen[match.Frame.Zone] = true
	}
	return len(seen)
}

// orderedFrames flattens the snapshot into capture order with frame id as
// the final tie-breaker.
func (s *Snapshot) orderedFrames() []Frame {
	var frames []Frame
	for _, zone := range AllZones() {
		frames = append(frames, s.frames[zone]...)
	}
	sort.Slice(frames, func(i, j int) bool {
		if !frames[i].CapturedAt.Equal(frames[j].CapturedAt) {
			return frames[i].CapturedAt.Before(frames[j].CapturedAt)
		}
		return frames[i].ID < frames[j].ID
	})
	return frames
}
