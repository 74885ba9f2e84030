package sampler

import "sort"

// uniformIndices returns n evenly spaced frame indices across [0, frameCount).
// Mirrors a linspace over the full duration; collapses duplicates for short
// sources.
func uniformIndices(n, frameCount int) []int {
	if n <= 0 || frameCount <= 0 {
		return nil
	}
	if n >= frameCount {
		indices := make([]int, frameCount)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	indices := make([]int, 0, n)
	last := -1
	for i := 0; i < n; i++ {
		idx := 0
		if n > 1 {
			idx = int(float64(i) * float64(frameCount-1) / float64(n-1))
		}
		if idx != last {
			indices = append(indices, idx)
			last = idx
		}
	}
	return indices
}

// withoutNearby drops indices that fall within window frames of any anchor.
func withoutNearby(indices, anchors []int, window int) []int {
	if len(anchors) == 0 {
		return indices
	}
	kept := make([]int, 0, len(indices))
	for _, idx := range indices {
		near := false
		for _, anchor := range anchors {
			delta := idx - anchor
			if delta < 0 {
				delta = -delta
			}
			if delta <= window {
				near = true
				break
			}
		}
		if !near {
			kept = append(kept, idx)
		}
	}
	return kept
}

// merge concatenates both tracks, sorts ascending by index, and drops exact
// index collisions keeping the rule-triggered entry. Returns the survivors
// and the displaced candidates so the caller can release their buffers.
func merge(priority, uniform []Candidate) (kept, dropped []Candidate) {
	all := make([]Candidate, 0, len(priority)+len(uniform))
	all = append(all, priority...)
	all = append(all, uniform...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Index != all[j].Index {
			return all[i].Index < all[j].Index
		}
		// Rule-triggered entries win ties.
		return all[i].Track == TrackRuleTriggered && all[j].Track != TrackRuleTriggered
	})

	kept = make([]Candidate, 0, len(all))
	for _, c := range all {
		if n := len(kept); n > 0 && kept[n-1].Index == c.Index {
			dropped = append(dropped, c)
			continue
		}
		kept = append(kept, c)
	}
	return kept, dropped
}

// bound enforces the keyframe cap by keeping the highest-anomaly-score
// entries, then restores ascending index order. Diagnostic (rule-triggered)
// frames are never displaced by low-information uniform ones.
func bound(candidates []Candidate, max int) (kept, dropped []Candidate) {
	if max <= 0 || len(candidates) <= max {
		return candidates, nil
	}

	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AnomalyScore != ranked[j].AnomalyScore {
			return ranked[i].AnomalyScore > ranked[j].AnomalyScore
		}
		if ranked[i].Track != ranked[j].Track {
			return ranked[i].Track == TrackRuleTriggered
		}
		return ranked[i].Index < ranked[j].Index
	})

	kept = ranked[:max]
	dropped = ranked[max:]
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Index < kept[j].Index })
	return kept, dropped
}

// indexSet builds a membership set over candidate indices.
func indexSet(candidates []Candidate) map[int]struct{} {
	set := make(map[int]struct{}, len(candidates))
	for _, c := range candidates {
		set[c.Index] = struct{}{}
	}
	return set
}

func indices(candidates []Candidate) []int {
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.Index
	}
	return out
}
