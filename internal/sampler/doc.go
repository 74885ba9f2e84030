// Package sampler implements dual-track keyframe candidate extraction.
//
// A rule-triggered track scans the source at roughly one sample per second
// and keeps frames whose anomaly score clears the priority threshold. An
// independent uniform track picks evenly spaced frames for coverage, skipping
// the neighborhood of existing priority candidates. The tracks are then
// merged, deduplicated (priority wins index collisions), bounded to the
// keyframe cap by anomaly score, and padded back up to the floor with fresh
// uniform samples.
//
// Merge, dedup, bound, and pad are pure functions over candidate slices so
// each stage is independently testable. The only fatal condition is a source
// that never yields a readable frame.
package sampler
