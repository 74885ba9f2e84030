// Package baseline persists per-user reference keyframes and matches new
// frames against them.
//
// A user's baseline is built one mouth zone at a time (zones 1 through 7).
// Each recording session appends frames for exactly one zone; stored frames
// are never rewritten, so older baselines stay intact for longitudinal
// comparison. Matching is purely structural: a new frame is compared to every
// stored frame by tag agreement, never by pixel similarity, and the result
// names the zone the best-matching reference frame came from.
package baseline
