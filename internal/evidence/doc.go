// Package evidence assembles analysis results into a bounded, self-contained
// bundle for downstream consumers.
//
// A bundle carries every keyframe's structured tags plus an inline base64
// image payload, and optionally the baseline reference block produced by
// matching. Keyframes whose image file has gone missing keep their metadata
// and simply omit the payload, so one lost file never invalidates a whole
// session. Frames are always ordered by their position in the source video.
package evidence
