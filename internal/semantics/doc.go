// Package semantics derives structured anatomical tags from single frames.
//
// Classification is a composition of independent deterministic heuristics, not
// a learned model: color-mask coverage decides visibility and side, contour
// morphology decides tooth type, and a prioritized cascade of texture and
// projection tests decides the visible region. Issues form an independent
// multi-label axis. A frame failing the validity gate (neither tooth- nor
// gum-colored coverage) classifies to all-unknown with zero confidence, which
// is a valid first-class output rather than an error.
//
// Every numeric threshold lives in Policy so tuning is decoupled from the
// branching logic. Identical pixel input always yields identical tags.
package semantics
