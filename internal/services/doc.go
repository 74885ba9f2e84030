// Package services defines shared utilities consumed by the analysis
// pipeline and its collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, user IDs, and zone numbers for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that give run failures a
//     precise, classifiable reason (fatal vs per-frame vs validation).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across components.
package services
