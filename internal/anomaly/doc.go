// Package anomaly scores single frames for visible oral-health anomalies.
//
// Scoring is a pure heuristic over HSV pixel coverage: low-luminance deposits,
// yellow-hued plaque, and saturated red (inflamed gum) each contribute a
// capped term once their coverage clears a noise floor. There is no learned
// model; identical pixels always produce identical scores. Every threshold
// lives in Policy so tuning never touches the branching logic.
package anomaly
