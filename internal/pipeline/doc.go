// Package pipeline wires the capture stages together: source validation,
// dual-track sampling, semantic classification, keyframe persistence,
// baseline matching, and evidence assembly.
//
// Each stage lives in its own package; pipeline owns only the orchestration
// and the session-level bookkeeping. Classification fans out across a small
// worker pool since frames are independent, then results are gathered back
// into source order.
package pipeline
