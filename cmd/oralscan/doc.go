// Package main hosts the oralscan CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the analysis pipeline: keyframe
// extraction, single-image classification, quick-check runs with baseline
// matching, and baseline recording and inspection. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
