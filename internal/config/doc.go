// Package config loads, normalizes, and validates oralscan configuration.
//
// Configuration comes from a TOML file (default ~/.config/oralscan/config.toml
// or ./oralscan.toml), overlaid with ORALSCAN_* environment variables. All
// pipeline-level tunables live here so they can be adjusted without touching
// branching logic: keyframe bounds, sampler stride and priority threshold,
// upload limits, and the match score floor.
//
// Path fields are expanded (~ and relative paths) during Load; EnsureDirectories
// creates the staging, keyframe, and log directories on demand.
package config
