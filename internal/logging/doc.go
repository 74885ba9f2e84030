// Package logging constructs the slog loggers used across oralscan.
//
// Two output formats are supported: a tinted console handler for interactive
// use and a JSON handler for machine consumption. Standardized field keys and
// the WithContext helper keep run, user, and zone identifiers uniform across
// pipeline components.
package logging
