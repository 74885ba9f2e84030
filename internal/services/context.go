package services

import "context"

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	userIDKey contextKey = "user_id"
	zoneKey   contextKey = "zone"
)

// WithRunID annotates context with the analysis run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithUserID annotates context with the owning user's identifier.
func WithUserID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext extracts the user identifier if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(userIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithZone annotates context with the anatomical zone being captured.
func WithZone(ctx context.Context, zone int) context.Context {
	if zone <= 0 {
		return ctx
	}
	return context.WithValue(ctx, zoneKey, zone)
}

// ZoneFromContext extracts the zone number if present.
func ZoneFromContext(ctx context.Context) (int, bool) {
	if v, ok := ctx.Value(zoneKey).(int); ok && v > 0 {
		return v, true
	}
	return 0, false
}
