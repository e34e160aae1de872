package services

import "context"

type contextKey string

const (
	movieKey contextKey = "movie"
	runIDKey contextKey = "run_id"
)

// WithMovie annotates context with the movie directory name being processed.
func WithMovie(ctx context.Context, movie string) context.Context {
	if movie == "" {
		return ctx
	}
	return context.WithValue(ctx, movieKey, movie)
}

// MovieFromContext returns the movie name if present.
func MovieFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(movieKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with a comparison run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the comparison run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
