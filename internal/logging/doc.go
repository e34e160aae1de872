// Package logging constructs the application's slog loggers.
//
// Two output formats are supported: a compact console format
// ("ts LEVEL component: msg k=v") and standard JSON. Attr helpers and
// context extraction keep field names consistent across components.
package logging
