// Package logger provides a slog-based logger constructor configured from
// the environment, plus typed slog.Attr helpers for consistent log keys
// across the application.
package logger
