// Package server wraps http.Server with environment-driven configuration,
// functional options and graceful shutdown, including an errgroup-compatible
// Run helper for coordinated lifecycle management.
package server
