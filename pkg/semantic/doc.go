// Package semantic validates registered claim values and types against a
// caller-supplied current time.
//
// Unlike the structural phase, this engine fails fast: rules run in a fixed
// order and the first violation is returned immediately, leaving later
// claims unchecked. Each failure is one of five distinct, non-overlapping
// kinds exposed as sentinel errors for errors.Is narrowing.
package semantic
