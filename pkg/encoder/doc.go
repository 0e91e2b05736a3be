// Package encoder mints signed tokens from caller-supplied header and
// payload objects, running the structural and semantic phases before any
// encoding or signing work.
package encoder
