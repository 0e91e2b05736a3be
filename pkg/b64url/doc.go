// Package b64url converts between UTF-8 text and the unpadded URL-safe
// base64 form used by JWT segments.
//
// Encode never emits padding; Decode tolerates its absence by restoring it
// before decoding. The two are inverses only up to padding, which is
// deliberate: the wire format is always unpadded.
package b64url
