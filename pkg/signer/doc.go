// Package signer computes and verifies HMAC signatures over JWT signing
// input.
//
// The signed message is always the exact concatenation of the encoded
// header and payload segments joined by a dot; it is never re-derived from
// re-serialized JSON, so signatures stay byte-reproducible. Only HS256 and
// HS384 are supported. Signature comparison is constant time.
package signer
