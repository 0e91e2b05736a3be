// Package lexical validates the gross shape of a JWT string with a finite
// state automaton and splits it into its three segments.
//
// A token is lexically valid iff it matches B+.B+.B+ where B is the
// base64url alphabet [A-Za-z0-9_-]: exactly two dots, three nonempty
// segments, no other character. The scanner performs a single linear pass
// and does no semantic or length validation beyond shape.
package lexical
