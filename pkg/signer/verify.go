package signer

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrymomot/tokenscope/pkg/b64url"
	"github.com/dmitrymomot/tokenscope/pkg/jsonval"
	"github.com/dmitrymomot/tokenscope/pkg/lexical"
)

var (
	// ErrSignatureMismatch is returned when the recomputed signature does
	// not match the token's signature segment.
	ErrSignatureMismatch = errors.New("signature mismatch: token was altered or the secret is wrong")

	// ErrMissingAlgorithm is returned when the decoded header carries no
	// usable 'alg' claim.
	ErrMissingAlgorithm = errors.New("header does not contain a usable 'alg' claim")
)

// Result is the immutable outcome of a verification. On a signature
// mismatch the header is still populated when decodable, for diagnostics;
// the payload is only decoded after the signature matches.
type Result struct {
	Valid     bool
	Algorithm Algorithm
	Header    *jsonval.Object
	Payload   *jsonval.Object
	Err       error
}

// Verify checks the cryptographic integrity of tokenText: lexical scan,
// header decode, signature recomputation over the token's own header and
// payload segments, and constant-time comparison against the signature
// segment.
//
// Verification deliberately stops at integrity. Expiry and activation
// claims are the semantic phase's concern and are not checked here; callers
// that need claim validity must run the semantic engine on the returned
// payload themselves.
func Verify(tokenText, secret string) Result {
	lex := lexical.Scan(tokenText)
	if !lex.Valid {
		return Result{Valid: false, Err: lex.Err}
	}

	headerText, err := b64url.Decode(lex.Header)
	if err != nil {
		return Result{Valid: false, Err: fmt.Errorf("header segment: %w", err)}
	}

	headerVal, err := jsonval.Parse(headerText)
	if err != nil {
		return Result{Valid: false, Err: fmt.Errorf("header segment: %w", err)}
	}
	if headerVal.Kind() != jsonval.KindObject {
		return Result{Valid: false, Err: errors.New("header is not a JSON object")}
	}
	header := headerVal.Object()

	algClaim, ok := header.Get("alg")
	if !ok || algClaim.Kind() != jsonval.KindString {
		return Result{Valid: false, Header: header, Err: ErrMissingAlgorithm}
	}

	alg := Algorithm(algClaim.Str())
	if !Supported(alg) {
		return Result{Valid: false, Header: header, Err: fmt.Errorf("%w: got %q", ErrUnsupportedAlgorithm, alg)}
	}

	// Recompute over the token's own segments; the signed message must be
	// byte-identical to the original codec output.
	expected, err := Sign(lex.Header, lex.Payload, alg, secret)
	if err != nil {
		return Result{Valid: false, Header: header, Err: err}
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(lex.Signature)) != 1 {
		return Result{Valid: false, Algorithm: alg, Header: header, Err: ErrSignatureMismatch}
	}

	payloadText, err := b64url.Decode(lex.Payload)
	if err != nil {
		return Result{Valid: false, Algorithm: alg, Header: header, Err: fmt.Errorf("payload segment: %w", err)}
	}

	payloadVal, err := jsonval.Parse(payloadText)
	if err != nil {
		return Result{Valid: false, Algorithm: alg, Header: header, Err: fmt.Errorf("payload segment: %w", err)}
	}
	if payloadVal.Kind() != jsonval.KindObject {
		return Result{Valid: false, Algorithm: alg, Header: header, Err: errors.New("payload is not a JSON object")}
	}

	return Result{
		Valid:     true,
		Algorithm: alg,
		Header:    header,
		Payload:   payloadVal.Object(),
	}
}
