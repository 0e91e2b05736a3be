package encoder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/tokenscope/pkg/b64url"
	"github.com/dmitrymomot/tokenscope/pkg/jsonval"
	"github.com/dmitrymomot/tokenscope/pkg/semantic"
	"github.com/dmitrymomot/tokenscope/pkg/signer"
	"github.com/dmitrymomot/tokenscope/pkg/syntax"
)

// ErrNilDocument is returned when either input object is nil.
var ErrNilDocument = errors.New("header and payload must be non-nil objects")

// StructuralError carries the aggregate structural violations that aborted
// an encode.
type StructuralError struct {
	Violations []syntax.Violation
}

func (e *StructuralError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "structural validation failed: " + strings.Join(msgs, "; ")
}

// Encode serializes, validates, encodes and signs a token using the current
// wall clock for the semantic time rules.
func Encode(header, payload *jsonval.Object, secret string) (string, error) {
	return EncodeAt(header, payload, secret, time.Now().Unix())
}

// EncodeAt is Encode with an explicit clock, in seconds since the Unix
// epoch, so temporal rules stay testable.
//
// The signed message is the exact compact serialization produced here; the
// returned token embeds those very bytes, never a re-serialization.
func EncodeAt(header, payload *jsonval.Object, secret string, now int64) (string, error) {
	if header == nil || payload == nil {
		return "", ErrNilDocument
	}

	// An unsupported algorithm fails before any base64 or signing work, and
	// before the cheaper phases get a chance to report it as a value error.
	if alg, ok := header.Get("alg"); ok && alg.Kind() == jsonval.KindString {
		if !signer.Supported(signer.Algorithm(alg.Str())) {
			return "", fmt.Errorf("%w: got %q", signer.ErrUnsupportedAlgorithm, alg.Str())
		}
	}

	headerText := jsonval.Marshal(jsonval.ObjectValue(header))
	payloadText := jsonval.Marshal(jsonval.ObjectValue(payload))

	if result := syntax.Analyze(headerText, payloadText); !result.Valid {
		return "", &StructuralError{Violations: result.Violations}
	}

	if err := semantic.Analyze(header, payload, now); err != nil {
		return "", err
	}

	alg, _ := header.Get("alg")

	headerB64 := b64url.Encode(headerText)
	payloadB64 := b64url.Encode(payloadText)

	signature, err := signer.Sign(headerB64, payloadB64, signer.Algorithm(alg.Str()), secret)
	if err != nil {
		return "", err
	}

	return headerB64 + "." + payloadB64 + "." + signature, nil
}
