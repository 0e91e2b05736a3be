package semantic

import (
	"fmt"

	"github.com/dmitrymomot/tokenscope/pkg/jsonval"
)

// SupportedAlgorithms is the closed set of accepted 'alg' header values.
var SupportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
}

// Analyze checks header and payload claims against the rule set, with now
// given as seconds since the Unix epoch. The clock is injected so the engine
// stays deterministic and testable. Returns nil when every rule passes;
// otherwise the first violated rule's error, wrapping one of the five
// sentinel kinds.
func Analyze(header, payload *jsonval.Object, now int64) error {
	if err := analyzeHeader(header); err != nil {
		return err
	}
	return analyzePayload(payload, now)
}

// Header rules, in order: alg present, alg string, alg supported, typ
// present, typ string, typ == "JWT".
func analyzeHeader(header *jsonval.Object) error {
	alg, ok := header.Get("alg")
	if !ok {
		return fmt.Errorf("%w: 'alg'", ErrMissingClaim)
	}
	if alg.Kind() != jsonval.KindString {
		return fmt.Errorf("%w: 'alg' must be a string", ErrInvalidDataType)
	}
	if _, supported := SupportedAlgorithms[alg.Str()]; !supported {
		return fmt.Errorf("%w: algorithm %q is not supported", ErrInvalidValue, alg.Str())
	}

	typ, ok := header.Get("typ")
	if !ok {
		return fmt.Errorf("%w: 'typ'", ErrMissingClaim)
	}
	if typ.Kind() != jsonval.KindString {
		return fmt.Errorf("%w: 'typ' must be a string", ErrInvalidDataType)
	}
	if typ.Str() != "JWT" {
		return fmt.Errorf("%w: 'typ' must be \"JWT\"", ErrInvalidValue)
	}

	return nil
}

// Payload rules, in order: exp, nbf, iat, iss, sub, aud. Temporal claims
// are type-checked before value-checked so a type failure is reported as
// ErrInvalidDataType, never as an expiry or activation failure.
func analyzePayload(payload *jsonval.Object, now int64) error {
	if exp, ok := payload.Get("exp"); ok {
		if exp.Kind() != jsonval.KindInt {
			return fmt.Errorf("%w: 'exp' must be an integer NumericDate", ErrInvalidDataType)
		}
		if now >= exp.Int() {
			return fmt.Errorf("%w: expired at %d", ErrTokenExpired, exp.Int())
		}
	}

	if nbf, ok := payload.Get("nbf"); ok {
		if nbf.Kind() != jsonval.KindInt {
			return fmt.Errorf("%w: 'nbf' must be an integer NumericDate", ErrInvalidDataType)
		}
		if now < nbf.Int() {
			return fmt.Errorf("%w: not valid before %d", ErrTokenNotActive, nbf.Int())
		}
	}

	if iat, ok := payload.Get("iat"); ok && iat.Kind() != jsonval.KindInt {
		return fmt.Errorf("%w: 'iat' must be an integer NumericDate", ErrInvalidDataType)
	}

	if iss, ok := payload.Get("iss"); ok && iss.Kind() != jsonval.KindString {
		return fmt.Errorf("%w: 'iss' must be a string", ErrInvalidDataType)
	}

	if sub, ok := payload.Get("sub"); ok && sub.Kind() != jsonval.KindString {
		return fmt.Errorf("%w: 'sub' must be a string", ErrInvalidDataType)
	}

	if aud, ok := payload.Get("aud"); ok {
		if aud.Kind() != jsonval.KindString && !aud.IsStringArray() {
			return fmt.Errorf("%w: 'aud' must be a string or an array of strings", ErrInvalidDataType)
		}
	}

	return nil
}
