package syntax

import (
	"fmt"

	"github.com/dmitrymomot/tokenscope/pkg/jsonval"
)

// Violation is a single structural rule failure. Claim names the offending
// claim, or "header"/"payload" for whole-document failures.
type Violation struct {
	Claim   string `json:"claim"`
	Message string `json:"message"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Claim, v.Message)
}

// Result is the immutable outcome of structural analysis. Valid is true iff
// Violations is empty. When a text fails to parse even through the fallback,
// the phase aborts with that single violation and Header/Payload stay unset;
// no partial documents are ever exposed.
type Result struct {
	Valid      bool
	Header     jsonval.Value
	Payload    jsonval.Value
	Violations []Violation
}

// Errors returns the violations joined into human-readable lines.
func (r Result) Errors() []string {
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.Error()
	}
	return msgs
}

// Analyze parses headerText and payloadText and runs the aggregate
// structural checks over both documents.
func Analyze(headerText, payloadText string) Result {
	var result Result

	header, err := jsonval.Parse(headerText)
	if err != nil {
		result.Violations = append(result.Violations, Violation{Claim: "header", Message: err.Error()})
		return result
	}

	payload, err := jsonval.Parse(payloadText)
	if err != nil {
		result.Violations = append(result.Violations, Violation{Claim: "payload", Message: err.Error()})
		return result
	}

	result.Header = header
	result.Payload = payload
	result.Violations = append(result.Violations, checkHeader(header)...)
	result.Violations = append(result.Violations, checkPayload(payload)...)
	result.Valid = len(result.Violations) == 0

	return result
}

func checkHeader(header jsonval.Value) []Violation {
	var violations []Violation

	if header.Kind() != jsonval.KindObject {
		violations = append(violations, Violation{Claim: "header", Message: "header must be a JSON object"})
		return violations
	}

	obj := header.Object()

	if alg, ok := obj.Get("alg"); !ok {
		violations = append(violations, Violation{Claim: "alg", Message: "header is missing required claim 'alg'"})
	} else if alg.Kind() != jsonval.KindString {
		violations = append(violations, Violation{Claim: "alg", Message: "claim 'alg' must be a string"})
	}

	if typ, ok := obj.Get("typ"); !ok {
		violations = append(violations, Violation{Claim: "typ", Message: "header is missing required claim 'typ'"})
	} else if typ.Kind() != jsonval.KindString || typ.Str() != "JWT" {
		// Recorded as a fatal structural violation rather than raised.
		violations = append(violations, Violation{Claim: "typ", Message: "claim 'typ' must be exactly \"JWT\""})
	}

	return violations
}

func checkPayload(payload jsonval.Value) []Violation {
	var violations []Violation

	if payload.Kind() != jsonval.KindObject {
		violations = append(violations, Violation{Claim: "payload", Message: "payload must be a JSON object"})
		return violations
	}

	obj := payload.Object()

	for _, claim := range []string{"iat", "exp", "nbf"} {
		if v, ok := obj.Get(claim); ok && v.Kind() != jsonval.KindInt {
			violations = append(violations, Violation{
				Claim:   claim,
				Message: fmt.Sprintf("claim '%s' must be an integer NumericDate", claim),
			})
		}
	}

	if aud, ok := obj.Get("aud"); ok {
		if aud.Kind() != jsonval.KindString && !aud.IsStringArray() {
			violations = append(violations, Violation{
				Claim:   "aud",
				Message: "claim 'aud' must be a string or an array of strings",
			})
		}
	}

	if perms, ok := obj.Get("permissions"); ok && !perms.IsStringArray() {
		violations = append(violations, Violation{
			Claim:   "permissions",
			Message: "claim 'permissions' must be an array of strings",
		})
	}

	return violations
}
