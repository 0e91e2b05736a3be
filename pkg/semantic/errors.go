package semantic

import "errors"

// The five semantic failure kinds. Every error returned by Analyze wraps
// exactly one of these.
var (
	ErrMissingClaim    = errors.New("missing required claim")
	ErrInvalidDataType = errors.New("invalid claim data type")
	ErrInvalidValue    = errors.New("invalid claim value")
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenNotActive  = errors.New("token is not active yet")
)

// Kind returns the wire name of the semantic error kind, or "" when err is
// not a semantic error. Used by transport layers to report machine-readable
// error types.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingClaim):
		return "MissingClaimError"
	case errors.Is(err, ErrInvalidDataType):
		return "InvalidDataTypeError"
	case errors.Is(err, ErrInvalidValue):
		return "InvalidValueError"
	case errors.Is(err, ErrTokenExpired):
		return "ExpirationDateError"
	case errors.Is(err, ErrTokenNotActive):
		return "NotActiveTokenError"
	default:
		return ""
	}
}
