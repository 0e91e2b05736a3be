package b64url

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidBase64 is returned when a segment is not decodable base64
	// after character substitution and padding restoration.
	ErrInvalidBase64 = errors.New("invalid base64url data")

	// ErrInvalidUTF8 is returned when decoded bytes are not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("decoded data is not valid UTF-8")
)

// Encode converts UTF-8 text to an unpadded base64url segment.
func Encode(text string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(text))
}

// Decode converts a base64url segment back to UTF-8 text. The segment may
// carry standard base64 characters (+, /) or padding; both are normalized
// before decoding.
func Decode(segment string) (string, error) {
	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(segment)

	if rem := len(normalized) % 4; rem != 0 {
		normalized += strings.Repeat("=", 4-rem)
	}

	decoded, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	if !utf8.Valid(decoded) {
		return "", ErrInvalidUTF8
	}

	return string(decoded), nil
}
