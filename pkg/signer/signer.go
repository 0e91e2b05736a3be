package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"

	"github.com/dmitrymomot/tokenscope/pkg/b64url"
)

// Algorithm identifies an HMAC variant by its JWT 'alg' header value.
type Algorithm string

const (
	HS256 Algorithm = "HS256" // HMAC-SHA256
	HS384 Algorithm = "HS384" // HMAC-SHA384
)

// ErrUnsupportedAlgorithm is returned for any algorithm outside the HS256
// and HS384 pair, before any MAC computation happens.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm: only HS256 and HS384 are supported")

// Supported reports whether alg names a supported HMAC variant.
func Supported(alg Algorithm) bool {
	return alg == HS256 || alg == HS384
}

func hashFor(alg Algorithm) (func() hash.Hash, error) {
	switch alg {
	case HS256:
		return sha256.New, nil
	case HS384:
		return sha512.New384, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedAlgorithm, alg)
	}
}

// Sign computes the unpadded base64url HMAC signature over the exact message
// headerB64 + "." + payloadB64.
func Sign(headerB64, payloadB64 string, alg Algorithm, secret string) (string, error) {
	newHash, err := hashFor(alg)
	if err != nil {
		return "", err
	}

	mac := hmac.New(newHash, []byte(secret))
	mac.Write([]byte(headerB64 + "." + payloadB64))

	return b64url.Encode(string(mac.Sum(nil))), nil
}
