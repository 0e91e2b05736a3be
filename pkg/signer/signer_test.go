package signer_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tokenscope/pkg/b64url"
	"github.com/dmitrymomot/tokenscope/pkg/signer"
)

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, signer.Supported(signer.HS256))
	assert.True(t, signer.Supported(signer.HS384))
	assert.False(t, signer.Supported("RS256"))
	assert.False(t, signer.Supported("none"))
	assert.False(t, signer.Supported(""))
}

func TestSign(t *testing.T) {
	t.Parallel()

	t.Run("matches a reference HMAC-SHA256", func(t *testing.T) {
		t.Parallel()

		headerB64 := b64url.Encode(`{"alg":"HS256","typ":"JWT"}`)
		payloadB64 := b64url.Encode(`{"sub":"u1"}`)

		got, err := signer.Sign(headerB64, payloadB64, signer.HS256, "secret")
		require.NoError(t, err)

		mac := hmac.New(sha256.New, []byte("secret"))
		mac.Write([]byte(headerB64 + "." + payloadB64))
		assert.Equal(t, b64url.Encode(string(mac.Sum(nil))), got)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first, err := signer.Sign("aGVhZGVy", "cGF5bG9hZA", signer.HS384, "k")
		require.NoError(t, err)
		second, err := signer.Sign("aGVhZGVy", "cGF5bG9hZA", signer.HS384, "k")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("varies with algorithm, secret and message", func(t *testing.T) {
		t.Parallel()

		base, err := signer.Sign("aaa", "bbb", signer.HS256, "k1")
		require.NoError(t, err)

		other, err := signer.Sign("aaa", "bbb", signer.HS384, "k1")
		require.NoError(t, err)
		assert.NotEqual(t, base, other, "algorithm must change the signature")

		other, err = signer.Sign("aaa", "bbb", signer.HS256, "k2")
		require.NoError(t, err)
		assert.NotEqual(t, base, other, "secret must change the signature")

		other, err = signer.Sign("aaa", "ccc", signer.HS256, "k1")
		require.NoError(t, err)
		assert.NotEqual(t, base, other, "message must change the signature")
	})

	t.Run("rejects unsupported algorithms before signing", func(t *testing.T) {
		t.Parallel()

		_, err := signer.Sign("aaa", "bbb", "RS256", "k")
		require.Error(t, err)
		assert.ErrorIs(t, err, signer.ErrUnsupportedAlgorithm)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	mint := func(t *testing.T, headerText, payloadText, secret string) string {
		t.Helper()
		headerB64 := b64url.Encode(headerText)
		payloadB64 := b64url.Encode(payloadText)
		sig, err := signer.Sign(headerB64, payloadB64, signer.HS256, secret)
		require.NoError(t, err)
		return headerB64 + "." + payloadB64 + "." + sig
	}

	t.Run("accepts a well signed token", func(t *testing.T) {
		t.Parallel()

		token := mint(t, `{"alg":"HS256","typ":"JWT"}`, `{"sub":"u1","iat":100}`, "secret")

		result := signer.Verify(token, "secret")
		require.True(t, result.Valid)
		require.NoError(t, result.Err)
		assert.Equal(t, signer.HS256, result.Algorithm)

		alg, _ := result.Header.Get("alg")
		assert.Equal(t, "HS256", alg.Str())
		sub, _ := result.Payload.Get("sub")
		assert.Equal(t, "u1", sub.Str())
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		t.Parallel()

		token := mint(t, `{"alg":"HS256","typ":"JWT"}`, `{"sub":"u1"}`, "secret")

		result := signer.Verify(token, "other")
		require.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, signer.ErrSignatureMismatch)
		assert.NotNil(t, result.Header, "header stays available for diagnostics")
		assert.Nil(t, result.Payload, "payload is not decoded before the signature matches")
	})

	t.Run("rejects a tampered payload", func(t *testing.T) {
		t.Parallel()

		token := mint(t, `{"alg":"HS256","typ":"JWT"}`, `{"sub":"u1"}`, "secret")

		// Flip one character of the payload segment, staying in the alphabet.
		raw := []byte(token)
		i := len(b64url.Encode(`{"alg":"HS256","typ":"JWT"}`)) + 1
		if raw[i] == 'A' {
			raw[i] = 'B'
		} else {
			raw[i] = 'A'
		}

		result := signer.Verify(string(raw), "secret")
		require.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, signer.ErrSignatureMismatch)
	})

	t.Run("rejects malformed tokens at the lexical phase", func(t *testing.T) {
		t.Parallel()

		for _, token := range []string{"", "a.b", "a.b.c.d", "a!.b.c"} {
			result := signer.Verify(token, "secret")
			assert.False(t, result.Valid, "token %q", token)
			assert.Nil(t, result.Header)
		}
	})

	t.Run("rejects headers without a usable alg", func(t *testing.T) {
		t.Parallel()

		token := mint(t, `{"typ":"JWT"}`, `{}`, "secret")
		result := signer.Verify(token, "secret")
		require.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, signer.ErrMissingAlgorithm)
		assert.NotNil(t, result.Header)
	})

	t.Run("rejects unsupported header algorithms", func(t *testing.T) {
		t.Parallel()

		token := mint(t, `{"alg":"none","typ":"JWT"}`, `{}`, "secret")
		result := signer.Verify(token, "secret")
		require.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, signer.ErrUnsupportedAlgorithm)
	})

	t.Run("rejects a header that is not an object", func(t *testing.T) {
		t.Parallel()

		token := mint(t, `[1,2]`, `{}`, "secret")
		result := signer.Verify(token, "secret")
		require.False(t, result.Valid)
		assert.Nil(t, result.Header)
	})

	t.Run("rejects undecodable segments", func(t *testing.T) {
		t.Parallel()

		// "_w" decodes to a byte that is not valid UTF-8.
		result := signer.Verify("_w.e30.c2ln", "secret")
		require.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, b64url.ErrInvalidUTF8)
	})
}
