package jsonval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tokenscope/pkg/jsonval"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses literals", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse("true")
		require.NoError(t, err)
		assert.Equal(t, jsonval.KindBool, v.Kind())
		assert.True(t, v.Bool())

		v, err = jsonval.Parse("false")
		require.NoError(t, err)
		assert.False(t, v.Bool())

		v, err = jsonval.Parse("null")
		require.NoError(t, err)
		assert.True(t, v.IsNull())
	})

	t.Run("distinguishes integers from floats", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse("42")
		require.NoError(t, err)
		assert.Equal(t, jsonval.KindInt, v.Kind())
		assert.Equal(t, int64(42), v.Int())

		v, err = jsonval.Parse("-7")
		require.NoError(t, err)
		assert.Equal(t, int64(-7), v.Int())

		v, err = jsonval.Parse("3.14")
		require.NoError(t, err)
		assert.Equal(t, jsonval.KindFloat, v.Kind())
		assert.InDelta(t, 3.14, v.Float(), 1e-9)

		v, err = jsonval.Parse("-0.5")
		require.NoError(t, err)
		assert.InDelta(t, -0.5, v.Float(), 1e-9)
	})

	t.Run("decodes string escapes", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse(`"a\nb\t\"\\\/c"`)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\t\"\\/c", v.Str())

		v, err = jsonval.Parse(`"Aé"`)
		require.NoError(t, err)
		assert.Equal(t, "Aé", v.Str())
	})

	t.Run("preserves object key order", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse(`{"typ":"JWT","alg":"HS256","kid":"k1"}`)
		require.NoError(t, err)
		require.Equal(t, jsonval.KindObject, v.Kind())
		assert.Equal(t, []string{"typ", "alg", "kid"}, v.Object().Keys())
	})

	t.Run("handles nested structures", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse(`{"aud":["api","web"],"meta":{"n":1},"ok":true}`)
		require.NoError(t, err)
		obj := v.Object()

		aud, found := obj.Get("aud")
		require.True(t, found)
		require.Equal(t, jsonval.KindArray, aud.Kind())
		require.Len(t, aud.Array(), 2)
		assert.Equal(t, "api", aud.Array()[0].Str())
		assert.True(t, aud.IsStringArray())

		meta, found := obj.Get("meta")
		require.True(t, found)
		n, found := meta.Object().Get("n")
		require.True(t, found)
		assert.Equal(t, int64(1), n.Int())
	})

	t.Run("handles empty containers and whitespace", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse(" { } ")
		require.NoError(t, err)
		assert.Equal(t, 0, v.Object().Len())

		v, err = jsonval.Parse("\n[\t]\r\n")
		require.NoError(t, err)
		assert.Empty(t, v.Array())
		assert.True(t, v.IsStringArray())
	})

	t.Run("falls back for exponent notation", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse("1e3")
		require.NoError(t, err)
		assert.Equal(t, jsonval.KindFloat, v.Kind())
		assert.InDelta(t, 1000.0, v.Float(), 1e-9)

		v, err = jsonval.Parse(`{"b":1,"a":2.5e1}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, v.Object().Keys())
		b, _ := v.Object().Get("b")
		assert.Equal(t, jsonval.KindInt, b.Kind(), "fallback keeps plain numbers integral")
		a, _ := v.Object().Get("a")
		assert.InDelta(t, 25.0, a.Float(), 1e-9)
	})

	t.Run("rejects malformed input through both parsers", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"", "{", `{"a"}`, `{"a":}`, "[1,]", `"unterminated`, "not json", "{} trailing", "1 2"} {
			_, err := jsonval.Parse(text)
			require.Error(t, err, "input %q should fail", text)
			assert.ErrorIs(t, err, jsonval.ErrParse)
		}
	})
}

func TestValueInterface(t *testing.T) {
	t.Parallel()

	t.Run("converts to plain Go types", func(t *testing.T) {
		t.Parallel()

		v, err := jsonval.Parse(`{"sub":"u1","iat":100,"score":0.5,"tags":["a"],"gone":null}`)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"sub":   "u1",
			"iat":   int64(100),
			"score": 0.5,
			"tags":  []any{"a"},
			"gone":  nil,
		}, v.Interface())
	})
}

func TestObject(t *testing.T) {
	t.Parallel()

	t.Run("overwrite keeps original position", func(t *testing.T) {
		t.Parallel()

		obj := jsonval.NewObject().
			Set("alg", jsonval.String("HS256")).
			Set("typ", jsonval.String("JWT")).
			Set("alg", jsonval.String("HS384"))

		assert.Equal(t, []string{"alg", "typ"}, obj.Keys())
		alg, found := obj.Get("alg")
		require.True(t, found)
		assert.Equal(t, "HS384", alg.Str())
	})

	t.Run("reports membership", func(t *testing.T) {
		t.Parallel()

		obj := jsonval.NewObject().Set("exp", jsonval.Int(1))
		assert.True(t, obj.Has("exp"))
		assert.False(t, obj.Has("nbf"))
		_, found := obj.Get("nbf")
		assert.False(t, found)
	})
}
