package jsonval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tokenscope/pkg/jsonval"
)

func TestMarshal(t *testing.T) {
	t.Parallel()

	t.Run("emits compact output in insertion order", func(t *testing.T) {
		t.Parallel()

		obj := jsonval.NewObject().
			Set("alg", jsonval.String("HS256")).
			Set("typ", jsonval.String("JWT"))

		assert.Equal(t, `{"alg":"HS256","typ":"JWT"}`, jsonval.Marshal(jsonval.ObjectValue(obj)))
	})

	t.Run("round trips compact documents byte for byte", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			`{"b":1,"a":[true,null],"c":{"d":"x"}}`,
			`[1,2.5,"s",false]`,
			`{}`,
			`"plain"`,
		} {
			v, err := jsonval.Parse(text)
			require.NoError(t, err)
			assert.Equal(t, text, jsonval.Marshal(v))
		}
	})

	t.Run("escapes strings", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `"line\nbreak"`, jsonval.Marshal(jsonval.String("line\nbreak")))
		assert.Equal(t, `"quote\" slash\\"`, jsonval.Marshal(jsonval.String(`quote" slash\`)))
		assert.Equal(t, `"\u0001"`, jsonval.Marshal(jsonval.String("\x01")))
	})

	t.Run("formats numbers", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "42", jsonval.Marshal(jsonval.Int(42)))
		assert.Equal(t, "-7", jsonval.Marshal(jsonval.Int(-7)))
		assert.Equal(t, "3.14", jsonval.Marshal(jsonval.Float(3.14)))
		assert.Equal(t, "true", jsonval.Marshal(jsonval.Bool(true)))
		assert.Equal(t, "null", jsonval.Marshal(jsonval.Null()))
	})
}
