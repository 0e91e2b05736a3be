package jsonval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// parseFallback decodes with the standard library tokenizer. It accepts the
// grammar the primary parser rejects (exponent notation, the \b and \f
// escapes) while producing the same Value shape, including object key order,
// since the token stream arrives in document order. Numbers without a
// decimal point or exponent stay integers.
func parseFallback(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	// A single JSON document only; trailing data is a parse failure.
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errors.New("unexpected trailing data")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return decodeNumber(t)
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeNumber(n json.Number) (Value, error) {
	literal := n.String()
	if !strings.ContainsAny(literal, ".eE") {
		i, err := n.Int64()
		if err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, err
	}
	return Float(f), nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ObjectValue(obj), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var elems []Value
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(elems...), nil
}
