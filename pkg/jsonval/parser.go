package jsonval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse is the unrecoverable parse failure reported when both the primary
// parser and the fallback reject the input.
var ErrParse = errors.New("malformed JSON")

// Parse decodes a single JSON value from text. It tries the recursive
// descent parser first and, on any failure, retries once with the standard
// library tokenizer. If both reject the input, the returned error wraps
// ErrParse and no partial value is produced.
func Parse(text string) (Value, error) {
	v, primaryErr := parsePrimary(text)
	if primaryErr == nil {
		return v, nil
	}

	v, fallbackErr := parseFallback(text)
	if fallbackErr == nil {
		return v, nil
	}

	return Value{}, fmt.Errorf("%w: %v", ErrParse, primaryErr)
}

// parsePrimary runs the hand-written recursive-descent parser over the full
// input, rejecting trailing non-whitespace.
func parsePrimary(text string) (Value, error) {
	p := &parser{text: text}
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	p.skipWhitespace()
	if p.pos != len(p.text) {
		return Value{}, fmt.Errorf("unexpected trailing data at offset %d", p.pos)
	}
	return v, nil
}

// parser holds a fresh cursor per Parse call; there is no shared parser
// state across invocations.
type parser struct {
	text string
	pos  int
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next non-whitespace byte without consuming it, or 0 at
// end of input.
func (p *parser) peek() byte {
	p.skipWhitespace()
	if p.pos < len(p.text) {
		return p.text[p.pos]
	}
	return 0
}

func (p *parser) parseValue() (Value, error) {
	switch c := p.peek(); {
	case c == 0:
		return Value{}, errors.New("unexpected end of input")
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case strings.HasPrefix(p.text[p.pos:], "true"):
		p.pos += 4
		return Bool(true), nil
	case strings.HasPrefix(p.text[p.pos:], "false"):
		p.pos += 5
		return Bool(false), nil
	case strings.HasPrefix(p.text[p.pos:], "null"):
		p.pos += 4
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected character %q at offset %d", c, p.pos)
	}
}

func (p *parser) parseString() (string, error) {
	if p.peek() != '"' {
		return "", fmt.Errorf("expected string at offset %d", p.pos)
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			if p.pos+1 >= len(p.text) {
				return "", errors.New("incomplete escape sequence")
			}
			switch next := p.text[p.pos+1]; next {
			case '"', '\\', '/':
				b.WriteByte(next)
				p.pos += 2
			case 'n':
				b.WriteByte('\n')
				p.pos += 2
			case 't':
				b.WriteByte('\t')
				p.pos += 2
			case 'r':
				b.WriteByte('\r')
				p.pos += 2
			case 'u':
				if p.pos+6 > len(p.text) {
					return "", errors.New("incomplete unicode escape")
				}
				code, err := strconv.ParseUint(p.text[p.pos+2:p.pos+6], 16, 32)
				if err != nil {
					return "", fmt.Errorf("invalid unicode escape at offset %d", p.pos)
				}
				b.WriteRune(rune(code))
				p.pos += 6
			default:
				return "", fmt.Errorf("invalid escape sequence \\%c", next)
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", errors.New("unterminated string")
}

// parseNumber accepts an optional leading minus followed by an integer or
// decimal form. The presence of a decimal point decides integer vs float.
func (p *parser) parseNumber() (Value, error) {
	p.skipWhitespace()
	start := p.pos

	if p.pos < len(p.text) && p.text[p.pos] == '-' {
		p.pos++
	}

	digits := 0
	for p.pos < len(p.text) && p.text[p.pos] >= '0' && p.text[p.pos] <= '9' {
		p.pos++
		digits++
	}
	if digits == 0 {
		return Value{}, fmt.Errorf("invalid number at offset %d", start)
	}

	isFloat := false
	if p.pos < len(p.text) && p.text[p.pos] == '.' {
		isFloat = true
		p.pos++
		fractionDigits := 0
		for p.pos < len(p.text) && p.text[p.pos] >= '0' && p.text[p.pos] <= '9' {
			p.pos++
			fractionDigits++
		}
		if fractionDigits == 0 {
			return Value{}, fmt.Errorf("invalid decimal at offset %d", start)
		}
	}

	literal := p.text[start:p.pos]
	if isFloat {
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Value{}, fmt.Errorf("malformed number %q", literal)
		}
		return Float(f), nil
	}

	i, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("malformed number %q", literal)
	}
	return Int(i), nil
}

func (p *parser) parseObject() (Value, error) {
	if p.peek() != '{' {
		return Value{}, fmt.Errorf("expected '{' at offset %d", p.pos)
	}
	p.pos++

	obj := NewObject()
	if p.peek() == '}' {
		p.pos++
		return ObjectValue(obj), nil
	}

	for {
		key, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		if p.peek() != ':' {
			return Value{}, fmt.Errorf("expected ':' at offset %d", p.pos)
		}
		p.pos++

		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)

		switch p.peek() {
		case '}':
			p.pos++
			return ObjectValue(obj), nil
		case ',':
			p.pos++
		default:
			return Value{}, fmt.Errorf("expected ',' or '}' at offset %d", p.pos)
		}
	}
}

func (p *parser) parseArray() (Value, error) {
	if p.peek() != '[' {
		return Value{}, fmt.Errorf("expected '[' at offset %d", p.pos)
	}
	p.pos++

	var elems []Value
	if p.peek() == ']' {
		p.pos++
		return Array(), nil
	}

	for {
		elem, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)

		switch p.peek() {
		case ']':
			p.pos++
			return Array(elems...), nil
		case ',':
			p.pos++
		default:
			return Value{}, fmt.Errorf("expected ',' or ']' at offset %d", p.pos)
		}
	}
}
