package jsonval

import (
	"fmt"
	"strconv"
	"strings"
)

// Marshal serializes a value to compact JSON: ',' and ':' separators only,
// no incidental whitespace, object keys in insertion order. The output is
// deterministic for a given value, which keeps signed messages reproducible.
func Marshal(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		writeString(b, v.s)
	case KindArray:
		b.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, elem)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, key := range v.obj.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, key)
			b.WriteByte(':')
			writeValue(b, v.obj.values[key])
		}
		b.WriteByte('}')
	}
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
