package jsonval

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a single JSON value. The zero value is JSON null. Values are
// immutable once constructed; accessors return zero values when the variant
// does not match, use Kind to narrow first.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating point number.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a list of values.
func Array(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// ObjectValue wraps an object.
func ObjectValue(obj *Object) Value { return Value{kind: KindObject, obj: obj} }

// Kind reports the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean variant, or false if the value is not a boolean.
func (v Value) Bool() bool { return v.b }

// Int returns the integer variant, or 0 if the value is not an integer.
func (v Value) Int() int64 { return v.i }

// Float returns the float variant, or 0 if the value is not a float.
func (v Value) Float() float64 { return v.f }

// Str returns the string variant, or "" if the value is not a string.
func (v Value) Str() string { return v.s }

// Array returns the array elements, or nil if the value is not an array.
func (v Value) Array() []Value { return v.arr }

// Object returns the object variant, or nil if the value is not an object.
func (v Value) Object() *Object { return v.obj }

// IsStringArray reports whether the value is an array whose elements are all
// strings. An empty array qualifies.
func (v Value) IsStringArray() bool {
	if v.kind != KindArray {
		return false
	}
	for _, elem := range v.arr {
		if elem.kind != KindString {
			return false
		}
	}
	return true
}

// Interface converts the value to plain Go types (nil, bool, int64,
// float64, string, []any, map[string]any) for encoding/json interop at the
// transport boundary. Object key order is not preserved by the map form.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, elem := range v.arr {
			out[i] = elem.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, key := range v.obj.keys {
			out[key] = v.obj.values[key].Interface()
		}
		return out
	default:
		return nil
	}
}

// Object is a JSON object that preserves key insertion order. Later Set
// calls with an existing key overwrite the value but keep the original
// position, matching standard JSON object update semantics.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores a key/value pair, preserving first-insertion order.
func (o *Object) Set(key string, value Value) *Object {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value stored under key and whether it exists.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key exists.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.keys) }
