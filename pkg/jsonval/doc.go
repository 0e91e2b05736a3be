// Package jsonval provides a closed tagged-union representation of JSON
// values with explicit narrowing accessors, a hand-written recursive-descent
// parser, and compact deterministic serialization.
//
// The primary parser covers the full JSON grammar: objects, arrays, strings
// with the escapes \" \\ \/ \n \t \r \uXXXX, numbers with an optional
// leading minus in integer or decimal form, and the literals true, false and
// null. Integers and floats are distinguished by the presence of a decimal
// point. When the primary parser fails, Parse retries once with the standard
// library tokenizer before reporting an unrecoverable parse error; this
// one-shot fallback is the only locally recovered failure in the pipeline.
//
// Objects preserve key insertion order so that re-serialization is
// deterministic, which matters because signed messages are derived from the
// serialized text.
package jsonval
