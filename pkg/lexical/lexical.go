package lexical

import (
	"errors"
	"strings"
)

// ErrMalformedToken is returned when the input does not match the
// header.payload.signature shape.
var ErrMalformedToken = errors.New("malformed token: expected header.payload.signature over the base64url alphabet")

// Automaton states. q0 is the start state, q5 the only accepting state and
// qTrap the dead state reached on any shape violation.
type state int

const (
	q0 state = iota // start, nothing consumed
	q1              // inside first segment
	q2              // first dot consumed, second segment must follow
	q3              // inside second segment
	q4              // second dot consumed, third segment must follow
	q5              // inside third segment (accepting)
	qTrap
)

// Character classes over the input alphabet.
type charClass int

const (
	classSegment charClass = iota // [A-Za-z0-9_-]
	classDot                      // '.'
	classOther                    // anything else, traps immediately
)

// transitions maps state x {segment char, dot} to the next state. classOther
// is handled outside the table since it always traps.
var transitions = [6][2]state{
	q0: {classSegment: q1, classDot: qTrap},
	q1: {classSegment: q1, classDot: q2},
	q2: {classSegment: q3, classDot: qTrap},
	q3: {classSegment: q3, classDot: q4},
	q4: {classSegment: q5, classDot: qTrap},
	q5: {classSegment: q5, classDot: qTrap},
}

// Result is the immutable outcome of a lexical scan. On rejection Valid is
// false, the segment fields are empty and Err carries the reason; a rejected
// token never yields a partial split.
type Result struct {
	Valid     bool
	Token     string
	Header    string
	Payload   string
	Signature string
	Err       error
}

// Segments returns the three segments in wire order.
func (r Result) Segments() [3]string {
	return [3]string{r.Header, r.Payload, r.Signature}
}

func classOf(c byte) charClass {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		return classSegment
	case c == '.':
		return classDot
	default:
		return classOther
	}
}

// Scan runs the automaton over text and, on acceptance, splits it into its
// three segments. Each call uses fresh scanner state, so concurrent scans of
// independent tokens are safe.
func Scan(text string) Result {
	current := q0

	for i := 0; i < len(text); i++ {
		class := classOf(text[i])
		if class == classOther {
			current = qTrap
			break
		}
		current = transitions[current][class]
		if current == qTrap {
			break
		}
	}

	if current != q5 {
		return Result{Valid: false, Token: text, Err: ErrMalformedToken}
	}

	parts := strings.Split(text, ".")
	return Result{
		Valid:     true,
		Token:     text,
		Header:    parts[0],
		Payload:   parts[1],
		Signature: parts[2],
	}
}
