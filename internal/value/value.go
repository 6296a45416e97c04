// Package value implements the runtime values of the language.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the tag of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindFalse
	KindTrue
	KindNumber
	KindString
)

// Value is a tagged union over nil, the two booleans, numbers and strings.
// The zero Value is Nil. Values are immutable and compared by Equal.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Nil is the nil value.
var Nil = Value{}

// True and False are the two boolean values.
var (
	True  = Value{kind: KindTrue}
	False = Value{kind: KindFalse}
)

// Number returns a number value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool returns True or False.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Kind returns the value's tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumber reports whether v is a number.
func (v Value) IsNumber() bool {
	return v.kind == KindNumber
}

// IsString reports whether v is a string.
func (v Value) IsString() bool {
	return v.kind == KindString
}

// AsNumber returns the number payload; it is 0 for non-numbers.
func (v Value) AsNumber() float64 {
	return v.num
}

// AsString returns the string payload; it is "" for non-strings.
func (v Value) AsString() string {
	return v.str
}

// Truthy reports whether v counts as true in a condition.
// Only nil and false are falsy.
func (v Value) Truthy() bool {
	return v.kind != KindNil && v.kind != KindFalse
}

// Equal reports whether v and w are the same variant with the same payload.
// Values of different variants are never equal.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == w.num
	case KindString:
		return v.str == w.str
	}
	return true
}

// TypeName returns the user-facing name of v's type, used in runtime errors.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindFalse, KindTrue:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", v.kind)
}

// String formats v the way print does.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	}
	return fmt.Sprintf("Value(%d)", v.kind)
}

// GoString implements fmt.GoStringer so test failures show the variant.
func (v Value) GoString() string {
	switch v.kind {
	case KindNumber:
		return "value.Number(" + FormatNumber(v.num) + ")"
	case KindString:
		return "value.String(" + strconv.Quote(v.str) + ")"
	}
	return "value." + v.String()
}

// FormatNumber renders f as the shortest decimal text without an exponent
// and without a trailing ".0".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
