// Package value implements Ember's runtime Value: a small tagged union
// over Nil, Bool, Number, and String, plus the per-Chunk ConstantPool that
// holds them. See DESIGN.md for why String uses a GC-backed interned
// handle rather than a hand-rolled reference count.
package value

import (
	"fmt"
	"math"
)

// Kind tags which alternative of Value is populated.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

// StringObj is the shared, immutable backing for a String value. Values
// copy a pointer to a StringObj, never its contents, so equal-by-identity
// strings compare cheaply and the object graph stays acyclic (a StringObj
// never refers back to a Value).
type StringObj struct {
	Chars string
}

// Value is Ember's tagged runtime value. The zero Value is Nil.
type Value struct {
	kind   Kind
	number float64
	boolean bool
	str    *StringObj
}

// Nil is the singleton Nil value.
var Nil = Value{kind: KindNil}

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number constructs a Number value.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// String constructs a String value wrapping s. Each call allocates a fresh
// StringObj; callers that want interning (the compiler, for literals) go
// through ConstantPool.Intern instead.
func String(s string) Value { return Value{kind: KindString, str: &StringObj{Chars: s}} }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }

// AsBool returns the boolean payload; only meaningful when IsBool is true.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber returns the numeric payload; only meaningful when IsNumber is true.
func (v Value) AsNumber() float64 { return v.number }

// AsString returns the string payload; only meaningful when IsString is true.
func (v Value) AsString() string { return v.str.Chars }

// Falsy implements the falsy rule: Nil and Bool(false) are falsy, every
// other Value is truthy.
func (v Value) Falsy() bool {
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return !v.boolean
	default:
		return false
	}
}

// Equal implements Value's structural equality: cross-tag comparisons are
// always false, same-tag comparisons compare payloads (string values
// compare by content, not identity - two freshly concatenated strings with
// the same text are equal).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	case KindString:
		return a.str.Chars == b.str.Chars
	default:
		return false
	}
}

// String renders v's canonical text form, used by the PRINT opcode and by
// the disassembler when printing a constant.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		if math.IsNaN(v.number) {
			return "NaN"
		}
		if math.IsInf(v.number, 1) {
			return "inf"
		}
		if math.IsInf(v.number, -1) {
			return "-inf"
		}
		return formatNumber(v.number)
	case KindString:
		return v.str.Chars
	default:
		return fmt.Sprintf("<unknown value kind %d>", v.kind)
	}
}

// formatNumber prints integral floats without a trailing ".0" (so
// print(1+2*3) prints "7", not "7.0"), and keeps full precision otherwise.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}

// TypeName names v's tag, used in runtime type-error messages.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}
