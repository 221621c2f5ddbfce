package types

import "strconv"

// Value is a runtime value: Number, String, Bool or Nil.
type Value interface {
	is_Value()
	String() string
}

type Number float64

func (v Number) is_Value() {}

// String drops the fractional part of integral numbers, so 3.0 prints as 3.
func (v Number) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

type String string

func (v String) is_Value() {}

func (v String) String() string {
	return string(v)
}

type Bool bool

func (v Bool) is_Value() {}

func (v Bool) String() string {
	return strconv.FormatBool(bool(v))
}

type Nil struct{}

func (v Nil) is_Value() {}

func (v Nil) String() string {
	return "nil"
}

// Truthy reports whether v counts as true in a condition. Only nil and
// false are falsy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(val)
	}
	return true
}

// Equal compares two values. Nil only equals Nil, and values of different
// kinds are never equal.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil{}
	}
	if b == nil {
		b = Nil{}
	}

	switch x := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	}

	return false
}
