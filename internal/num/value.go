// Package num implements the numeric cell shared by the data stack, the heap,
// and threaded code literals: an integer, or a float64 once any float has
// touched it.
package num

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Value is either an int or a float64; the zero Value is the integer 0.
type Value struct {
	i     int
	f     float64
	float bool
}

// ErrDivideByZero is returned by Div and Mod.
var ErrDivideByZero = errors.New("division by zero")

// Int returns an integer Value.
func Int(i int) Value { return Value{i: i} }

// Float returns a floating point Value.
func Float(f float64) Value { return Value{f: f, float: true} }

// Bool returns the -1 / 0 truth value.
func Bool(b bool) Value {
	if b {
		return Value{i: -1}
	}
	return Value{}
}

// IsFloat reports whether v holds a float64.
func (v Value) IsFloat() bool { return v.float }

// Int returns v truncated to an int.
func (v Value) Int() int {
	if v.float {
		return int(v.f)
	}
	return v.i
}

// Float returns v as a float64.
func (v Value) Float() float64 {
	if v.float {
		return v.f
	}
	return float64(v.i)
}

// Truth reports whether v counts as true: any non-zero value does.
func (v Value) Truth() bool {
	if v.float {
		return v.f != 0
	}
	return v.i != 0
}

func (v Value) String() string {
	if !v.float {
		return strconv.Itoa(v.i)
	}
	s := strconv.FormatFloat(v.f, 'f', -1, 64)
	if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
		return s
	}
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Parse converts a token into a Value, trying a base 10 integer first and then
// a float. Tokens without any decimal digit (like "inf" or "nan") are not
// numbers.
func Parse(token string) (Value, bool) {
	if !strings.ContainsAny(token, "0123456789") {
		return Value{}, false
	}
	if n, err := strconv.ParseInt(token, 10, strconv.IntSize); err == nil {
		return Int(int(n)), true
	}
	if strings.ContainsAny(token, "xX_") {
		return Value{}, false
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return Float(f), true
	}
	return Value{}, false
}

// Add returns a+b.
func Add(a, b Value) Value {
	if a.float || b.float {
		return Float(a.Float() + b.Float())
	}
	return Int(a.i + b.i)
}

// Sub returns a-b.
func Sub(a, b Value) Value {
	if a.float || b.float {
		return Float(a.Float() - b.Float())
	}
	return Int(a.i - b.i)
}

// Mul returns a*b.
func Mul(a, b Value) Value {
	if a.float || b.float {
		return Float(a.Float() * b.Float())
	}
	return Int(a.i * b.i)
}

// Div returns the true quotient a/b, always as a float; use Floor for an
// integer result.
func Div(a, b Value) (Value, error) {
	if !b.Truth() {
		return Value{}, ErrDivideByZero
	}
	return Float(a.Float() / b.Float()), nil
}

// Mod returns the floored remainder of a/b, which takes the sign of b.
func Mod(a, b Value) (Value, error) {
	if !b.Truth() {
		return Value{}, ErrDivideByZero
	}
	if a.float || b.float {
		y := b.Float()
		r := math.Mod(a.Float(), y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return Float(r), nil
	}
	r := a.i % b.i
	if r != 0 && (r < 0) != (b.i < 0) {
		r += b.i
	}
	return Int(r), nil
}

// And returns the bitwise and of the integer values of a and b.
func And(a, b Value) Value { return Int(a.Int() & b.Int()) }

// Or returns the bitwise or of the integer values of a and b.
func Or(a, b Value) Value { return Int(a.Int() | b.Int()) }

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func Compare(a, b Value) int {
	if a.float || b.float {
		x, y := a.Float(), b.Float()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	switch {
	case a.i < b.i:
		return -1
	case a.i > b.i:
		return 1
	}
	return 0
}

// Floor rounds v down; integers are returned as is.
func Floor(v Value) Value {
	if !v.float {
		return v
	}
	return Int(int(math.Floor(v.f)))
}

// Math applies a float function, always yielding a float Value.
func Math(fn func(float64) float64, v Value) Value { return Float(fn(v.Float())) }
