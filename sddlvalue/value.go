// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sddlvalue defines the dynamically-typed value that constant
// expressions and message field defaults evaluate to.
package sddlvalue

import "math"

// Epsilon is the tolerance used for float equality, ordering, and
// float-to-int conversion. This is the IEEE-754 double machine epsilon, and
// is preserved verbatim (rather than "improved") so that evaluation results
// are deterministic across implementations.
const Epsilon = 2.2204460492503131e-16

// Kind identifies the concrete shape of a Value.
type Kind int

const (
	// Other is the sentinel kind for a named user type that has not (or
	// cannot) be resolved to one of the built-in kinds below. It never
	// appears in the public constant table; it only labels message entries,
	// typedef aliases and RPC calls that refer to another schema type.
	Other Kind = iota
	Bool
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Float:
		return "number"
	case String:
		return "string"
	default:
		return "other"
	}
}

// Value is a tagged union over the four concrete value kinds plus Other, an
// unresolved named-type marker. The zero Value is Other with an empty name.
type Value struct {
	kind   Kind
	b      bool
	i      int32
	f      float64
	s      string
	tyName string // only meaningful when kind == Other
}

// Kind reports the concrete kind carried by this value.
func (v Value) Kind() Kind { return v.kind }

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewInt constructs an Int value.
func NewInt(i int32) Value { return Value{kind: Int, i: i} }

// NewFloat constructs a Float value.
func NewFloat(f float64) Value { return Value{kind: Float, f: f} }

// NewString constructs a String value.
func NewString(s string) Value { return Value{kind: String, s: s} }

// NewOther constructs the Other sentinel, naming the unresolved type.
func NewOther(typeName string) Value { return Value{kind: Other, tyName: typeName} }

// Zero returns the zero value for the given built-in kind: false, 0, 0.0, or
// "". Zero is undefined (returns the Other sentinel) for Other.
func Zero(k Kind) Value {
	switch k {
	case Bool:
		return NewBool(false)
	case Int:
		return NewInt(0)
	case Float:
		return NewFloat(0)
	case String:
		return NewString("")
	default:
		return NewOther("")
	}
}

// TypeName returns the unresolved type name for an Other value.
func (v Value) TypeName() string { return v.tyName }

// TryBool attempts to view this value as a bool. Bool<->numeric conversion
// is never implicit, so this only succeeds for a Bool value.
func (v Value) TryBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// TryInt attempts to view this value as an int32. Int succeeds trivially;
// Float succeeds iff it is within Epsilon of an integral value.
func (v Value) TryInt() (int32, bool) {
	switch v.kind {
	case Int:
		return v.i, true
	case Float:
		r := math.Round(v.f)
		if math.Abs(v.f-r) < Epsilon {
			return int32(r), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// TryFloat attempts to view this value as a float64. Int->Float is always
// lossless.
func (v Value) TryFloat() (float64, bool) {
	switch v.kind {
	case Float:
		return v.f, true
	case Int:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// TryString attempts to view this value as a string. There is no implicit
// conversion to string from any other kind.
func (v Value) TryString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

// Equal reports whether two values are equal under the rules of §3: matched
// Bool pair, numeric pair (within Epsilon), or String pair. Any other
// combination (including either operand being Other) is not equal.
func Equal(a, b Value) bool {
	if ab, ok := a.TryBool(); ok {
		if bb, ok := b.TryBool(); ok {
			return ab == bb
		}
		return false
	}
	if as, ok := a.TryString(); ok {
		if bs, ok := b.TryString(); ok {
			return as == bs
		}
		return false
	}
	af, aok := a.TryFloat()
	bf, bok := b.TryFloat()
	if aok && bok {
		return math.Abs(af-bf) < Epsilon
	}
	return false
}
