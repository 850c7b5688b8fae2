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

// Package sddlexpr implements the evaluable constant expression tree: the
// "dynamic value/expression tree" of the source redesigned (per the
// teacher's AST-to-value conversion idiom) as a tagged variant tree instead
// of a dynamically type-cased one.
package sddlexpr

import (
	"fmt"

	"github.com/kralicky/sddl/sddlvalue"
)

// ErrTypeMismatch is returned by Typeof (and wrapped in Eval errors) when an
// expression's operand kinds do not satisfy any of the typing rules in §3.
var ErrTypeMismatch = fmt.Errorf("type mismatch in the expression")

// Expr is an evaluable node in a constant expression tree. Every node
// supports the same four typed-conversion attempts as sddlvalue.Value plus a
// Typeof that reports the statically resolvable result kind or fails.
type Expr interface {
	// Eval computes this node's value, recursively evaluating children.
	Eval() (sddlvalue.Value, error)
	// Typeof reports the result kind this node will produce without
	// necessarily evaluating leaves that don't affect the kind, or
	// ErrTypeMismatch if no typing rule applies.
	Typeof() (sddlvalue.Kind, error)

	TryBool() (bool, bool)
	TryInt() (int32, bool)
	TryFloat() (float64, bool)
	TryString() (string, bool)
}

// base provides the Try* conversions in terms of Eval, shared by every node.
type base struct{ self Expr }

func (b base) TryBool() (bool, bool) {
	v, err := b.self.Eval()
	if err != nil {
		return false, false
	}
	return v.TryBool()
}

func (b base) TryInt() (int32, bool) {
	v, err := b.self.Eval()
	if err != nil {
		return 0, false
	}
	return v.TryInt()
}

func (b base) TryFloat() (float64, bool) {
	v, err := b.self.Eval()
	if err != nil {
		return 0, false
	}
	return v.TryFloat()
}

func (b base) TryString() (string, bool) {
	v, err := b.self.Eval()
	if err != nil {
		return "", false
	}
	return v.TryString()
}

// Leaf wraps an already-known Value, e.g. a literal or a resolved constant
// reference, as an expression leaf.
type Leaf struct {
	base
	V sddlvalue.Value
}

// NewLeaf constructs a value leaf.
func NewLeaf(v sddlvalue.Value) *Leaf {
	l := &Leaf{V: v}
	l.base = base{self: l}
	return l
}

func (l *Leaf) Eval() (sddlvalue.Value, error) { return l.V, nil }

func (l *Leaf) Typeof() (sddlvalue.Kind, error) {
	if l.V.Kind() == sddlvalue.Other {
		return 0, ErrTypeMismatch
	}
	return l.V.Kind(), nil
}

func numericKind(a, b sddlvalue.Kind) (sddlvalue.Kind, bool) {
	if a != sddlvalue.Int && a != sddlvalue.Float {
		return 0, false
	}
	if b != sddlvalue.Int && b != sddlvalue.Float {
		return 0, false
	}
	if a == sddlvalue.Int && b == sddlvalue.Int {
		return sddlvalue.Int, true
	}
	return sddlvalue.Float, true
}

func wrap(self Expr) base { return base{self: self} }
