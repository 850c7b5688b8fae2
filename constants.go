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

package sddl

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kralicky/sddl/internal/graph"
	"github.com/kralicky/sddl/reporter"
	"github.com/kralicky/sddl/sddlast"
	"github.com/kralicky/sddl/sddlexpr"
	"github.com/kralicky/sddl/sddlvalue"
)

// constantSlot is the forward-declared-descriptor arena entry for one
// constant name (§9's "arena with lookup by name"): it starts out as an
// unresolved stub the first time any expression references the name, and
// is filled in once the declaration itself is entered.
type constantSlot struct {
	name      string
	declared  bool
	declKind  sddlast.ConstantDeclKind
	declPos   sddlast.Position
	refPos    sddlast.Position // position of the first referencing identifier, for "could not be found"
	resolved  sddlexpr.Expr
	deps      []string
	ownerFile string
	value     sddlvalue.Value
	evaluated bool
}

// constantCollector implements §4.2: Pass A enters every constant
// declaration across the whole require-resolved file set into one shared
// slot arena (this is what makes forward references legal both within a
// file and across files - a later file's constant can be depended on by
// an earlier file's, since nothing is promoted to the public table until
// every file has been entered). Pass B then topologically evaluates the
// whole graph at once and promotes each slot into either the public table
// or its owning file's local table.
type constantCollector struct {
	h      *reporter.Handler
	slots  map[string]*constantSlot
	public *table[*ConstantDescriptor]
	// local holds, per owning file name, the constants declared `local` in
	// that file: visible to later expressions in the same file (including
	// message defaults) but never promoted to public or emitted.
	local map[string]*table[*ConstantDescriptor]
}

func newConstantCollector(h *reporter.Handler) *constantCollector {
	return &constantCollector{
		h:      h,
		slots:  make(map[string]*constantSlot),
		public: newTable[*ConstantDescriptor](),
		local:  make(map[string]*table[*ConstantDescriptor]),
	}
}

func (c *constantCollector) getOrCreateSlot(name string) *constantSlot {
	if s, ok := c.slots[name]; ok {
		return s
	}
	s := &constantSlot{name: name}
	c.slots[name] = s
	return s
}

// resolve is the identResolver used while building every constant's
// expression tree: it records a dependency edge from the constant
// currently being entered (owner) onto name, and returns a Ref that reads
// name's evaluated value lazily, once Collect has topologically reached
// it.
func (c *constantCollector) resolve(owner *constantSlot, name string, pos sddlast.Position) (sddlexpr.Expr, error) {
	dep := c.getOrCreateSlot(name)
	if dep.refPos == (sddlast.Position{}) {
		dep.refPos = pos
	}
	owner.deps = append(owner.deps, name)
	return sddlexpr.NewRef(name, func(string) (sddlexpr.Expr, error) {
		if !dep.evaluated {
			return nil, fmt.Errorf("%s: circular or unresolved reference to %s", pos, name)
		}
		return sddlexpr.NewLeaf(dep.value), nil
	}), nil
}

// enterFile runs Pass A over one file's constant declarations.
func (c *constantCollector) enterFile(f *sddlast.File) error {
	for _, cd := range f.Constants {
		slot := c.getOrCreateSlot(cd.Name)
		if slot.declared {
			return c.h.HandleError(reporter.Error(cd.Pos, reporter.AlreadyDefined(slot.declPos)))
		}
		slot.declared = true
		slot.declKind = cd.DeclKind
		slot.declPos = cd.Pos
		slot.ownerFile = f.Name

		resolve := func(name string, pos sddlast.Position) (sddlexpr.Expr, error) {
			return c.resolve(slot, name, pos)
		}
		expr, err := buildExpr(cd.Expr, resolve)
		if err != nil {
			return c.h.HandleError(reporter.Error(cd.Pos, err))
		}
		slot.resolved = expr
	}
	return nil
}

// collect runs Pass B: verification, topological evaluation, and
// promotion to the public or per-file-local table.
func (c *constantCollector) collect() error {
	names := make([]string, 0, len(c.slots))
	for n := range c.slots {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		s := c.slots[n]
		if !s.declared {
			return c.h.HandleError(reporter.Error(s.refPos, reporter.UnresolvedReferenceError{Name: n, Noun: "variable"}))
		}
	}

	var cyclic string
	order, ok := graph.Sort(names, func(n string) []string { return c.slots[n].deps }, func(n string) { cyclic = n })
	if !ok {
		pos := c.slots[cyclic].declPos
		return c.h.HandleError(reporter.Error(pos, reporter.CircularReference()))
	}

	for _, n := range order {
		s := c.slots[n]
		val, err := s.resolved.Eval()
		if err != nil {
			if errors.Is(err, sddlexpr.ErrTypeMismatch) && s.declKind != sddlast.DeclAuto && s.declKind != sddlast.DeclLocal {
				err = cannotConvert(s.declKind)
			}
			return c.h.HandleError(reporter.Error(s.declPos, err))
		}
		val, err = coerceToDeclKind(s.declKind, val)
		if err != nil {
			return c.h.HandleError(reporter.Error(s.declPos, err))
		}
		s.value = val
		s.evaluated = true

		desc := &ConstantDescriptor{Name: n, Kind: val.Kind(), Value: val, Pos: s.declPos}
		if s.declKind == sddlast.DeclLocal {
			lt, ok := c.local[s.ownerFile]
			if !ok {
				lt = newTable[*ConstantDescriptor]()
				c.local[s.ownerFile] = lt
			}
			lt.Put(n, desc)
		} else {
			c.public.Put(n, desc)
		}
	}
	return nil
}

// cannotConvert builds the declared-kind conversion failure §4.2 step 3
// mandates: "value cannot convert to '<kindname>'", distinct from the
// typeof-path's "type mismatch in the expression" (sddlexpr.ErrTypeMismatch,
// which is reserved for auto/local).
func cannotConvert(kind sddlast.ConstantDeclKind) error {
	return reporter.TypeMismatchError{Detail: fmt.Sprintf("value cannot convert to '%s'", kind)}
}

// coerceToDeclKind applies the declared kind's conversion rule (§3): auto
// and local accept whatever kind the expression produces; the four
// explicit kinds require (possibly lossy-checked, per sddlvalue's
// epsilon-bounded Try* conversions) agreement with the evaluated value.
func coerceToDeclKind(kind sddlast.ConstantDeclKind, v sddlvalue.Value) (sddlvalue.Value, error) {
	switch kind {
	case sddlast.DeclBoolean:
		if v.Kind() != sddlvalue.Bool {
			return sddlvalue.Value{}, cannotConvert(kind)
		}
	case sddlast.DeclInteger:
		i, ok := v.TryInt()
		if !ok {
			return sddlvalue.Value{}, cannotConvert(kind)
		}
		v = sddlvalue.NewInt(i)
	case sddlast.DeclNumber:
		f, ok := v.TryFloat()
		if !ok {
			return sddlvalue.Value{}, cannotConvert(kind)
		}
		v = sddlvalue.NewFloat(f)
	case sddlast.DeclString:
		if v.Kind() != sddlvalue.String {
			return sddlvalue.Value{}, cannotConvert(kind)
		}
	}
	return v, nil
}

// constantsFor returns the constant table visible while resolving
// expressions in file: the public table merged with file's own local
// constants, local taking precedence on a name collision. Pass A keeps one
// slot per name across the whole batch and rejects a second declaration,
// so constants entered by this collector never produce such a collision.
func (c *constantCollector) constantsFor(file string) func(name string) (*ConstantDescriptor, bool) {
	lt := c.local[file]
	return func(name string) (*ConstantDescriptor, bool) {
		if lt != nil {
			if d, ok := lt.Get(name); ok {
				return d, true
			}
		}
		return c.public.Get(name)
	}
}
