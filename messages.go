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
	"fmt"
	"sort"

	"github.com/kralicky/sddl/internal/graph"
	"github.com/kralicky/sddl/reporter"
	"github.com/kralicky/sddl/sddlast"
	"github.com/kralicky/sddl/sddlexpr"
	"github.com/kralicky/sddl/sddlvalue"
)

// messageSlot is one message's collector state: its already-built entries
// plus the set of other message names a required Other-typed entry
// depends on, used purely for cycle detection (§4.3).
type messageSlot struct {
	name     string
	declared bool
	declPos  sddlast.Position
	refPos   sddlast.Position // position of the first referencing entry, for "could not be found"
	entries  []*EntryDescriptor
	deps     []string
}

// messageCollector implements §4.3: place and name uniqueness within each
// message, default-value resolution against the constant tables, and
// cycle detection across required Other-typed entries.
type messageCollector struct {
	h      *reporter.Handler
	slots  map[string]*messageSlot
	public *table[*MessageDescriptor]
}

func newMessageCollector(h *reporter.Handler) *messageCollector {
	return &messageCollector{
		h:      h,
		slots:  make(map[string]*messageSlot),
		public: newTable[*MessageDescriptor](),
	}
}

// getOrCreateSlot returns the existing slot for name, or creates an
// undeclared forward stub for it - mirroring constantCollector's arena
// idiom (§9 "arena with lookup by name") so a message that is only ever
// mentioned by an Other-typed entry, never itself declared, is still
// caught by Collect's "type 'X' could not be found" check.
func (mc *messageCollector) getOrCreateSlot(name string, pos sddlast.Position) *messageSlot {
	s, ok := mc.slots[name]
	if !ok {
		s = &messageSlot{name: name, refPos: pos}
		mc.slots[name] = s
	}
	return s
}

// enterFile runs Pass A over one file's message declarations. constants
// resolves an identifier against the file's merged (public ∪ file-local)
// constant table, used for entry default-value expressions.
func (mc *messageCollector) enterFile(f *sddlast.File, constants func(name string) (*ConstantDescriptor, bool)) error {
	for _, m := range f.Messages {
		slot := mc.getOrCreateSlot(m.Name, m.Pos)
		if slot.declared {
			return report(mc.h, m.Pos, reporter.AlreadyDefined(slot.declPos))
		}
		slot.declared = true
		slot.declPos = m.Pos
		slot.entries = nil

		seenNames := make(map[string]sddlast.Position)
		seenPlaces := make(map[int]sddlast.Position)
		for _, e := range m.Entries {
			if prev, ok := seenNames[e.FieldName]; ok {
				return report(mc.h, e.Pos, reporter.AlreadyDefined(prev))
			}
			seenNames[e.FieldName] = e.Pos
			if prev, ok := seenPlaces[e.Place]; ok {
				return report(mc.h, e.PlacePos, reporter.PlaceConflict(e.Place, prev))
			}
			seenPlaces[e.Place] = e.PlacePos

			if e.IsDelete {
				continue
			}

			kind := e.TypeRef.Builtin
			typeName := ""
			if e.TypeRef.IsOther {
				kind = sddlvalue.Other
				typeName = e.TypeRef.Name
				// A reference to another message, even one never declared
				// in this file, must resolve to some message descriptor
				// (§4.3: "create a forward message stub"); getOrCreateSlot
				// registers it so Collect can report "could not be found"
				// if it is never actually declared anywhere.
				mc.getOrCreateSlot(typeName, e.Pos)
				if e.Option == sddlast.OptRequire {
					slot.deps = append(slot.deps, typeName)
				}
			}

			entry := &EntryDescriptor{
				FieldName: e.FieldName,
				Place:     e.Place,
				Kind:      kind,
				TypeName:  typeName,
				Option:    e.Option,
				Pos:       e.Pos,
			}

			if e.Option == sddlast.OptRequire && kind != sddlvalue.Other {
				val := sddlvalue.Zero(kind)
				if e.Default != nil {
					v, err := evalDefault(e.Default, constants)
					if err != nil {
						return report(mc.h, e.Pos, err)
					}
					v, err = coerceToKind(kind, v)
					if err != nil {
						return report(mc.h, e.Pos, err)
					}
					val = v
				}
				entry.Default = val
				entry.HasDefault = true
			}

			slot.entries = append(slot.entries, entry)
		}
	}
	return nil
}

// evalDefault builds and evaluates an entry default expression, resolving
// identifiers only against the already-fully-evaluated constant tables
// (message collection starts only once every constant has been
// collected, so no forward-reference machinery is needed here).
func evalDefault(n sddlast.ExprNode, constants func(name string) (*ConstantDescriptor, bool)) (sddlvalue.Value, error) {
	expr, err := buildExpr(n, func(name string, pos sddlast.Position) (sddlexpr.Expr, error) {
		d, ok := constants(name)
		if !ok {
			return nil, reporter.Error(pos, reporter.UnresolvedReferenceError{Name: name, Noun: "variable"})
		}
		return sddlexpr.NewLeaf(d.Value), nil
	})
	if err != nil {
		return sddlvalue.Value{}, err
	}
	return expr.Eval()
}

// coerceToKind applies an entry's declared built-in kind to a resolved
// default value, the same conversion rule coerceToDeclKind applies to
// constants.
func coerceToKind(kind sddlvalue.Kind, v sddlvalue.Value) (sddlvalue.Value, error) {
	switch kind {
	case sddlvalue.Bool:
		if v.Kind() != sddlvalue.Bool {
			return sddlvalue.Value{}, fmt.Errorf("default value is not a boolean")
		}
	case sddlvalue.Int:
		i, ok := v.TryInt()
		if !ok {
			return sddlvalue.Value{}, fmt.Errorf("default value is not an integer")
		}
		v = sddlvalue.NewInt(i)
	case sddlvalue.Float:
		f, ok := v.TryFloat()
		if !ok {
			return sddlvalue.Value{}, fmt.Errorf("default value is not a number")
		}
		v = sddlvalue.NewFloat(f)
	case sddlvalue.String:
		if v.Kind() != sddlvalue.String {
			return sddlvalue.Value{}, fmt.Errorf("default value is not a string")
		}
	}
	return v, nil
}

// collect runs Pass B: every referenced message must have been declared,
// then cycle detection across required Other-typed entries, then every
// message (with its entries sorted by place) is promoted to the public
// table.
func (mc *messageCollector) collect() error {
	names := make([]string, 0, len(mc.slots))
	for n := range mc.slots {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		s := mc.slots[n]
		if !s.declared {
			return report(mc.h, s.refPos, reporter.UnresolvedReferenceError{Name: n, Noun: "type"})
		}
	}

	neighbors := func(n string) []string {
		var out []string
		for _, d := range mc.slots[n].deps {
			if _, ok := mc.slots[d]; ok {
				out = append(out, d)
			}
		}
		return out
	}
	var cyclic string
	order, ok := graph.Sort(names, neighbors, func(n string) { cyclic = n })
	if !ok {
		return report(mc.h, mc.slots[cyclic].declPos, reporter.CircularReference())
	}

	for _, n := range order {
		s := mc.slots[n]
		entries := append([]*EntryDescriptor(nil), s.entries...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Place < entries[j].Place })
		mc.public.Put(n, &MessageDescriptor{Name: n, Entries: entries, Pos: s.declPos})
	}
	return nil
}
