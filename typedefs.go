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
	"sort"

	"github.com/kralicky/sddl/reporter"
	"github.com/kralicky/sddl/sddlast"
)

// typedefCollector implements §4.4's typedef half: place and name
// uniqueness within each block, `delete` markers reserving but not
// emitting a place, and no cross-reference resolution (a typedef alias's
// target type name is carried through uninterpreted - per §9, typedefs
// and rpcs are not subject to the cycle checking that constants and
// messages get, since nothing about an alias or call can form a
// self-referential size or evaluation-order problem).
type typedefCollector struct {
	h        *reporter.Handler
	declared map[string]sddlast.Position
	public   *table[*TypedefDescriptor]
}

func newTypedefCollector(h *reporter.Handler) *typedefCollector {
	return &typedefCollector{
		h:        h,
		declared: make(map[string]sddlast.Position),
		public:   newTable[*TypedefDescriptor](),
	}
}

func (tc *typedefCollector) enterFile(f *sddlast.File) error {
	for _, t := range f.Typedefs {
		if prev, ok := tc.declared[t.Name]; ok {
			return report(tc.h, t.Pos, reporter.AlreadyDefined(prev))
		}
		tc.declared[t.Name] = t.Pos

		seenNames := make(map[string]sddlast.Position)
		seenPlaces := make(map[int]sddlast.Position)
		var aliases []*AliasDescriptor
		for _, a := range t.Aliases {
			if prev, ok := seenPlaces[a.Place]; ok {
				return report(tc.h, a.PlacePos, reporter.PlaceConflict(a.Place, prev))
			}
			seenPlaces[a.Place] = a.PlacePos

			// A delete-marked alias still reserves its place (§4.4, illustrated
			// by §8 scenario 7) but is neither recorded nor counted toward name
			// uniqueness.
			if a.IsDelete {
				continue
			}
			if prev, ok := seenNames[a.Name]; ok {
				return report(tc.h, a.Pos, reporter.AlreadyDefined(prev))
			}
			seenNames[a.Name] = a.Pos
			aliases = append(aliases, &AliasDescriptor{
				Name:     a.Name,
				Place:    a.Place,
				Kind:     a.Target.Builtin,
				IsNull:   a.Target.IsNull,
				TypeName: a.Target.Name,
				Pos:      a.Pos,
			})
		}
		sort.Slice(aliases, func(i, j int) bool { return aliases[i].Name < aliases[j].Name })
		tc.public.Put(t.Name, &TypedefDescriptor{Name: t.Name, Aliases: aliases, Pos: t.Pos})
	}
	return nil
}
