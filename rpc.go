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

// rpcCollector implements §4.4's rpc half: place and name uniqueness
// within each block, `delete` markers, and request/response assignment
// driven directly by whether "->" appeared before or after a call's sole
// type reference.
type rpcCollector struct {
	h        *reporter.Handler
	declared map[string]sddlast.Position
	public   *table[*RPCDescriptor]
}

func newRPCCollector(h *reporter.Handler) *rpcCollector {
	return &rpcCollector{
		h:        h,
		declared: make(map[string]sddlast.Position),
		public:   newTable[*RPCDescriptor](),
	}
}

func (rc *rpcCollector) enterFile(f *sddlast.File) error {
	for _, r := range f.RPCs {
		if prev, ok := rc.declared[r.Name]; ok {
			return report(rc.h, r.Pos, reporter.AlreadyDefined(prev))
		}
		rc.declared[r.Name] = r.Pos

		seenNames := make(map[string]sddlast.Position)
		seenPlaces := make(map[int]sddlast.Position)
		var calls []*CallDescriptor
		for _, c := range r.Calls {
			if prev, ok := seenPlaces[c.Place]; ok {
				return report(rc.h, c.PlacePos, reporter.PlaceConflict(c.Place, prev))
			}
			seenPlaces[c.Place] = c.PlacePos

			// A delete-marked call still reserves its place but is neither
			// recorded nor counted toward name uniqueness (§4.4).
			if c.IsDelete {
				continue
			}
			if prev, ok := seenNames[c.Name]; ok {
				return report(rc.h, c.Pos, reporter.AlreadyDefined(prev))
			}
			seenNames[c.Name] = c.Pos
			calls = append(calls, &CallDescriptor{
				Name:     c.Name,
				Place:    c.Place,
				Request:  c.Request,
				Response: c.Response,
				Pos:      c.Pos,
			})
		}
		sort.Slice(calls, func(i, j int) bool { return calls[i].Name < calls[j].Name })
		rc.public.Put(r.Name, &RPCDescriptor{Name: r.Name, Calls: calls, Pos: r.Pos})
	}
	return nil
}
