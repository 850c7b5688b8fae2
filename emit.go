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
	"github.com/kralicky/sddl/sddlast"
	"github.com/kralicky/sddl/sddlvalue"
	"github.com/kralicky/sddl/target"
)

// kindName renders a built-in kind the way a Target expects to see it:
// its lower-case name, or "" for Other (an unresolved named-type
// reference, per target.Entry's doc).
func kindName(k sddlvalue.Kind) string {
	if k == sddlvalue.Other {
		return ""
	}
	return k.String()
}

// emit drives a target.Target through the fixed sequence of §4.5:
// Prepare, then every public constant (dispatched by kind), then every
// message (entries pre-sorted by place), then every typedef (aliases
// pre-sorted by name), then every rpc (calls pre-sorted by name), then
// Flush.
func emit(t target.Target, sink target.Sink, res *Result) error {
	if err := t.Prepare(sink); err != nil {
		return err
	}

	var emitErr error
	res.Constants.Each(func(name string, c *ConstantDescriptor) {
		if emitErr != nil {
			return
		}
		switch c.Kind {
		case sddlvalue.Bool:
			b, _ := c.Value.TryBool()
			emitErr = t.ValueBool(sink, name, b)
		case sddlvalue.Int:
			i, _ := c.Value.TryInt()
			emitErr = t.ValueInt(sink, name, i)
		case sddlvalue.Float:
			f, _ := c.Value.TryFloat()
			emitErr = t.ValueFloat(sink, name, f)
		case sddlvalue.String:
			s, _ := c.Value.TryString()
			emitErr = t.ValueString(sink, name, s)
		}
	})
	if emitErr != nil {
		return emitErr
	}

	res.Messages.Each(func(name string, m *MessageDescriptor) {
		if emitErr != nil {
			return
		}
		entries := make([]target.Entry, len(m.Entries))
		for i, e := range m.Entries {
			entries[i] = target.Entry{
				FieldName: e.FieldName,
				Place:     e.Place,
				Kind:      kindName(e.Kind),
				TypeName:  e.TypeName,
				Option:    string(e.Option),
			}
			if e.HasDefault {
				entries[i].Default = e.Default
			}
		}
		emitErr = t.Message(sink, name, entries)
	})
	if emitErr != nil {
		return emitErr
	}

	res.Typedefs.Each(func(name string, td *TypedefDescriptor) {
		if emitErr != nil {
			return
		}
		aliases := make([]target.Alias, len(td.Aliases))
		for i, a := range td.Aliases {
			kind := kindName(a.Kind)
			if a.IsNull {
				kind = "null"
			}
			aliases[i] = target.Alias{Name: a.Name, Place: a.Place, Kind: kind, TypeName: a.TypeName}
		}
		emitErr = t.Typedef(sink, name, aliases)
	})
	if emitErr != nil {
		return emitErr
	}

	res.RPCs.Each(func(name string, r *RPCDescriptor) {
		if emitErr != nil {
			return
		}
		calls := make([]target.Call, len(r.Calls))
		for i, c := range r.Calls {
			calls[i] = target.Call{
				Name:     c.Name,
				Place:    c.Place,
				Request:  toTargetAlias(c.Request),
				Response: toTargetAlias(c.Response),
			}
		}
		emitErr = t.RPC(sink, name, calls)
	})
	if emitErr != nil {
		return emitErr
	}

	return t.Flush(sink)
}

func toTargetAlias(tr *sddlast.TypeRef) *target.Alias {
	if tr == nil {
		return nil
	}
	kind := kindName(tr.Builtin)
	if tr.IsNull {
		kind = "null"
	}
	if tr.IsOther {
		kind = ""
	}
	return &target.Alias{Kind: kind, TypeName: tr.Name}
}
