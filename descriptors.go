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

// Package sddl implements the SDDL compiler front end: require resolution,
// constant/message/typedef/rpc collection, and the emission driver that
// feeds a pluggable target.Target. The pipeline is entirely single
// threaded and batch (§5): one Compiler.Compile call walks every required
// file once and produces (or fails to produce) a complete Result.
package sddl

import (
	"github.com/kralicky/sddl/sddlast"
	"github.com/kralicky/sddl/sddlvalue"
)

// ConstantDescriptor is a fully evaluated public constant (§3).
type ConstantDescriptor struct {
	Name  string
	Kind  sddlvalue.Kind
	Value sddlvalue.Value
	Pos   sddlast.Position
}

// EntryDescriptor is one field of a public message (§3 Entry).
type EntryDescriptor struct {
	FieldName string
	Place     int
	Kind       sddlvalue.Kind // Other when this entry refers to another message
	TypeName   string         // populated when Kind == Other
	Option     sddlast.EntryOption
	Default    sddlvalue.Value
	HasDefault bool
	Pos        sddlast.Position
}

// MessageDescriptor is a fully collected public message (§3).
type MessageDescriptor struct {
	Name    string
	Entries []*EntryDescriptor // sorted by Place once Collect finishes
	Pos     sddlast.Position
}

// AliasDescriptor is one member of a public typedef (§3 Typedef descriptor).
type AliasDescriptor struct {
	Name     string
	Place    int
	Kind     sddlvalue.Kind
	IsNull   bool
	TypeName string // populated when Kind == Other
	Pos      sddlast.Position
}

// TypedefDescriptor is a fully collected public typedef (§3).
type TypedefDescriptor struct {
	Name    string
	Aliases []*AliasDescriptor // sorted by Name when the typedef is entered
	Pos     sddlast.Position
}

// CallDescriptor is one member of a public rpc (§3 RPC descriptor).
type CallDescriptor struct {
	Name     string
	Place    int
	Request  *sddlast.TypeRef
	Response *sddlast.TypeRef
	Pos      sddlast.Position
}

// RPCDescriptor is a fully collected public rpc (§3).
type RPCDescriptor struct {
	Name  string
	Calls []*CallDescriptor // sorted by Name when the rpc is entered
	Pos   sddlast.Position
}

// Result bundles the four public descriptor tables produced by a
// successful Compile, plus the parsed file set for callers that want to
// inspect the require graph. Grounded on the teacher's compiler.go, which
// returns a similarly-shaped linker.Files/Result bundle rather than a bare
// slice of descriptors.
type Result struct {
	Constants *table[*ConstantDescriptor]
	Messages  *table[*MessageDescriptor]
	Typedefs  *table[*TypedefDescriptor]
	RPCs      *table[*RPCDescriptor]
	Files     []*sddlast.File
}
