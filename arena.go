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
	art "github.com/kralicky/go-adaptive-radix-tree"
)

// table is an ordered map from name to descriptor, used for the four public
// tables. It stores only values that have been put into it; the unresolved
// forward stubs of constants and messages are kept in the collectors' own
// slot maps, not here. It is backed by the
// same adaptive radix tree the teacher uses for its descriptor/symbol
// tables (linker.Symbols, linker/linker.go), which gives lexicographic
// iteration over names for free - exactly the ordering the emission driver
// (§4.5) needs for each of the four public tables.
type table[T any] struct {
	tree art.Tree
}

func newTable[T any]() *table[T] {
	return &table[T]{tree: art.New()}
}

// Get returns the value stored under name, if any.
func (t *table[T]) Get(name string) (T, bool) {
	v, found := t.tree.Search(art.Key(name))
	if !found {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Has reports whether name is present.
func (t *table[T]) Has(name string) bool {
	_, found := t.tree.Search(art.Key(name))
	return found
}

// Put inserts or replaces the value stored under name.
func (t *table[T]) Put(name string, v T) {
	t.tree.Insert(art.Key(name), v)
}

// Names returns every key in lexicographic order.
func (t *table[T]) Names() []string {
	names := make([]string, 0, t.tree.Size())
	_ = t.tree.ForEach(func(n art.Node) bool {
		names = append(names, string(n.Key()))
		return true
	})
	return names
}

// Each calls fn for every entry in lexicographic order by name.
func (t *table[T]) Each(fn func(name string, v T)) {
	_ = t.tree.ForEach(func(n art.Node) bool {
		fn(string(n.Key()), n.Value().(T))
		return true
	})
}

// Len reports the number of entries in the table.
func (t *table[T]) Len() int { return t.tree.Size() }
