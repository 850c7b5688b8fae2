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

// Package graph implements the classic two-set DFS that both the constant
// collector and the message collector need: a topological order and cycle
// detection in one pass, shared via a small generic routine parameterized
// by a "neighbors" function. Grounded on the redesign note in spec.md §9
// ("Graph cycle detection").
package graph

// Sort performs a DFS-based topological sort over nodes, using neighbors to
// find each node's out-edges. Visitation order among nodes with no ordering
// constraint between them follows the order of the nodes slice (callers
// that need a deterministic traversal, such as "lexicographic by name",
// should pre-sort nodes before calling Sort).
//
// If a cycle is detected, onCycle is called with the name of the node whose
// re-entrant visit closed the cycle, and Sort returns immediately with
// whatever order had been produced so far plus a false ok.
func Sort[T comparable](nodes []T, neighbors func(T) []T, onCycle func(T)) (order []T, ok bool) {
	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	state := make(map[T]int, len(nodes))
	order = make([]T, 0, len(nodes))

	var visit func(n T) bool
	visit = func(n T) bool {
		switch state[n] {
		case done:
			return true
		case onStack:
			onCycle(n)
			return false
		}
		state[n] = onStack
		for _, dep := range neighbors(n) {
			if !visit(dep) {
				return false
			}
		}
		state[n] = done
		order = append(order, n)
		return true
	}

	for _, n := range nodes {
		if state[n] == unvisited {
			if !visit(n) {
				return order, false
			}
		}
	}
	return order, true
}
