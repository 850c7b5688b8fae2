package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kralicky/sddl/internal/graph"
)

func TestTopoSortOrdersDependenciesFirst(t *testing.T) {
	edges := map[string][]string{"A": {"B"}, "B": {}}
	order, ok := graph.Sort([]string{"A", "B"}, func(n string) []string { return edges[n] }, func(string) {})
	require.True(t, ok)
	require.Equal(t, []string{"B", "A"}, order)
}

func TestTopoSortDetectsCycle(t *testing.T) {
	edges := map[string][]string{"A": {"B"}, "B": {"A"}}
	var cyclic string
	_, ok := graph.Sort([]string{"A", "B"}, func(n string) []string { return edges[n] }, func(n string) { cyclic = n })
	require.False(t, ok)
	require.NotEmpty(t, cyclic)
}
