package netgraph

import (
	"reflect"
	"sort"
	"testing"

	"github.com/luppa-project/luppa/pkg/common"
	"github.com/luppa-project/luppa/pkg/vocabulary"
)

func buildGraph(t *testing.T, ids []string, pairs [][2]string) *EntityGraph {
	t.Helper()
	g := New(vocabulary.Default())

	entities := make([]common.Entity, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, entity(id, vocabulary.TypeOfficial))
	}
	relationships := make([]common.Relationship, 0, len(pairs))
	for _, p := range pairs {
		relationships = append(relationships, edge(p[0], p[1], vocabulary.RelationPolitical))
	}

	if _, err := g.Ingest(common.Batch{Entities: entities, Relationships: relationships}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	return g
}

func sortedCycle(cycle []string) []string {
	out := make([]string, len(cycle))
	copy(out, cycle)
	sort.Strings(out)
	return out
}

func TestCycleBasis(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		pairs [][2]string
		want  [][]string // member sets, sorted within each cycle
	}{
		{
			name: "empty graph",
			want: [][]string{},
		},
		{
			name:  "tree has no cycles",
			ids:   []string{"a", "b", "c", "d"},
			pairs: [][2]string{{"a", "b"}, {"a", "c"}, {"c", "d"}},
			want:  [][]string{},
		},
		{
			name:  "triangle",
			ids:   []string{"a", "b", "c"},
			pairs: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "square",
			ids:   []string{"a", "b", "c", "d"},
			pairs: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}},
			want:  [][]string{{"a", "b", "c", "d"}},
		},
		{
			name: "two independent triangles in separate components",
			ids:  []string{"a", "b", "c", "x", "y", "z"},
			pairs: [][2]string{
				{"a", "b"}, {"b", "c"}, {"c", "a"},
				{"x", "y"}, {"y", "z"}, {"z", "x"},
			},
			want: [][]string{{"a", "b", "c"}, {"x", "y", "z"}},
		},
		{
			name: "theta graph has two independent cycles",
			ids:  []string{"a", "b", "c", "d"},
			pairs: [][2]string{
				{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "a"},
			},
			want: [][]string{{"a", "b", "c"}, {"a", "c", "d"}},
		},
		{
			name:  "self-loop is a single-node cycle",
			ids:   []string{"a", "b"},
			pairs: [][2]string{{"a", "a"}, {"a", "b"}},
			want:  [][]string{{"a"}},
		},
		{
			name:  "parallel edges do not form a cycle",
			ids:   []string{"a", "b"},
			pairs: [][2]string{{"a", "b"}, {"a", "b"}},
			want:  [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.ids, tt.pairs)

			got := g.CycleBasis()
			if len(got) != len(tt.want) {
				t.Fatalf("CycleBasis() = %d cycles %v, want %d", len(got), got, len(tt.want))
			}

			gotSets := make([][]string, 0, len(got))
			for _, c := range got {
				gotSets = append(gotSets, sortedCycle(c))
			}
			wantSets := make([][]string, 0, len(tt.want))
			for _, c := range tt.want {
				wantSets = append(wantSets, sortedCycle(c))
			}
			sort.Slice(gotSets, func(i, j int) bool { return gotSets[i][0] < gotSets[j][0] })
			sort.Slice(wantSets, func(i, j int) bool { return wantSets[i][0] < wantSets[j][0] })
			if !reflect.DeepEqual(gotSets, wantSets) {
				t.Errorf("CycleBasis() members = %v, want %v", gotSets, wantSets)
			}
		})
	}
}

func TestCycleBasisDeterministic(t *testing.T) {
	build := func() *EntityGraph {
		return buildGraph(t,
			[]string{"a", "b", "c", "d", "e"},
			[][2]string{
				{"a", "b"}, {"b", "c"}, {"c", "a"},
				{"c", "d"}, {"d", "e"}, {"e", "c"},
			},
		)
	}

	first := build().CycleBasis()
	for i := 0; i < 5; i++ {
		if got := build().CycleBasis(); !reflect.DeepEqual(got, first) {
			t.Fatalf("CycleBasis() not deterministic: %v vs %v", got, first)
		}
	}
}

func TestCycleBasisSpansIndependentCycles(t *testing.T) {
	// Complete graph on 4 nodes: 6 edges, 4 nodes, one component,
	// so the basis must contain 6-4+1 = 3 independent cycles.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{
			{"a", "b"}, {"a", "c"}, {"a", "d"},
			{"b", "c"}, {"b", "d"}, {"c", "d"},
		},
	)

	if got := g.CycleBasis(); len(got) != 3 {
		t.Errorf("CycleBasis() = %d cycles %v, want 3", len(got), got)
	}
}
