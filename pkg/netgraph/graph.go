// Package netgraph owns the in-memory entity-relationship graph: the
// canonical node/edge set, the batch ingestion contract, and the read
// surface the pattern detector and export collaborators consume.
//
// An EntityGraph holds no internal lock. The contract is at most one active
// mutator and no readers concurrent with it; callers that process documents
// concurrently must serialize ingestion, e.g. one ingestion queue feeding a
// single graph owner.
package netgraph

import (
	"fmt"

	"github.com/luppa-project/luppa/pkg/common"
	"github.com/luppa-project/luppa/pkg/vocabulary"
)

// EntityGraph is the mutable session-lifetime graph. It is created empty,
// grows only via Ingest, has no deletion operation, and is discarded at
// session end. Persistence is the export collaborator's job.
type EntityGraph struct {
	vocab *vocabulary.Vocabulary

	nodes map[string]common.Entity
	order []string // node ids in insertion order, fixes traversal order

	edges []common.Relationship

	// adj is the simple-undirected traversal view: unique neighbors per
	// node in edge insertion order. Parallel edges collapse here; self-loop
	// adjacency is kept so the cycle walk can report single-node cycles.
	adj    map[string][]string
	degree map[string]int
}

// IngestResult reports what a successful batch application changed.
type IngestResult struct {
	EntitiesAdded   int `json:"entities_added"`
	EntitiesUpdated int `json:"entities_updated"`
	EdgesAdded      int `json:"edges_added"`
}

// New creates an empty graph validating against the given vocabulary.
func New(vocab *vocabulary.Vocabulary) *EntityGraph {
	return &EntityGraph{
		vocab:  vocab,
		nodes:  make(map[string]common.Entity),
		adj:    make(map[string][]string),
		degree: make(map[string]int),
	}
}

// Ingest merges a batch of extracted facts into the graph.
//
// The whole batch is validated before any mutation: every entity type and
// relationship type must be recognized by the vocabulary, and every
// relationship endpoint must resolve to an entity already in the graph or
// declared in this batch. On validation failure the graph is left unchanged
// and a typed error is returned.
//
// Entity upserts apply first, in batch order, so later entries with the same
// id overwrite earlier ones. Re-ingesting an existing id replaces its name,
// type and attributes wholesale (last-write-wins, not a merge). Edges are
// then appended as distinct facts; duplicates are never merged.
func (g *EntityGraph) Ingest(batch common.Batch) (IngestResult, error) {
	var res IngestResult

	inBatch := make(map[string]struct{}, len(batch.Entities))
	for _, e := range batch.Entities {
		if !g.vocab.HasEntityType(e.Type) {
			return res, fmt.Errorf("entity %q: %w: %q", e.ID, ErrUnknownEntityType, e.Type)
		}
		inBatch[e.ID] = struct{}{}
	}
	for _, r := range batch.Relationships {
		if !g.vocab.HasRelationshipType(r.Type) {
			return res, fmt.Errorf("relationship %s-%s: %w: %q", r.Source, r.Target, ErrUnknownRelationshipType, r.Type)
		}
		for _, id := range []string{r.Source, r.Target} {
			if _, ok := inBatch[id]; ok {
				continue
			}
			if _, ok := g.nodes[id]; ok {
				continue
			}
			return res, fmt.Errorf("relationship %s-%s: %w: %q", r.Source, r.Target, ErrDanglingReference, id)
		}
	}

	for _, e := range batch.Entities {
		if _, exists := g.nodes[e.ID]; exists {
			res.EntitiesUpdated++
		} else {
			res.EntitiesAdded++
			g.order = append(g.order, e.ID)
		}
		g.nodes[e.ID] = e
	}

	for _, r := range batch.Relationships {
		g.edges = append(g.edges, r)
		g.addNeighbor(r.Source, r.Target)
		if r.Source != r.Target {
			g.addNeighbor(r.Target, r.Source)
		}
		g.degree[r.Source]++
		g.degree[r.Target]++
		res.EdgesAdded++
	}

	return res, nil
}

func (g *EntityGraph) addNeighbor(from, to string) {
	for _, n := range g.adj[from] {
		if n == to {
			return
		}
	}
	g.adj[from] = append(g.adj[from], to)
}

// Entity returns the node with the given id, or ErrNotFound.
func (g *EntityGraph) Entity(id string) (common.Entity, error) {
	e, ok := g.nodes[id]
	if !ok {
		return common.Entity{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e, nil
}

// Degree returns the number of edges incident to id. Multi-edges between the
// same pair each count; a self-loop counts twice. Unknown ids have degree 0.
func (g *EntityGraph) Degree(id string) int {
	return g.degree[id]
}

// EntitiesByType returns all nodes carrying the given type tag, in node
// insertion order.
func (g *EntityGraph) EntitiesByType(tag string) []common.Entity {
	out := make([]common.Entity, 0)
	for _, id := range g.order {
		if e := g.nodes[id]; e.Type == tag {
			out = append(out, e)
		}
	}
	return out
}

// Entities returns all nodes in insertion order.
func (g *EntityGraph) Entities() []common.Entity {
	out := make([]common.Entity, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Relationships returns all edges in ingestion order.
func (g *EntityGraph) Relationships() []common.Relationship {
	out := make([]common.Relationship, len(g.edges))
	copy(out, g.edges)
	return out
}

// Snapshot returns the full graph as plain data for presentation or export.
func (g *EntityGraph) Snapshot() common.Network {
	return common.Network{
		Entities:      g.Entities(),
		Relationships: g.Relationships(),
	}
}

// Stats summarizes the current graph state.
func (g *EntityGraph) Stats() common.NetworkStats {
	byType := make(map[string]int)
	for _, id := range g.order {
		byType[g.nodes[id].Type]++
	}
	return common.NetworkStats{
		Entities:       len(g.order),
		Relationships:  len(g.edges),
		EntitiesByType: byType,
	}
}
