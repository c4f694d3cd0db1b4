package netgraph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/luppa-project/luppa/pkg/common"
	"github.com/luppa-project/luppa/pkg/vocabulary"
)

func entity(id, typ string) common.Entity {
	return common.Entity{ID: id, Name: id, Type: typ}
}

func edge(source, target, typ string) common.Relationship {
	return common.Relationship{Source: source, Target: target, Type: typ}
}

func TestIngestResultCounts(t *testing.T) {
	g := New(vocabulary.Default())

	res, err := g.Ingest(common.Batch{
		Entities: []common.Entity{
			entity("a", vocabulary.TypeOfficial),
			entity("b", vocabulary.TypeContractorCompany),
		},
		Relationships: []common.Relationship{
			edge("a", "b", vocabulary.RelationCommercial),
		},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	want := IngestResult{EntitiesAdded: 2, EntitiesUpdated: 0, EdgesAdded: 1}
	if res != want {
		t.Errorf("Ingest() = %+v, want %+v", res, want)
	}
}

func TestIngestValidation(t *testing.T) {
	tests := []struct {
		name    string
		batch   common.Batch
		wantErr error
	}{
		{
			name: "unknown entity type",
			batch: common.Batch{
				Entities: []common.Entity{entity("a", "shell_company")},
			},
			wantErr: ErrUnknownEntityType,
		},
		{
			name: "unknown relationship type",
			batch: common.Batch{
				Entities: []common.Entity{
					entity("a", vocabulary.TypeOfficial),
					entity("b", vocabulary.TypeOfficial),
				},
				Relationships: []common.Relationship{edge("a", "b", "friendship")},
			},
			wantErr: ErrUnknownRelationshipType,
		},
		{
			name: "dangling source",
			batch: common.Batch{
				Entities:      []common.Entity{entity("b", vocabulary.TypeOfficial)},
				Relationships: []common.Relationship{edge("ghost", "b", vocabulary.RelationPolitical)},
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "dangling target",
			batch: common.Batch{
				Entities:      []common.Entity{entity("a", vocabulary.TypeOfficial)},
				Relationships: []common.Relationship{edge("a", "ghost", vocabulary.RelationPolitical)},
			},
			wantErr: ErrDanglingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(vocabulary.Default())
			if _, err := g.Ingest(common.Batch{
				Entities: []common.Entity{entity("seed", vocabulary.TypeBeneficiary)},
			}); err != nil {
				t.Fatalf("seed Ingest() error = %v", err)
			}

			before := g.Snapshot()
			degBefore := g.Degree("seed")

			_, err := g.Ingest(tt.batch)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Ingest() error = %v, want %v", err, tt.wantErr)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false, want true", err)
			}

			after := g.Snapshot()
			if !reflect.DeepEqual(before, after) {
				t.Errorf("graph changed on rejected batch:\nbefore %+v\nafter  %+v", before, after)
			}
			if g.Degree("seed") != degBefore {
				t.Errorf("Degree(seed) changed on rejected batch")
			}
		})
	}
}

func TestIngestUpsertReplaces(t *testing.T) {
	g := New(vocabulary.Default())

	first := common.Entity{
		ID: "o1", Name: "J. Perez", Type: vocabulary.TypeOfficial,
		Attributes: common.AttributeMap{"position": "director"},
	}
	if _, err := g.Ingest(common.Batch{Entities: []common.Entity{first}}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	second := common.Entity{
		ID: "o1", Name: "Juan Perez", Type: vocabulary.TypePoliticallyExposedPerson,
		Attributes: common.AttributeMap{"role": "candidate"},
	}
	res, err := g.Ingest(common.Batch{Entities: []common.Entity{second}})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.EntitiesAdded != 0 || res.EntitiesUpdated != 1 {
		t.Errorf("Ingest() = %+v, want 0 added / 1 updated", res)
	}

	got, err := g.Entity("o1")
	if err != nil {
		t.Fatalf("Entity() error = %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("Entity(o1) = %+v, want replaced entity %+v", got, second)
	}
	if _, ok := got.Attributes["position"]; ok {
		t.Errorf("old attributes survived upsert, want last-write-wins replace")
	}

	if n := len(g.EntitiesByType(vocabulary.TypeOfficial)); n != 0 {
		t.Errorf("EntitiesByType(official) = %d entities, want 0 after type change", n)
	}
	if n := len(g.EntitiesByType(vocabulary.TypePoliticallyExposedPerson)); n != 1 {
		t.Errorf("EntitiesByType(pep) = %d entities, want 1", n)
	}
	if n := len(g.Entities()); n != 1 {
		t.Errorf("Entities() = %d, want 1 (no duplicate node)", n)
	}
}

func TestIngestInBatchDuplicateLastWins(t *testing.T) {
	g := New(vocabulary.Default())

	res, err := g.Ingest(common.Batch{
		Entities: []common.Entity{
			{ID: "c1", Name: "Acme", Type: vocabulary.TypeContractorCompany},
			{ID: "c1", Name: "Acme S.A.", Type: vocabulary.TypeContractorCompany},
		},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.EntitiesAdded != 1 || res.EntitiesUpdated != 1 {
		t.Errorf("Ingest() = %+v, want 1 added / 1 updated", res)
	}

	got, err := g.Entity("c1")
	if err != nil {
		t.Fatalf("Entity() error = %v", err)
	}
	if got.Name != "Acme S.A." {
		t.Errorf("Entity(c1).Name = %q, want later batch entry %q", got.Name, "Acme S.A.")
	}
}

func TestIngestEdgeToSameBatchEntity(t *testing.T) {
	g := New(vocabulary.Default())
	if _, err := g.Ingest(common.Batch{
		Entities: []common.Entity{entity("a", vocabulary.TypeOfficial)},
	}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	// b only exists inside this second batch; the edge must still resolve.
	res, err := g.Ingest(common.Batch{
		Entities:      []common.Entity{entity("b", vocabulary.TypeContractorCompany)},
		Relationships: []common.Relationship{edge("a", "b", vocabulary.RelationCommercial)},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if res.EdgesAdded != 1 {
		t.Errorf("EdgesAdded = %d, want 1", res.EdgesAdded)
	}
}

func TestDegree(t *testing.T) {
	g := New(vocabulary.Default())
	_, err := g.Ingest(common.Batch{
		Entities: []common.Entity{
			entity("a", vocabulary.TypeOfficial),
			entity("b", vocabulary.TypeContractorCompany),
			entity("c", vocabulary.TypeBeneficiary),
		},
		Relationships: []common.Relationship{
			edge("a", "b", vocabulary.RelationCommercial),
			edge("a", "b", vocabulary.RelationFamilial), // distinct fact, counts again
			edge("b", "c", vocabulary.RelationBenefit),
			edge("c", "c", vocabulary.RelationFamilial), // self-loop
		},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	tests := []struct {
		id   string
		want int
	}{
		{"a", 2},
		{"b", 3},
		{"c", 3}, // one edge to b plus self-loop counting twice
		{"missing", 0},
	}
	for _, tt := range tests {
		if got := g.Degree(tt.id); got != tt.want {
			t.Errorf("Degree(%s) = %d, want %d", tt.id, got, tt.want)
		}
	}

	if got := len(g.Relationships()); got != 4 {
		t.Errorf("Relationships() = %d edges, want 4 (multi-edges kept)", got)
	}
}

func TestEntityNotFound(t *testing.T) {
	g := New(vocabulary.Default())
	if _, err := g.Entity("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Entity() error = %v, want ErrNotFound", err)
	}
}

func TestEntitiesByTypeInsertionOrder(t *testing.T) {
	g := New(vocabulary.Default())
	_, err := g.Ingest(common.Batch{
		Entities: []common.Entity{
			entity("c2", vocabulary.TypeContractorCompany),
			entity("o1", vocabulary.TypeOfficial),
			entity("c1", vocabulary.TypeContractorCompany),
			entity("c3", vocabulary.TypeContractorCompany),
		},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	got := g.EntitiesByType(vocabulary.TypeContractorCompany)
	wantIDs := []string{"c2", "c1", "c3"}
	if len(got) != len(wantIDs) {
		t.Fatalf("EntitiesByType() = %d entities, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("EntitiesByType()[%d].ID = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestStats(t *testing.T) {
	g := New(vocabulary.Default())
	_, err := g.Ingest(common.Batch{
		Entities: []common.Entity{
			entity("o1", vocabulary.TypeOfficial),
			entity("o2", vocabulary.TypeOfficial),
			entity("c1", vocabulary.TypeContractorCompany),
		},
		Relationships: []common.Relationship{
			edge("o1", "c1", vocabulary.RelationCommercial),
		},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	got := g.Stats()
	want := common.NetworkStats{
		Entities:      3,
		Relationships: 1,
		EntitiesByType: map[string]int{
			vocabulary.TypeOfficial:          2,
			vocabulary.TypeContractorCompany: 1,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := New(vocabulary.Default())
	if _, err := g.Ingest(common.Batch{
		Entities: []common.Entity{
			entity("a", vocabulary.TypeOfficial),
			entity("b", vocabulary.TypeOfficial),
		},
		Relationships: []common.Relationship{
			edge("a", "b", vocabulary.RelationPolitical),
		},
	}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	snap := g.Snapshot()
	snap.Relationships[0].Type = vocabulary.RelationFamilial

	if g.Relationships()[0].Type != vocabulary.RelationPolitical {
		t.Errorf("mutating a snapshot leaked into the graph")
	}
}
