package vocabulary

import "testing"

func TestDefaultTables(t *testing.T) {
	v := Default()

	entityTags := []string{TypeOfficial, TypeContractorCompany, TypeBeneficiary, TypePoliticallyExposedPerson}
	for _, tag := range entityTags {
		if !v.HasEntityType(tag) {
			t.Errorf("HasEntityType(%s) = false, want true", tag)
		}
	}
	relationTags := []string{RelationFamilial, RelationCommercial, RelationPolitical, RelationBenefit}
	for _, tag := range relationTags {
		if !v.HasRelationshipType(tag) {
			t.Errorf("HasRelationshipType(%s) = false, want true", tag)
		}
	}

	if v.HasEntityType("shell_company") {
		t.Errorf("HasEntityType(shell_company) = true, want false")
	}
	if v.HasRelationshipType("friendship") {
		t.Errorf("HasRelationshipType(friendship) = true, want false")
	}
}

func TestDefaultRiskFactors(t *testing.T) {
	v := Default()

	tests := []struct {
		tag  string
		want float64
	}{
		{RelationFamilial, 0.8},
		{RelationCommercial, 0.6},
		{RelationPolitical, 0.7},
		{RelationBenefit, 0.5},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := v.RiskFactor(tt.tag); got != tt.want {
			t.Errorf("RiskFactor(%s) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestListingOrder(t *testing.T) {
	v := Default()

	ets := v.EntityTypes()
	wantEntities := []string{TypeOfficial, TypeContractorCompany, TypeBeneficiary, TypePoliticallyExposedPerson}
	if len(ets) != len(wantEntities) {
		t.Fatalf("EntityTypes() = %d entries, want %d", len(ets), len(wantEntities))
	}
	for i, tag := range wantEntities {
		if ets[i].Tag != tag {
			t.Errorf("EntityTypes()[%d].Tag = %s, want %s", i, ets[i].Tag, tag)
		}
	}

	rts := v.RelationshipTypes()
	wantRelations := []string{RelationFamilial, RelationCommercial, RelationPolitical, RelationBenefit}
	if len(rts) != len(wantRelations) {
		t.Fatalf("RelationshipTypes() = %d entries, want %d", len(rts), len(wantRelations))
	}
	for i, tag := range wantRelations {
		if rts[i].Tag != tag {
			t.Errorf("RelationshipTypes()[%d].Tag = %s, want %s", i, rts[i].Tag, tag)
		}
	}
}

func TestCustomVocabularyDuplicateTagLastWins(t *testing.T) {
	v := New(
		[]EntityType{
			{Tag: "ngo", Name: "NGO"},
			{Tag: "ngo", Name: "Non-Governmental Organization"},
		},
		[]RelationshipType{
			{Tag: "donation", RiskFactor: 0.3},
		},
	)

	ets := v.EntityTypes()
	if len(ets) != 1 {
		t.Fatalf("EntityTypes() = %d entries, want 1", len(ets))
	}
	if ets[0].Name != "Non-Governmental Organization" {
		t.Errorf("EntityTypes()[0].Name = %q, want the later entry", ets[0].Name)
	}

	if got := v.RiskFactor("donation"); got != 0.3 {
		t.Errorf("RiskFactor(donation) = %v, want 0.3", got)
	}
	if v.HasEntityType(TypeOfficial) {
		t.Errorf("custom vocabulary unexpectedly knows the built-in tags")
	}
}
