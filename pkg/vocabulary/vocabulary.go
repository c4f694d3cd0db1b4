// Package vocabulary holds the recognized entity and relationship type
// tables, including per-type display metadata and risk factors. The tables
// are injected into the ingestion validator and the extraction pipeline at
// construction time; nothing in the engine hard-codes them.
package vocabulary

// Entity type tags recognized by the default vocabulary.
const (
	TypeOfficial                 = "official"
	TypeContractorCompany        = "contractor_company"
	TypeBeneficiary              = "beneficiary"
	TypePoliticallyExposedPerson = "politically_exposed_person"
)

// Relationship type tags recognized by the default vocabulary.
const (
	RelationFamilial   = "familial"
	RelationCommercial = "commercial"
	RelationPolitical  = "political"
	RelationBenefit    = "benefit"
)

// EntityType describes one recognized entity type: its tag plus the display
// metadata used by presentation collaborators.
type EntityType struct {
	Tag   string `json:"tag"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// RelationshipType describes one recognized relationship type. RiskFactor is
// the derived score stamped onto extracted relationships of this type.
type RelationshipType struct {
	Tag        string  `json:"tag"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	RiskFactor float64 `json:"risk_factor"`
}

// Vocabulary is the closed set of entity and relationship types a graph
// accepts. It is extensible by constructing a custom instance, but a type
// must be known at ingestion time.
type Vocabulary struct {
	entityTypes   map[string]EntityType
	entityOrder   []string
	relationTypes map[string]RelationshipType
	relationOrder []string
}

// New creates a vocabulary from explicit type tables. Order of the slices is
// preserved for listing.
func New(entityTypes []EntityType, relationshipTypes []RelationshipType) *Vocabulary {
	v := &Vocabulary{
		entityTypes:   make(map[string]EntityType, len(entityTypes)),
		relationTypes: make(map[string]RelationshipType, len(relationshipTypes)),
	}
	for _, et := range entityTypes {
		if _, ok := v.entityTypes[et.Tag]; !ok {
			v.entityOrder = append(v.entityOrder, et.Tag)
		}
		v.entityTypes[et.Tag] = et
	}
	for _, rt := range relationshipTypes {
		if _, ok := v.relationTypes[rt.Tag]; !ok {
			v.relationOrder = append(v.relationOrder, rt.Tag)
		}
		v.relationTypes[rt.Tag] = rt
	}
	return v
}

// Default returns the built-in vocabulary for disclosure-document analysis.
func Default() *Vocabulary {
	return New(
		[]EntityType{
			{Tag: TypeOfficial, Name: "Public Official", Color: "#FF6B6B", Icon: "user"},
			{Tag: TypeContractorCompany, Name: "Contractor Company", Color: "#4ECDC4", Icon: "building"},
			{Tag: TypeBeneficiary, Name: "Beneficiary", Color: "#45B7D1", Icon: "user-check"},
			{Tag: TypePoliticallyExposedPerson, Name: "Politically Exposed Person", Color: "#96CEB4", Icon: "user-star"},
		},
		[]RelationshipType{
			{Tag: RelationFamilial, Name: "Familial Relationship", Color: "#FF0000", RiskFactor: 0.8},
			{Tag: RelationCommercial, Name: "Commercial Relationship", Color: "#00FF00", RiskFactor: 0.6},
			{Tag: RelationPolitical, Name: "Political Relationship", Color: "#0000FF", RiskFactor: 0.7},
			{Tag: RelationBenefit, Name: "Benefit Received", Color: "#FFFF00", RiskFactor: 0.5},
		},
	)
}

// HasEntityType reports whether tag is a recognized entity type.
func (v *Vocabulary) HasEntityType(tag string) bool {
	_, ok := v.entityTypes[tag]
	return ok
}

// HasRelationshipType reports whether tag is a recognized relationship type.
func (v *Vocabulary) HasRelationshipType(tag string) bool {
	_, ok := v.relationTypes[tag]
	return ok
}

// EntityType returns the full type record for tag.
func (v *Vocabulary) EntityType(tag string) (EntityType, bool) {
	et, ok := v.entityTypes[tag]
	return et, ok
}

// RelationshipType returns the full type record for tag.
func (v *Vocabulary) RelationshipType(tag string) (RelationshipType, bool) {
	rt, ok := v.relationTypes[tag]
	return rt, ok
}

// RiskFactor returns the configured risk factor for a relationship type,
// or 0 for an unknown tag.
func (v *Vocabulary) RiskFactor(tag string) float64 {
	return v.relationTypes[tag].RiskFactor
}

// EntityTypes lists the recognized entity types in table order.
func (v *Vocabulary) EntityTypes() []EntityType {
	out := make([]EntityType, 0, len(v.entityOrder))
	for _, tag := range v.entityOrder {
		out = append(out, v.entityTypes[tag])
	}
	return out
}

// RelationshipTypes lists the recognized relationship types in table order.
func (v *Vocabulary) RelationshipTypes() []RelationshipType {
	out := make([]RelationshipType, 0, len(v.relationOrder))
	for _, tag := range v.relationOrder {
		out = append(out, v.relationTypes[tag])
	}
	return out
}
