package common

// AttributeMap is an open bag of domain-specific facts attached to an entity
// or relationship (e.g. position, tax id, contract amount). Keys are
// extraction-dependent; there is no compile-time schema.
type AttributeMap map[string]any

// Entity represents a node in the relationship network: a public official,
// a contractor company, a program beneficiary, or a politically exposed
// person. The ID is the stable key across ingestion batches.
type Entity struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	Attributes AttributeMap `json:"attributes,omitempty"`
}

// Relationship represents an undirected edge between two entities, typed as
// familial, commercial, political or benefit. Source and Target carry no
// inherent ordering. Multiple relationship facts between the same pair stay
// distinct edges; they are never merged.
type Relationship struct {
	Source     string       `json:"source"`
	Target     string       `json:"target"`
	Type       string       `json:"type"`
	Attributes AttributeMap `json:"attributes,omitempty"`
}

// Batch is one ingestion unit: the entity and relationship facts extracted
// from a single document. A batch is applied to the graph atomically.
type Batch struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// FindingKind identifies a suspicious-pattern category.
type FindingKind string

const (
	// FindingSuspiciousCycle marks a closed cycle linking public officials
	// to contractor companies.
	FindingSuspiciousCycle FindingKind = "suspicious_cycle"
	// FindingContractConcentration marks a contractor company with an
	// anomalous concentration of contractual relationships.
	FindingContractConcentration FindingKind = "contract_concentration"
)

// RiskLevel grades a finding.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Finding is one suspicious pattern surfaced by a scan. Nodes is set for
// cycle findings; Node and Degree are set for concentration findings.
type Finding struct {
	Kind        FindingKind `json:"kind"`
	Nodes       []string    `json:"nodes,omitempty"`
	Node        string      `json:"node,omitempty"`
	Degree      int         `json:"degree,omitempty"`
	RiskLevel   RiskLevel   `json:"risk_level"`
	Description string      `json:"description"`
}

// Network is a read-only snapshot of the current graph state, exposed as
// plain data for rendering or serialization. The engine performs no layout
// or formatting on it.
type Network struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// NetworkStats summarizes the current graph: total counts plus a per-type
// entity breakdown.
type NetworkStats struct {
	Entities       int            `json:"entities"`
	Relationships  int            `json:"relationships"`
	EntitiesByType map[string]int `json:"entities_by_type"`
}
