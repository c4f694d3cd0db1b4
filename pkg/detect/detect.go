// Package detect implements the suspicious-pattern scan over an entity
// graph: cycle-based collusion detection and degree-based contract
// concentration detection.
package detect

import (
	"math"

	"github.com/luppa-project/luppa/pkg/common"
	"github.com/luppa-project/luppa/pkg/netgraph"
	"github.com/luppa-project/luppa/pkg/vocabulary"
)

const (
	defaultMinCycleLength      = 3
	defaultDegreeStdMultiplier = 2.0
)

// Params configures a Detector. Zero values fall back to the defaults
// (cycle length 3, multiplier 2.0).
type Params struct {
	MinCycleLength      int
	DegreeStdMultiplier float64
}

// Detector is a pure read-only analysis over the current graph state. It
// never mutates the graph and makes no external calls.
type Detector struct {
	minCycleLength      int
	degreeStdMultiplier float64
}

// New creates a Detector with the given thresholds.
func New(params Params) *Detector {
	minLen := params.MinCycleLength
	if minLen <= 0 {
		minLen = defaultMinCycleLength
	}
	mult := params.DegreeStdMultiplier
	if mult <= 0 {
		mult = defaultDegreeStdMultiplier
	}
	return &Detector{
		minCycleLength:      minLen,
		degreeStdMultiplier: mult,
	}
}

// Scan runs both detection algorithms and concatenates their findings:
// all suspicious-cycle findings in cycle-discovery order, then all
// concentration findings in company insertion order. An empty or
// disconnected graph yields an empty list, never an error.
func (d *Detector) Scan(g *netgraph.EntityGraph) []common.Finding {
	findings := make([]common.Finding, 0)
	findings = append(findings, d.scanCycles(g)...)
	findings = append(findings, d.scanConcentration(g)...)
	return findings
}

// scanCycles flags every basis cycle of sufficient length whose member type
// set contains both a public official and a contractor company. Cycles not
// meeting the type condition are discarded, not scored.
func (d *Detector) scanCycles(g *netgraph.EntityGraph) []common.Finding {
	findings := make([]common.Finding, 0)
	for _, cycle := range g.CycleBasis() {
		if len(cycle) < d.minCycleLength {
			continue
		}
		hasOfficial := false
		hasCompany := false
		for _, id := range cycle {
			e, err := g.Entity(id)
			if err != nil {
				continue
			}
			switch e.Type {
			case vocabulary.TypeOfficial:
				hasOfficial = true
			case vocabulary.TypeContractorCompany:
				hasCompany = true
			}
		}
		if !hasOfficial || !hasCompany {
			continue
		}
		findings = append(findings, common.Finding{
			Kind:        common.FindingSuspiciousCycle,
			Nodes:       cycle,
			RiskLevel:   common.RiskHigh,
			Description: "closed cycle linking public officials and contractor companies",
		})
	}
	return findings
}

// scanConcentration flags contractor companies whose degree exceeds the
// population mean plus the configured multiple of the population standard
// deviation. Fewer than two companies yields nothing (no statistics on a
// single sample). Zero variance also yields nothing: uniform behavior
// across all companies is not anomalous, regardless of absolute degree.
func (d *Detector) scanConcentration(g *netgraph.EntityGraph) []common.Finding {
	companies := g.EntitiesByType(vocabulary.TypeContractorCompany)
	if len(companies) < 2 {
		return nil
	}

	degrees := make([]float64, len(companies))
	sum := 0.0
	for i, c := range companies {
		degrees[i] = float64(g.Degree(c.ID))
		sum += degrees[i]
	}
	mean := sum / float64(len(degrees))

	variance := 0.0
	for _, deg := range degrees {
		variance += (deg - mean) * (deg - mean)
	}
	variance /= float64(len(degrees))
	std := math.Sqrt(variance)
	if std == 0 {
		return nil
	}

	// The threshold can land exactly on an integer degree (e.g. degrees
	// 1,1,1,1,10 give mean+2*std == 10), so the boundary itself counts as
	// an outlier once the population has any spread.
	threshold := mean + d.degreeStdMultiplier*std

	findings := make([]common.Finding, 0)
	for i, c := range companies {
		if degrees[i] < threshold {
			continue
		}
		findings = append(findings, common.Finding{
			Kind:        common.FindingContractConcentration,
			Node:        c.ID,
			Degree:      int(degrees[i]),
			RiskLevel:   common.RiskHigh,
			Description: "anomalous concentration of contractual relationships",
		})
	}
	return findings
}
