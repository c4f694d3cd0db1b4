// Package store defines the persistence interface for cases and their
// analysis results.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/luppa-project/luppa/pkg/ai"
	"github.com/luppa-project/luppa/pkg/common"
)

// ErrNotFound is returned when a case or analysis does not exist.
var ErrNotFound = errors.New("not found")

// Case groups the documents and analyses of one investigation.
type Case struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Analysis is the persisted outcome of analyzing one document into a case
// graph: the graph state after ingestion, the findings of the pattern scan,
// and the model metrics of the extraction run.
type Analysis struct {
	ID           string              `json:"id"`
	CaseID       string              `json:"case_id"`
	DocumentKey  string              `json:"document_key"`
	DocumentType string              `json:"document_type"`
	Network      common.Network      `json:"network"`
	Findings     []common.Finding    `json:"findings"`
	Stats        common.NetworkStats `json:"stats"`
	Metrics      ai.ModelMetrics     `json:"metrics"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewCaseParams defines the input for creating a case.
type NewCaseParams struct {
	Name        string
	Description string
}

// ResultStore persists cases and analysis results.
type ResultStore interface {
	CreateCase(ctx context.Context, params NewCaseParams) (Case, error)
	GetCase(ctx context.Context, id string) (Case, error)
	ListCases(ctx context.Context) ([]Case, error)

	SaveAnalysis(ctx context.Context, analysis Analysis) (Analysis, error)
	LatestAnalysis(ctx context.Context, caseID string) (Analysis, error)
	ListAnalyses(ctx context.Context, caseID string) ([]Analysis, error)
}
