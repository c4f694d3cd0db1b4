// Package pgx implements the result store on PostgreSQL. Graph snapshots,
// findings and stats are stored as jsonb payloads per analysis row.
package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/luppa-project/luppa/pkg/store"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// ResultDBStorage implements store.ResultStore using PostgreSQL.
type ResultDBStorage struct {
	conn pgxIConn
}

// NewResultDBStorageWithConnection creates a new ResultDBStorage using an
// existing database connection or pool.
func NewResultDBStorageWithConnection(conn pgxIConn) *ResultDBStorage {
	return &ResultDBStorage{conn: conn}
}

// CreateCase inserts a new case with a generated ID.
func (s *ResultDBStorage) CreateCase(ctx context.Context, params store.NewCaseParams) (store.Case, error) {
	id, err := gonanoid.New()
	if err != nil {
		return store.Case{}, fmt.Errorf("failed to generate case ID: %w", err)
	}

	row := s.conn.QueryRow(ctx, `
		INSERT INTO cases (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, created_at
	`, id, params.Name, params.Description)

	return scanCase(row)
}

// GetCase returns the case with the given ID, or store.ErrNotFound.
func (s *ResultDBStorage) GetCase(ctx context.Context, id string) (store.Case, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT id, name, description, created_at
		FROM cases
		WHERE id = $1
	`, id)

	c, err := scanCase(row)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return store.Case{}, store.ErrNotFound
	}
	return c, err
}

// ListCases returns all cases, newest first.
func (s *ResultDBStorage) ListCases(ctx context.Context) ([]store.Case, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, name, description, created_at
		FROM cases
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cases := make([]store.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// SaveAnalysis inserts an analysis row with a generated ID and returns the
// stored record.
func (s *ResultDBStorage) SaveAnalysis(ctx context.Context, analysis store.Analysis) (store.Analysis, error) {
	id, err := gonanoid.New()
	if err != nil {
		return store.Analysis{}, fmt.Errorf("failed to generate analysis ID: %w", err)
	}

	network, err := json.Marshal(analysis.Network)
	if err != nil {
		return store.Analysis{}, fmt.Errorf("failed to marshal network: %w", err)
	}
	findings, err := json.Marshal(analysis.Findings)
	if err != nil {
		return store.Analysis{}, fmt.Errorf("failed to marshal findings: %w", err)
	}
	stats, err := json.Marshal(analysis.Stats)
	if err != nil {
		return store.Analysis{}, fmt.Errorf("failed to marshal stats: %w", err)
	}
	metrics, err := json.Marshal(analysis.Metrics)
	if err != nil {
		return store.Analysis{}, fmt.Errorf("failed to marshal metrics: %w", err)
	}

	row := s.conn.QueryRow(ctx, `
		INSERT INTO analyses (id, case_id, document_key, document_type, network, findings, stats, metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, case_id, document_key, document_type, network, findings, stats, metrics, created_at
	`, id, analysis.CaseID, analysis.DocumentKey, analysis.DocumentType,
		network, findings, stats, metrics)

	return scanAnalysis(row)
}

// LatestAnalysis returns the most recent analysis for a case, or
// store.ErrNotFound when the case has none.
func (s *ResultDBStorage) LatestAnalysis(ctx context.Context, caseID string) (store.Analysis, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT id, case_id, document_key, document_type, network, findings, stats, metrics, created_at
		FROM analyses
		WHERE case_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, caseID)

	a, err := scanAnalysis(row)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return store.Analysis{}, store.ErrNotFound
	}
	return a, err
}

// ListAnalyses returns all analyses for a case, newest first.
func (s *ResultDBStorage) ListAnalyses(ctx context.Context, caseID string) ([]store.Analysis, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, case_id, document_key, document_type, network, findings, stats, metrics, created_at
		FROM analyses
		WHERE case_id = $1
		ORDER BY created_at DESC
	`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := make([]store.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

func scanCase(row pgxv5.Row) (store.Case, error) {
	var c store.Case
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		return store.Case{}, err
	}
	return c, nil
}

func scanAnalysis(row pgxv5.Row) (store.Analysis, error) {
	var a store.Analysis
	var network, findings, stats, metrics []byte

	err := row.Scan(&a.ID, &a.CaseID, &a.DocumentKey, &a.DocumentType,
		&network, &findings, &stats, &metrics, &a.CreatedAt)
	if err != nil {
		return store.Analysis{}, err
	}

	if err := json.Unmarshal(network, &a.Network); err != nil {
		return store.Analysis{}, fmt.Errorf("failed to unmarshal network: %w", err)
	}
	if err := json.Unmarshal(findings, &a.Findings); err != nil {
		return store.Analysis{}, fmt.Errorf("failed to unmarshal findings: %w", err)
	}
	if err := json.Unmarshal(stats, &a.Stats); err != nil {
		return store.Analysis{}, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	if err := json.Unmarshal(metrics, &a.Metrics); err != nil {
		return store.Analysis{}, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}

	return a, nil
}
