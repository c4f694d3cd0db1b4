package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luppa-project/luppa/internal/util"
	"github.com/luppa-project/luppa/pkg/ai"
	"github.com/luppa-project/luppa/pkg/detect"
	"github.com/luppa-project/luppa/pkg/extract"
	"github.com/luppa-project/luppa/pkg/leaselock"
	"github.com/luppa-project/luppa/pkg/loader"
	"github.com/luppa-project/luppa/pkg/loader/pdf"
	s3loader "github.com/luppa-project/luppa/pkg/loader/s3"
	"github.com/luppa-project/luppa/pkg/loader/web"
	"github.com/luppa-project/luppa/pkg/logger"
	"github.com/luppa-project/luppa/pkg/netgraph"
	"github.com/luppa-project/luppa/pkg/store"
	pgstore "github.com/luppa-project/luppa/pkg/store/pgx"
	"github.com/luppa-project/luppa/pkg/vocabulary"
)

// CaseGraphs keeps one entity graph per case for the lifetime of the worker.
// The worker consumes with a prefetch of one, so a graph is only ever touched
// by a single message at a time.
type CaseGraphs struct {
	mu     sync.Mutex
	graphs map[string]*netgraph.EntityGraph
	vocab  *vocabulary.Vocabulary
}

func NewCaseGraphs(vocab *vocabulary.Vocabulary) *CaseGraphs {
	return &CaseGraphs{
		graphs: make(map[string]*netgraph.EntityGraph),
		vocab:  vocab,
	}
}

func (c *CaseGraphs) Get(caseID string) *netgraph.EntityGraph {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.graphs[caseID]
	if !ok {
		g = netgraph.New(c.vocab)
		c.graphs[caseID] = g
	}
	return g
}

// loaderForDocument picks the loader for a document key: URLs go through the
// web loader, PDF keys wrap the base loader with text extraction, anything
// else is read as-is.
func loaderForDocument(key string, base loader.DocumentLoader) loader.DocumentLoader {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return web.NewWebDocumentLoader()
	}
	if strings.EqualFold(filepath.Ext(key), ".pdf") {
		return pdf.NewPDFDocumentLoader(base)
	}
	return base
}

// ProcessAnalyzeMessage handles one analyze_queue message: load the document
// from S3, extract entities and relationships, ingest them into the case
// graph, scan for suspicious patterns and persist the result.
//
// Validation failures of the extracted batch and messages for deleted cases
// are logged and acknowledged, not retried.
func ProcessAnalyzeMessage(
	ctx context.Context,
	s3Client *awss3.Client,
	aiClient ai.ExtractionAIClient,
	conn *pgxpool.Pool,
	graphs *CaseGraphs,
	msg string,
) error {
	data := new(AnalyzeDocumentMsg)
	if err := json.Unmarshal([]byte(msg), &data); err != nil {
		return err
	}

	resultStore := pgstore.NewResultDBStorageWithConnection(conn)

	_, err := resultStore.GetCase(ctx, data.CaseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("[Queue] Case no longer exists, dropping message", "case_id", data.CaseID, "correlation_id", data.CorrelationID)
			return nil
		}
		return fmt.Errorf("failed to load case: %w", err)
	}

	s3Bucket := util.GetEnvString("AWS_BUCKET", "luppa")
	s3L := s3loader.NewS3DocumentLoaderWithClient(s3Bucket, s3Client)

	doc := loader.NewDocument(loader.DocumentType(data.DocumentType), loader.NewDocumentParams{
		ID:        data.CorrelationID,
		Path:      data.DocumentKey,
		Name:      data.DocumentName,
		MaxTokens: util.GetEnvInt("EXTRACT_MAX_UNIT_TOKENS", 500),
		Loader:    loaderForDocument(data.DocumentKey, s3L),
	})

	extractor := extract.NewExtractor(extract.NewExtractorParams{
		Vocabulary:       graphs.vocab,
		Client:           aiClient,
		Encoder:          util.GetEnvString("AI_TOKEN_ENCODER", "cl100k_base"),
		ParallelRequests: util.GetEnvInt("AI_PARALLEL_REQ", 4),
		MaxRetries:       util.GetEnvInt("AI_MAX_RETRIES", 3),
	})

	batch, err := extractor.ExtractBatch(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to extract document: %w", err)
	}

	// Take a lease on the case so that graph mutation and result persistence
	// are serialized across worker replicas.
	locks := leaselock.New(conn)
	lockErr := locks.WithLease(ctx, "case:"+data.CaseID, leaselock.Options{Wait: true}, func(ctx context.Context) error {
		g := graphs.Get(data.CaseID)
		result, err := g.Ingest(batch)
		if err != nil {
			if netgraph.IsValidationError(err) {
				logger.Warn("[Queue] Extracted batch failed graph validation, dropping message", "case_id", data.CaseID, "document_key", data.DocumentKey, "err", err)
				return nil
			}
			return fmt.Errorf("failed to ingest batch: %w", err)
		}

		logger.Info("[Queue] Ingested document into case graph",
			"case_id", data.CaseID,
			"document_key", data.DocumentKey,
			"entities_added", result.EntitiesAdded,
			"entities_updated", result.EntitiesUpdated,
			"edges_added", result.EdgesAdded,
		)

		detector := detect.New(detect.Params{
			MinCycleLength:      util.GetEnvInt("RISK_MIN_CYCLE_LENGTH", 3),
			DegreeStdMultiplier: util.GetEnvFloat("RISK_DEGREE_STD_MULTIPLIER", 2.0),
		})
		findings := detector.Scan(g)

		analysis := store.Analysis{
			CaseID:       data.CaseID,
			DocumentKey:  data.DocumentKey,
			DocumentType: data.DocumentType,
			Network:      g.Snapshot(),
			Findings:     findings,
			Stats:        g.Stats(),
			Metrics:      aiClient.GetMetrics(),
		}
		if _, err := resultStore.SaveAnalysis(ctx, analysis); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}

		logger.Info("[Queue] Analysis complete", "case_id", data.CaseID, "document_key", data.DocumentKey, "findings", len(findings))
		return nil
	})

	return lockErr
}
