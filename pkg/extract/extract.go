// Package extract turns disclosure documents into ingestable entity and
// relationship batches using a schema-constrained AI extraction pass per
// text unit.
package extract

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/luppa-project/luppa/internal/util"
	"github.com/luppa-project/luppa/pkg/ai"
	"github.com/luppa-project/luppa/pkg/common"
	"github.com/luppa-project/luppa/pkg/loader"
	"github.com/luppa-project/luppa/pkg/logger"
	"github.com/luppa-project/luppa/pkg/vocabulary"
)

type extractEntity struct {
	ID          string `json:"id" jsonschema_description:"Stable lowercase identifier derived from the entity name, identical for every mention of the same real-world entity"`
	Name        string `json:"name" jsonschema_description:"Full name of the entity as written in the text"`
	Type        string `json:"type" jsonschema_description:"One of the provided entity types"`
	Description string `json:"description" jsonschema_description:"Everything the text explicitly states about the entity"`
}

type extractRelationship struct {
	Source      string `json:"source" jsonschema_description:"ID of the source entity, as listed in the entities"`
	Target      string `json:"target" jsonschema_description:"ID of the target entity, as listed in the entities"`
	Type        string `json:"type" jsonschema_description:"One of the provided relationship types"`
	Description string `json:"description" jsonschema_description:"What the text states about this tie, including amounts and dates"`
}

type extractResponse struct {
	Entities      []extractEntity       `json:"entities" jsonschema_description:"Entities identified in the text unit"`
	Relationships []extractRelationship `json:"relationships" jsonschema_description:"Relationships identified in the text unit"`
}

// Extractor runs the document-to-batch extraction pipeline: load text, split
// it into token-bounded units, extract each unit through the AI client, and
// merge the per-unit results into a single validated batch.
type Extractor struct {
	vocab            *vocabulary.Vocabulary
	client           ai.ExtractionAIClient
	encoder          string
	parallelRequests int
	maxRetries       int
}

// NewExtractorParams defines the configuration for creating an Extractor.
//
// Encoder is the tiktoken encoding used for unit budgeting.
// ParallelRequests bounds concurrent AI calls; MaxRetries bounds retry
// attempts per unit.
type NewExtractorParams struct {
	Vocabulary       *vocabulary.Vocabulary
	Client           ai.ExtractionAIClient
	Encoder          string
	ParallelRequests int
	MaxRetries       int
}

// NewExtractor creates an Extractor. Zero ParallelRequests and MaxRetries
// fall back to 4 and 3.
func NewExtractor(params NewExtractorParams) *Extractor {
	parallel := params.ParallelRequests
	if parallel <= 0 {
		parallel = 4
	}
	retries := params.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	encoder := params.Encoder
	if encoder == "" {
		encoder = "cl100k_base"
	}
	return &Extractor{
		vocab:            params.Vocabulary,
		client:           params.Client,
		encoder:          encoder,
		parallelRequests: parallel,
		maxRetries:       retries,
	}
}

// ExtractBatch extracts all entities and relationships from the document and
// returns them as one batch, sanitized against the vocabulary: entities with
// unrecognized types are dropped, as are relationships with unrecognized
// types or endpoints outside the extracted entity set. Recognized
// relationships carry a risk_factor attribute from the vocabulary.
func (e *Extractor) ExtractBatch(ctx context.Context, doc loader.Document) (common.Batch, error) {
	units, err := unitsFromDocument(ctx, doc, e.encoder)
	if err != nil {
		return common.Batch{}, fmt.Errorf("failed to split document into units: %w", err)
	}
	if len(units) == 0 {
		return common.Batch{}, nil
	}

	responses := make([]extractResponse, len(units))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelRequests)
	for i, unit := range units {
		g.Go(func() error {
			res, err := util.RetryWithContext(gCtx, e.maxRetries, func(ctx context.Context) (extractResponse, error) {
				return e.extractFromUnit(ctx, unit, doc)
			})
			if err != nil {
				return fmt.Errorf("failed to extract entities and relationships from unit: %w", err)
			}
			responses[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return common.Batch{}, err
	}

	return e.mergeResponses(doc, responses), nil
}

func (e *Extractor) extractFromUnit(
	ctx context.Context,
	unit textUnit,
	doc loader.Document,
) (extractResponse, error) {
	entityTags := make([]string, 0)
	for _, et := range e.vocab.EntityTypes() {
		entityTags = append(entityTags, et.Tag)
	}
	relationTags := make([]string, 0)
	for _, rt := range e.vocab.RelationshipTypes() {
		relationTags = append(relationTags, rt.Tag)
	}

	prompt := fmt.Sprintf(
		ai.ExtractPrompt,
		strings.Join(entityTags, ","),
		strings.Join(relationTags, ","),
		doc.Name,
		unit.text,
	)

	var res extractResponse
	err := e.client.GenerateCompletionWithFormat(
		ctx,
		"extract_entities_and_relationships",
		"Extract entities and relationships from a disclosure document.",
		prompt,
		&res,
	)
	if err != nil {
		return extractResponse{}, err
	}
	return res, nil
}

// mergeResponses folds the per-unit responses into a single batch in unit
// order, so repeated extraction of the same document yields the same batch.
// Later mentions of an entity override earlier ones but descriptions
// accumulate.
func (e *Extractor) mergeResponses(doc loader.Document, responses []extractResponse) common.Batch {
	entities := make(map[string]common.Entity)
	order := make([]string, 0)
	relationships := make([]common.Relationship, 0)

	for _, res := range responses {
		for _, ent := range res.Entities {
			id := strings.TrimSpace(ent.ID)
			if id == "" {
				continue
			}
			if !e.vocab.HasEntityType(ent.Type) {
				logger.Warn("dropping entity with unrecognized type",
					"entity", id, "type", ent.Type, "document", doc.ID)
				continue
			}

			if existing, ok := entities[id]; ok {
				existing.Name = ent.Name
				existing.Type = ent.Type
				existing.Attributes["description"] = joinDescriptions(
					existing.Attributes["description"], ent.Description)
				entities[id] = existing
				continue
			}

			order = append(order, id)
			entities[id] = common.Entity{
				ID:   id,
				Name: ent.Name,
				Type: ent.Type,
				Attributes: common.AttributeMap{
					"description": strings.TrimSpace(ent.Description),
					"document_id": doc.ID,
				},
			}
		}

		for _, rel := range res.Relationships {
			source := strings.TrimSpace(rel.Source)
			target := strings.TrimSpace(rel.Target)
			if _, ok := entities[source]; !ok {
				logger.Warn("dropping relationship with unknown source",
					"source", source, "target", target, "document", doc.ID)
				continue
			}
			if _, ok := entities[target]; !ok {
				logger.Warn("dropping relationship with unknown target",
					"source", source, "target", target, "document", doc.ID)
				continue
			}
			if !e.vocab.HasRelationshipType(rel.Type) {
				logger.Warn("dropping relationship with unrecognized type",
					"source", source, "target", target, "type", rel.Type, "document", doc.ID)
				continue
			}

			relationships = append(relationships, common.Relationship{
				Source: source,
				Target: target,
				Type:   rel.Type,
				Attributes: common.AttributeMap{
					"description": strings.TrimSpace(rel.Description),
					"risk_factor": e.vocab.RiskFactor(rel.Type),
					"document_id": doc.ID,
				},
			})
		}
	}

	batch := common.Batch{
		Entities:      make([]common.Entity, 0, len(order)),
		Relationships: relationships,
	}
	for _, id := range order {
		batch.Entities = append(batch.Entities, entities[id])
	}
	return batch
}

func joinDescriptions(existing any, addition string) string {
	prev, _ := existing.(string)
	addition = strings.TrimSpace(addition)
	if prev == "" {
		return addition
	}
	if addition == "" || strings.Contains(prev, addition) {
		return prev
	}
	return prev + "\n" + addition
}
