package loader

import (
	"context"
)

type DocumentType string

const (
	DocumentTypeDeclaration DocumentType = "declaration"
	DocumentTypeProcurement DocumentType = "procurement"
	DocumentTypeRegistry    DocumentType = "registry"
	DocumentTypePress       DocumentType = "press"
)

// Document represents one source document that can be analyzed into entities
// and relationships. It carries metadata such as the storage path and the
// maximum tokens per text unit.
//
// The actual document content is retrieved via the associated DocumentLoader.
type Document struct {
	ID        string
	Path      string
	Type      DocumentType
	Name      string
	MaxTokens int
	Loader    DocumentLoader
}

// NewDocumentParams defines the input parameters for creating a new Document.
type NewDocumentParams struct {
	ID        string
	Path      string
	Name      string
	MaxTokens int
	Loader    DocumentLoader
}

// NewDocument creates a Document of the given type using the provided
// parameters. An empty Name falls back to the storage path.
func NewDocument(docType DocumentType, params NewDocumentParams) Document {
	name := params.Name
	if name == "" {
		name = params.Path
	}
	return Document{
		ID:        params.ID,
		Path:      params.Path,
		Type:      docType,
		Name:      name,
		MaxTokens: params.MaxTokens,
		Loader:    params.Loader,
	}
}

// GetText retrieves the raw text content of the document using its Loader.
//
// Example:
//
//	text, err := doc.GetText(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(string(text))
func (d *Document) GetText(ctx context.Context) ([]byte, error) {
	return d.Loader.GetDocumentText(ctx, *d)
}

// DocumentLoader defines the interface for loading the contents of a
// Document. Implementations may load from disk, object storage, or other
// sources.
type DocumentLoader interface {
	GetDocumentText(ctx context.Context, doc Document) ([]byte, error)
}

// CacheKey builds the cache identity of a document for loader-level caching.
func CacheKey(doc Document) string {
	return doc.ID + ":" + doc.Path
}
