// Package pdf extracts plain text from PDF disclosure documents so they can
// be split into units like any other text source.
package pdf

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/luppa-project/luppa/pkg/loader"
)

// PDFDocumentLoader wraps another loader and converts the PDF bytes it
// returns into plain text. Extracted text is cached per document.
type PDFDocumentLoader struct {
	loader loader.DocumentLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewPDFDocumentLoader creates a PDF loader that extracts text from the
// content returned by the underlying loader.
func NewPDFDocumentLoader(l loader.DocumentLoader) *PDFDocumentLoader {
	return &PDFDocumentLoader{
		loader: l,
		cache:  make(map[string][]byte),
	}
}

// GetDocumentText fetches the PDF through the underlying loader and returns
// its extracted text.
func (l *PDFDocumentLoader) GetDocumentText(ctx context.Context, doc loader.Document) ([]byte, error) {
	key := loader.CacheKey(doc)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := l.loader.GetDocumentText(ctx, doc)
		if err != nil {
			return nil, err
		}

		text, err := parsePDF(content)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
