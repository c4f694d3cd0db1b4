package file

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/luppa-project/luppa/pkg/loader"
)

// FileDocumentLoader loads documents directly from the local filesystem with
// caching. Concurrent loads of the same document are collapsed into a single
// read.
type FileDocumentLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewFileDocumentLoader creates a new filesystem-based document loader.
func NewFileDocumentLoader() *FileDocumentLoader {
	return &FileDocumentLoader{
		cache: make(map[string][]byte),
	}
}

// GetDocumentText reads the document content from the filesystem. Results are
// cached.
func (l *FileDocumentLoader) GetDocumentText(ctx context.Context, doc loader.Document) ([]byte, error) {
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

		result, err := os.ReadFile(doc.Path)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
