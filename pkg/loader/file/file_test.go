package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/luppa-project/luppa/pkg/loader"
)

func TestGetDocumentText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "declaration.txt")
	if err := os.WriteFile(path, []byte("Maria Lopez owns Acme Ltd."), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewFileDocumentLoader()
	doc := loader.NewDocument(loader.DocumentTypeDeclaration, loader.NewDocumentParams{
		ID:     "doc-1",
		Path:   path,
		Loader: l,
	})

	text, err := doc.GetText(context.Background())
	if err != nil {
		t.Fatalf("GetText() error = %v", err)
	}
	if string(text) != "Maria Lopez owns Acme Ltd." {
		t.Errorf("GetText() = %q", text)
	}
}

func TestGetDocumentTextCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.txt")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewFileDocumentLoader()
	doc := loader.NewDocument(loader.DocumentTypeRegistry, loader.NewDocumentParams{
		ID:     "doc-2",
		Path:   path,
		Loader: l,
	})

	if _, err := l.GetDocumentText(context.Background(), doc); err != nil {
		t.Fatalf("GetDocumentText() error = %v", err)
	}

	// A rewrite on disk must not be visible through the cache.
	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := l.GetDocumentText(context.Background(), doc)
	if err != nil {
		t.Fatalf("GetDocumentText() error = %v", err)
	}
	if string(text) != "original" {
		t.Errorf("GetDocumentText() = %q, want cached %q", text, "original")
	}
}

func TestGetDocumentTextMissingFile(t *testing.T) {
	l := NewFileDocumentLoader()
	doc := loader.NewDocument(loader.DocumentTypePress, loader.NewDocumentParams{
		ID:     "doc-3",
		Path:   filepath.Join(t.TempDir(), "missing.txt"),
		Loader: l,
	})

	if _, err := l.GetDocumentText(context.Background(), doc); err == nil {
		t.Error("GetDocumentText() expected error for missing file")
	}
}
