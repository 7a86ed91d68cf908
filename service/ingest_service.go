package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/types"
)

// IngestService rebuilds the vector index from the document directory.
// Every run is a full rebuild: all PDFs are re-extracted, re-chunked and
// re-embedded, and the persisted index is replaced wholesale. Any failure
// aborts the build and leaves the previous index authoritative.
type IngestService struct {
	documentDir string
	extractor   TextExtractor
	chunker     *ChunkService
	embedder    Embedder
	manager     *database.IndexManager
}

func NewIngestService(
	documentDir string,
	extractor TextExtractor,
	chunker *ChunkService,
	embedder Embedder,
	manager *database.IndexManager,
) (*IngestService, error) {
	if err := os.MkdirAll(documentDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &IngestService{
		documentDir: documentDir,
		extractor:   extractor,
		chunker:     chunker,
		embedder:    embedder,
		manager:     manager,
	}, nil
}

// DocumentDir returns the directory ingestion reads from.
func (s *IngestService) DocumentDir() string {
	return s.documentDir
}

// LoadDocuments extracts text from every PDF in the document directory.
func (s *IngestService) LoadDocuments() ([]types.Document, error) {
	entries, err := os.ReadDir(s.documentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}
	var documents []types.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		text, pages, err := s.extractor.Extract(filepath.Join(s.documentDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", entry.Name(), err)
		}
		documents = append(documents, types.Document{
			Filename: entry.Name(),
			Text:     text,
			Pages:    pages,
		})
	}
	return documents, nil
}

// Ingest runs the full pipeline: load, chunk, embed, build, persist, swap.
// Returns the number of indexed chunks.
func (s *IngestService) Ingest(ctx context.Context) (int, error) {
	documents, err := s.LoadDocuments()
	if err != nil {
		return 0, err
	}
	chunks := s.chunker.SplitDocuments(documents)
	log.Printf("Ingesting %d documents, %d chunks", len(documents), len(chunks))

	ix := database.NewVectorIndex(s.embedder.Model())
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}
		vectors, err := s.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return 0, err
		}
		for i, chunk := range chunks {
			if err := ix.Add(chunk, vectors[i]); err != nil {
				return 0, err
			}
		}
	}

	if err := ix.Save(s.manager.Path()); err != nil {
		return 0, err
	}
	s.manager.Swap(ix)
	return ix.Len(), nil
}
