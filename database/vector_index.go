package database

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/tieubaoca/docqa-be/types"
)

var (
	// ErrIndexNotFound is returned when no index has been persisted yet.
	ErrIndexNotFound = errors.New("vector index not found, run ingestion first")

	// ErrModelMismatch is returned when a persisted index was built with a
	// different embedding model than the one configured.
	ErrModelMismatch = errors.New("vector index embedding model mismatch")
)

// VectorIndex maps document chunks to their embedding vectors and supports
// exact nearest-neighbour search by cosine similarity. The embedding model
// identifier is part of the persisted schema: loading an index built with a
// different model fails instead of returning nonsense similarity scores.
type VectorIndex struct {
	EmbedModel string
	Dimension  int
	Chunks     []types.DocumentChunk
	Vectors    [][]float32
}

// NewVectorIndex creates an empty index for the given embedding model.
func NewVectorIndex(embedModel string) *VectorIndex {
	return &VectorIndex{
		EmbedModel: embedModel,
	}
}

// Add appends a chunk with its embedding. The first vector fixes the
// dimension of the index.
func (ix *VectorIndex) Add(chunk types.DocumentChunk, vector []float32) error {
	if len(vector) == 0 {
		return errors.New("empty embedding vector")
	}
	if ix.Dimension == 0 {
		ix.Dimension = len(vector)
	} else if len(vector) != ix.Dimension {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vector), ix.Dimension)
	}
	ix.Chunks = append(ix.Chunks, chunk)
	ix.Vectors = append(ix.Vectors, vector)
	return nil
}

// Len returns the number of indexed chunks.
func (ix *VectorIndex) Len() int {
	return len(ix.Chunks)
}

// Search returns up to k chunks ordered by descending cosine similarity to
// the query vector. An empty index returns an empty result. A query whose
// dimension differs from the indexed vectors is an error, not a silent
// prefix comparison.
func (ix *VectorIndex) Search(vector []float32, k int) ([]SearchResult, error) {
	if k <= 0 || len(ix.Chunks) == 0 {
		return nil, nil
	}
	if len(vector) != ix.Dimension {
		return nil, fmt.Errorf("query vector dimension %d does not match index dimension %d", len(vector), ix.Dimension)
	}
	results := make([]SearchResult, len(ix.Chunks))
	for i := range ix.Vectors {
		results[i] = SearchResult{
			Chunk: ix.Chunks[i],
			Score: cosineSimilarity(ix.Vectors[i], vector),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Save persists the index atomically: the encoded index is written to a
// temporary file in the same directory and renamed over the target, so a
// failed write leaves any previous index untouched.
func (ix *VectorIndex) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "index-*.gob.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(ix); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp index file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

// LoadVectorIndex reads a persisted index from disk and verifies it was
// built with the expected embedding model. The persisted format is trusted;
// there is no tamper verification.
func LoadVectorIndex(path, embedModel string) (*VectorIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	var ix VectorIndex
	if err := gob.NewDecoder(f).Decode(&ix); err != nil {
		return nil, fmt.Errorf("failed to decode index file: %w", err)
	}
	if ix.EmbedModel != embedModel {
		return nil, fmt.Errorf("%w: index built with %q, configured %q", ErrModelMismatch, ix.EmbedModel, embedModel)
	}
	return &ix, nil
}

// cosineSimilarity assumes equal-length vectors; Search enforces that.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
