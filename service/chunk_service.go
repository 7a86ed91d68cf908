package service

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tieubaoca/docqa-be/types"
)

// DefaultDocumentServiceConfig matches the chunking parameters the index
// was designed around: 800 character chunks with 150 characters of overlap.
var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 800,
	OverlapSize:  150,
}

// separators are tried in order when looking for a chunk boundary:
// paragraph break, line break, sentence end, word boundary.
var separators = []string{"\n\n", "\n", ". ", " "}

// ChunkService splits document text into overlapping chunks suitable for
// embedding and retrieval. Splitting is a pure transformation with no side
// effects.
type ChunkService struct {
	maxChunkSize int
	overlapSize  int
}

// NewChunkService creates a chunk service with the given configuration.
// An overlap at or above the chunk size is clamped to a quarter of it.
func NewChunkService(config types.DocumentServiceConfig) *ChunkService {
	maxChunkSize := config.MaxChunkSize
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultDocumentServiceConfig.MaxChunkSize
	}
	overlapSize := config.OverlapSize
	if overlapSize < 0 {
		overlapSize = 0
	}
	if overlapSize >= maxChunkSize {
		overlapSize = maxChunkSize / 4
	}
	return &ChunkService{
		maxChunkSize: maxChunkSize,
		overlapSize:  overlapSize,
	}
}

// SplitText splits text into chunks of at most maxChunkSize characters.
// Consecutive chunks share exactly overlapSize characters: the tail of one
// chunk is the head of the next. Boundaries prefer paragraph, line,
// sentence and word breaks, in that order, before cutting mid-word.
//
// Sizes and positions are counted in runes, not bytes, so multi-byte text
// never splits inside a character.
func (s *ChunkService) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= s.maxChunkSize {
		return []string{text}
	}

	var chunks []string
	pos := 0
	for pos < len(runes) {
		end := pos + s.maxChunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[pos:]))
			break
		}
		cut := s.findCut(runes, pos, end)
		chunks = append(chunks, string(runes[pos:cut]))
		pos = cut - s.overlapSize
	}
	return chunks
}

// findCut picks the boundary for the chunk starting at the rune offset pos.
// The cut must leave room for the overlap to advance the window, so only
// boundaries after pos+overlapSize qualify; when no separator lands in that
// range the text is cut hard at the size limit.
func (s *ChunkService) findCut(runes []rune, pos, end int) int {
	window := string(runes[pos:end])
	minCut := s.overlapSize + 1
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx >= 0 {
			cut := utf8.RuneCountInString(window[:idx]) + utf8.RuneCountInString(sep)
			if cut >= minCut {
				return pos + cut
			}
		}
	}
	return end
}

// SplitDocuments chunks every document and attaches provenance metadata.
// Chunk order follows document order; the Index field records each chunk's
// position within its source document.
func (s *ChunkService) SplitDocuments(documents []types.Document) []types.DocumentChunk {
	var chunks []types.DocumentChunk
	for _, doc := range documents {
		for i, content := range s.SplitText(doc.Text) {
			chunks = append(chunks, types.DocumentChunk{
				ID:      uuid.New().String(),
				Content: content,
				Metadata: types.DocumentMetadata{
					Source:     doc.Filename,
					TotalPages: doc.Pages,
					Index:      i,
				},
			})
		}
	}
	return chunks
}
