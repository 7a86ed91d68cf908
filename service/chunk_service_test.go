package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tieubaoca/docqa-be/types"
)

func TestSplitTextShortText(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)

	chunks := s.SplitText("A short paragraph.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph.", chunks[0])
}

func TestSplitTextEmpty(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)

	assert.Nil(t, s.SplitText(""))
	assert.Nil(t, s.SplitText("   \n\n  "))
}

func TestSplitTextMaxSize(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	chunks := s.SplitText(text)
	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 800, "chunk %d exceeds max size", i)
		assert.NotEmpty(t, chunk)
	}
}

func TestSplitTextOverlapInvariant(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)

	text := strings.Repeat("Employees accrue annual leave at a fixed monthly rate. ", 120)
	chunks := s.SplitText(text)
	require.Greater(t, len(chunks), 2)

	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-150:]
		head := chunks[i+1][:150]
		assert.Equal(t, tail, head, "chunks %d and %d do not share the overlap", i, i+1)
	}
}

func TestSplitTextMultibyteText(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)

	text := strings.Repeat("Chính sách nghỉ phép cho nhân viên chính thức của công ty. ", 120)
	chunks := s.SplitText(text)
	require.Greater(t, len(chunks), 2)

	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8", i)
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 800, "chunk %d exceeds max size", i)
	}
	for i := 0; i < len(chunks)-1; i++ {
		tail := []rune(chunks[i])
		head := []rune(chunks[i+1])
		assert.Equal(t, string(tail[len(tail)-150:]), string(head[:150]),
			"chunks %d and %d do not share the overlap", i, i+1)
	}
}

func TestSplitTextPrefersParagraphBoundaries(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{MaxChunkSize: 100, OverlapSize: 20})

	para := strings.Repeat("word ", 12) // 60 chars
	text := para + "\n\n" + para + "\n\n" + para
	chunks := s.SplitText(text)
	require.Greater(t, len(chunks), 1)
	// The first cut lands on the paragraph break inside the 100-char window.
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"))
}

func TestSplitTextHardCutWithoutSeparators(t *testing.T) {
	s := NewChunkService(types.DocumentServiceConfig{MaxChunkSize: 100, OverlapSize: 20})

	text := strings.Repeat("x", 350)
	chunks := s.SplitText(text)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
	}
	for i := 0; i < len(chunks)-1; i++ {
		assert.Equal(t, chunks[i][len(chunks[i])-20:], chunks[i+1][:20])
	}
}

func TestSplitDocumentsMetadata(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)

	docs := []types.Document{
		{Filename: "handbook.pdf", Text: strings.Repeat("Policy text. ", 200), Pages: 3},
		{Filename: "notes.pdf", Text: "A single small note.", Pages: 1},
	}
	chunks := s.SplitDocuments(docs)
	require.NotEmpty(t, chunks)

	bySource := map[string][]types.DocumentChunk{}
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk.ID)
		bySource[chunk.Metadata.Source] = append(bySource[chunk.Metadata.Source], chunk)
	}
	require.Len(t, bySource["notes.pdf"], 1)
	assert.Equal(t, 1, bySource["notes.pdf"][0].Metadata.TotalPages)

	for i, chunk := range bySource["handbook.pdf"] {
		assert.Equal(t, i, chunk.Metadata.Index)
		assert.Equal(t, 3, chunk.Metadata.TotalPages)
	}
}

func TestSplitDocumentsIdempotentChunkCount(t *testing.T) {
	s := NewChunkService(DefaultDocumentServiceConfig)

	docs := []types.Document{
		{Filename: "handbook.pdf", Text: strings.Repeat("Policy text with details. ", 300), Pages: 5},
	}
	first := s.SplitDocuments(docs)
	second := s.SplitDocuments(docs)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
	}
}
