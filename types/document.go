package types

// Document is a raw source file loaded from the document directory.
type Document struct {
	Filename string // Base name of the source file
	Text     string // Extracted plain text
	Pages    int    // Total number of pages in the source PDF
}

// DocumentChunk is a bounded span of document text prepared for embedding.
type DocumentChunk struct {
	ID       string           // Unique chunk identifier
	Content  string           // The actual text content
	Metadata DocumentMetadata // Associated metadata for the chunk
}

// DocumentMetadata contains provenance information for a chunk.
type DocumentMetadata struct {
	Source     string // Source file name
	TotalPages int    // Total number of pages in the source document
	Index      int    // Position of the chunk within its document
}

// DocumentServiceConfig contains configuration options for text chunking.
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum size for text chunks
	OverlapSize  int // Size of overlap between chunks
}
