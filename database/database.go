package database

import (
	"context"

	"github.com/tieubaoca/docqa-be/types"
)

// SearchResult pairs a retrieved chunk with its similarity score.
type SearchResult struct {
	Chunk types.DocumentChunk
	Score float32
}

// Retriever serves nearest-neighbour queries over the current index.
type Retriever interface {
	Search(vector []float32, k int) ([]SearchResult, error)
}

// ConversationStore defines the interface for expiring per-conversation
// turn history.
type ConversationStore interface {
	// GetConversation returns the stored turns for a conversation,
	// oldest first. An absent or expired conversation is an empty
	// history, not an error.
	GetConversation(ctx context.Context, conversationId string) ([]types.Message, error)

	// AppendTurns appends one user turn and one assistant turn and
	// resets the conversation expiry.
	AppendTurns(ctx context.Context, conversationId, question, answer string) error
}

// AnswerCache defines the interface for the expiring question -> answer
// cache.
type AnswerCache interface {
	// Lookup returns the cached answer for a question. The second
	// return value reports whether an entry was found.
	Lookup(ctx context.Context, question string) (string, bool, error)

	// Store caches the answer for a question with the configured expiry.
	Store(ctx context.Context, question, answer string) error
}
