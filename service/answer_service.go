package service

import (
	"context"

	"github.com/tieubaoca/docqa-be/database"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 4

// AnswerService composes retrieval, prompt assembly and completion into the
// question-answering operations.
type AnswerService struct {
	cache    database.AnswerCache
	convs    database.ConversationStore
	index    database.Retriever
	embedder Embedder
	prompts  *PromptBuilder
	ai       AIService
	topK     int
}

func NewAnswerService(
	cache database.AnswerCache,
	convs database.ConversationStore,
	index database.Retriever,
	embedder Embedder,
	prompts *PromptBuilder,
	ai AIService,
	topK int,
) *AnswerService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerService{
		cache:    cache,
		convs:    convs,
		index:    index,
		embedder: embedder,
		prompts:  prompts,
		ai:       ai,
		topK:     topK,
	}
}

// Answer handles a stateless question. A cache hit short-circuits retrieval
// and completion entirely; a fresh answer is cached on the way out. Nothing
// is cached when any step fails.
func (s *AnswerService) Answer(ctx context.Context, question string) (string, error) {
	if answer, ok, err := s.cache.Lookup(ctx, question); err != nil {
		return "", err
	} else if ok {
		return answer, nil
	}

	contexts, err := s.retrieve(ctx, question)
	if err != nil {
		return "", err
	}
	prompt, err := s.prompts.Stateless(contexts, question)
	if err != nil {
		return "", err
	}
	answer, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := s.cache.Store(ctx, question, answer); err != nil {
		return "", err
	}
	return answer, nil
}

// AnswerConversation handles a question inside a conversation. The stored
// history is folded into the prompt and the new turn pair is appended after
// a successful completion. The answer cache is not consulted here: a cache
// key shared across conversations would return answers that ignore each
// conversation's history.
func (s *AnswerService) AnswerConversation(ctx context.Context, question, conversationId string) (string, error) {
	history, err := s.convs.GetConversation(ctx, conversationId)
	if err != nil {
		return "", err
	}
	contexts, err := s.retrieve(ctx, question)
	if err != nil {
		return "", err
	}
	prompt, err := s.prompts.Conversational(contexts, history, question)
	if err != nil {
		return "", err
	}
	answer, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := s.convs.AppendTurns(ctx, conversationId, question, answer); err != nil {
		return "", err
	}
	return answer, nil
}

// retrieve embeds the question and returns the contents of the topK most
// similar chunks, in descending similarity order.
func (s *AnswerService) retrieve(ctx context.Context, question string) ([]string, error) {
	vector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}
	results, err := s.index.Search(vector, s.topK)
	if err != nil {
		return nil, err
	}
	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Chunk.Content
	}
	return contexts, nil
}
