package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tieubaoca/docqa-be/types"
)

const (
	conversationKeyPrefix = "conversation:"
	answerKeyPrefix       = "rag_answer:"

	// entryTTL is the lifetime of both conversations and cached answers,
	// counted from the last write.
	entryTTL = time.Hour
)

// RedisStore backs both the conversation store and the answer cache with a
// single Redis connection, namespaced by key prefix.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the given Redis instance.
func NewRedisStore(addr string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

// NewRedisStoreWithClient wraps an existing client. Used in tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// GetConversation returns the stored turns for a conversation, oldest
// first. An absent or expired conversation is an empty history.
func (s *RedisStore) GetConversation(ctx context.Context, conversationId string) ([]types.Message, error) {
	data, err := s.client.Get(ctx, conversationKeyPrefix+conversationId).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}
	var messages []types.Message
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return messages, nil
}

// AppendTurns appends a user turn and an assistant turn and resets the
// expiry to one hour from now.
//
// This is a get-then-set: concurrent appends to the same conversation can
// lose turns, last writer wins. Accepted at this system's scale.
func (s *RedisStore) AppendTurns(ctx context.Context, conversationId, question, answer string) error {
	messages, err := s.GetConversation(ctx, conversationId)
	if err != nil {
		return err
	}
	messages = append(messages,
		types.Message{Role: types.RoleUser, Content: question},
		types.Message{Role: types.RoleAssistant, Content: answer},
	)
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode conversation: %w", err)
	}
	if err := s.client.Set(ctx, conversationKeyPrefix+conversationId, data, entryTTL).Err(); err != nil {
		return fmt.Errorf("failed to write conversation: %w", err)
	}
	return nil
}

// Lookup returns the cached answer for a question, if present.
func (s *RedisStore) Lookup(ctx context.Context, question string) (string, bool, error) {
	answer, err := s.client.Get(ctx, answerKey(question)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read answer cache: %w", err)
	}
	return answer, true, nil
}

// Store caches the answer for a question with a one hour expiry.
func (s *RedisStore) Store(ctx context.Context, question, answer string) error {
	if err := s.client.Set(ctx, answerKey(question), answer, entryTTL).Err(); err != nil {
		return fmt.Errorf("failed to write answer cache: %w", err)
	}
	return nil
}

// answerKey derives the cache key from the exact question text. No
// normalization: questions differing only in whitespace or case are
// distinct entries.
func answerKey(question string) string {
	sum := sha256.Sum256([]byte(question))
	return answerKeyPrefix + hex.EncodeToString(sum[:])
}

var (
	_ ConversationStore = (*RedisStore)(nil)
	_ AnswerCache       = (*RedisStore)(nil)
)
