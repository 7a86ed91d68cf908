package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// completionTimeout bounds a single completion call. There is no retry: a
// timeout or upstream failure propagates to the caller.
const completionTimeout = 60 * time.Second

// AIService produces an answer for a fully assembled prompt.
type AIService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIService sends single-turn chat completion requests to an
// OpenAI-compatible endpoint (OpenRouter in the default configuration).
type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{Timeout: completionTimeout}
	return &OpenAIService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice's content. Decoding is as deterministic as the provider allows.
func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			// A zero temperature is dropped by the client's omitempty
			// marshaling; the smallest positive value is the closest
			// representable request for deterministic decoding.
			Temperature: math.SmallestNonzeroFloat32,
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ AIService = (*OpenAIService)(nil)
