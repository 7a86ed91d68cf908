package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tieubaoca/docqa-be/types"
)

func TestStatelessPromptContainsFallbackInstruction(t *testing.T) {
	b := NewPromptBuilder()

	prompt, err := b.Stateless([]string{"Some context."}, "What is the policy?")
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Not found in provided documents"`)
	assert.Contains(t, prompt, "Do NOT use external knowledge")
	assert.Contains(t, prompt, "What is the policy?")
}

func TestStatelessPromptJoinsContextsInOrder(t *testing.T) {
	b := NewPromptBuilder()

	prompt, err := b.Stateless([]string{"first chunk", "second chunk", "third chunk"}, "q")
	require.NoError(t, err)
	assert.Contains(t, prompt, "first chunk\n\nsecond chunk\n\nthird chunk")
}

func TestConversationalPromptIncludesHistory(t *testing.T) {
	b := NewPromptBuilder()

	history := []types.Message{
		{Role: types.RoleUser, Content: "hello"},
		{Role: types.RoleAssistant, Content: "hi there"},
	}
	prompt, err := b.Conversational([]string{"ctx"}, history, "next question")
	require.NoError(t, err)
	assert.Contains(t, prompt, "User: hello\nAssistant: hi there")
	assert.Contains(t, prompt, "next question")
	assert.Contains(t, prompt, `"Not found in provided documents"`)
}

func TestFormatHistoryTruncation(t *testing.T) {
	var messages []types.Message
	for i := 0; i < 10; i++ {
		messages = append(messages,
			types.Message{Role: types.RoleUser, Content: fmt.Sprintf("question %d", i)},
			types.Message{Role: types.RoleAssistant, Content: fmt.Sprintf("answer %d", i)},
		)
	}
	require.Len(t, messages, 20)

	formatted := FormatHistory(messages, 5)
	lines := strings.Split(formatted, "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "User: question 5", lines[0])
	assert.Equal(t, "Assistant: answer 9", lines[9])
}

func TestFormatHistoryShorterThanLimit(t *testing.T) {
	messages := []types.Message{
		{Role: types.RoleUser, Content: "only one"},
	}
	assert.Equal(t, "User: only one", FormatHistory(messages, 5))
}

func TestFormatHistoryEmpty(t *testing.T) {
	assert.Equal(t, "", FormatHistory(nil, 5))
}
