package service

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/tieubaoca/docqa-be/types"
)

// FallbackAnswer is the exact phrase the model is instructed to return when
// the retrieved context does not contain the answer.
const FallbackAnswer = "Not found in provided documents"

// DefaultMaxHistoryTurns is the number of past exchanges included in a
// conversational prompt (one exchange = one user plus one assistant turn).
const DefaultMaxHistoryTurns = 5

var statelessTemplate = template.Must(template.New("qa").Parse(`You are an enterprise AI assistant.

STRICT RULES:
- Use ONLY the information provided in the context
- Do NOT use external knowledge
- If the answer is not in the context, say:
  "Not found in provided documents"

Context:
{{.Context}}

Question:
{{.Question}}

Answer:
`))

var conversationalTemplate = template.Must(template.New("qa-conv").Parse(`You are an enterprise AI assistant.

STRICT RULES:
- Use ONLY the information provided in the context
- Do NOT use external knowledge
- If the answer is not in the context, say:
  "Not found in provided documents"

Conversation so far:
{{.History}}

Context:
{{.Context}}

Question:
{{.Question}}

Answer:
`))

type promptData struct {
	Context  string
	History  string
	Question string
}

// PromptBuilder renders completion prompts from retrieved chunks. Rendering
// is pure string formatting; template errors are programming errors and
// panic at package init.
type PromptBuilder struct {
	maxHistoryTurns int
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{maxHistoryTurns: DefaultMaxHistoryTurns}
}

// Stateless renders the single-question prompt. Contexts are joined by a
// blank line in retrieval order.
func (b *PromptBuilder) Stateless(contexts []string, question string) (string, error) {
	return render(statelessTemplate, promptData{
		Context:  strings.Join(contexts, "\n\n"),
		Question: question,
	})
}

// Conversational renders the prompt with the most recent history included.
func (b *PromptBuilder) Conversational(contexts []string, history []types.Message, question string) (string, error) {
	return render(conversationalTemplate, promptData{
		Context:  strings.Join(contexts, "\n\n"),
		History:  FormatHistory(history, b.maxHistoryTurns),
		Question: question,
	})
}

func render(t *template.Template, data promptData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return sb.String(), nil
}

// FormatHistory renders the last maxTurns exchanges (up to 2*maxTurns
// messages) as "Role: content" lines, oldest first.
func FormatHistory(messages []types.Message, maxTurns int) string {
	limit := 2 * maxTurns
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", capitalize(m.Role), m.Content))
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
