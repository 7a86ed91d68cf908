package types

type QuestionRequest struct {
	Question       string `json:"question"`
	ConversationId string `json:"conversation_id,omitempty"`
}
