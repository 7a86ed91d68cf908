package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

type QuestionHandler struct {
	answerService *service.AnswerService
}

func NewQuestionHandler(answerService *service.AnswerService) *QuestionHandler {
	return &QuestionHandler{
		answerService: answerService,
	}
}

// HandleQuestion answers a question against the indexed documents. When a
// conversation_id is supplied the conversation history is folded into the
// prompt and extended with the new exchange.
func (h *QuestionHandler) HandleQuestion(c *gin.Context) {
	var req types.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		h.sendError(c, http.StatusBadRequest, "Missing question")
		return
	}

	var (
		answer string
		err    error
	)
	if req.ConversationId != "" {
		answer, err = h.answerService.AnswerConversation(c.Request.Context(), req.Question, req.ConversationId)
	} else {
		answer, err = h.answerService.Answer(c.Request.Context(), req.Question)
	}
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, types.QuestionResponse{
		Question: req.Question,
		Answer:   answer,
	})
}

func (h *QuestionHandler) sendError(c *gin.Context, status int, message string) {
	c.JSON(status, types.DataResponse{
		Status:  "error",
		Message: message,
	})
}
