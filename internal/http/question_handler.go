package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pulsebot/internal/metrics"
	"pulsebot/internal/repository"
	"pulsebot/internal/service"
)

// QuestionHandler mantiene dependencias para los endpoints de preguntas.
type QuestionHandler struct {
	logger    *zap.Logger
	selector  *service.QuestionSelector
	questions repository.QuestionRepository
	limiter   service.PromptRateLimiter
	metrics   *metrics.FeedbackMetrics
}

func NewQuestionHandler(
	logger *zap.Logger,
	selector *service.QuestionSelector,
	questions repository.QuestionRepository,
	limiter service.PromptRateLimiter,
	m *metrics.FeedbackMetrics,
) *QuestionHandler {
	return &QuestionHandler{
		logger:    logger,
		selector:  selector,
		questions: questions,
		limiter:   limiter,
		metrics:   m,
	}
}

// GetQuestions maneja GET /questions/:question_type?user_id=.
// Devuelve la pregunta seleccionada y las candidatas rankeadas. Un pool vacío
// no es error: question queda en null y el cliente decide reintentar más tarde.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questionType := c.Param("question_type")
	userID := c.Query("user_id")

	if h.limiter != nil && !h.limiter.Allow(userID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "feedback interval not elapsed"})
		return
	}

	result, err := h.selector.SelectNext(c.Request.Context(), userID, questionType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuestionType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question type"})
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		default:
			h.logger.Error("select question failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not select question"})
		}
		return
	}

	if result.Question == nil {
		h.countSelection(questionType, "empty")
		c.JSON(http.StatusOK, gin.H{"question": nil, "candidates": []service.RankedQuestion{}})
		return
	}

	// Marcar uso es responsabilidad del caller de la selección, no del selector.
	if err := h.questions.TouchLastUsed(c.Request.Context(), result.Question.ID, time.Now().UTC()); err != nil {
		h.logger.Warn("touch last_used_at failed", zap.Error(err))
	}

	h.countSelection(questionType, "selected")
	c.JSON(http.StatusOK, gin.H{"question": result.Question, "candidates": result.Candidates})
}

func (h *QuestionHandler) countSelection(questionType, result string) {
	if h.metrics != nil {
		h.metrics.SelectionsTotal.WithLabelValues(questionType, result).Inc()
	}
}
