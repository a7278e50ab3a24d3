package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pulsebot/internal/domain"
	"pulsebot/internal/metrics"
	"pulsebot/internal/service"
)

// ResponseHandler mantiene dependencias para los endpoints de respuestas.
type ResponseHandler struct {
	logger    *zap.Logger
	responses *service.ResponseService
	metrics   *metrics.FeedbackMetrics
}

func NewResponseHandler(logger *zap.Logger, responses *service.ResponseService, m *metrics.FeedbackMetrics) *ResponseHandler {
	return &ResponseHandler{
		logger:    logger,
		responses: responses,
		metrics:   m,
	}
}

// AddResponse maneja POST /responses.
func (h *ResponseHandler) AddResponse(c *gin.Context) {
	var req struct {
		QuestionID    string `json:"question_id" binding:"required"`
		UserID        string `json:"user_id"`
		ResponseText  string `json:"response_text"`
		ResponseEmoji *int   `json:"response_emoji"`
		ResponseRadio string `json:"response_radio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add response request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	response, err := h.responses.Record(c.Request.Context(), service.RecordResponseInput{
		QuestionID:    req.QuestionID,
		UserID:        req.UserID,
		ResponseText:  req.ResponseText,
		ResponseEmoji: req.ResponseEmoji,
		ResponseRadio: req.ResponseRadio,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		case errors.Is(err, service.ErrEmptyResponse), errors.Is(err, service.ErrInvalidEmoji):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		default:
			h.logger.Error("record response failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record response"})
		}
		return
	}

	if h.metrics != nil {
		sentiment := response.Sentiment
		if sentiment == "" {
			sentiment = domain.SentimentNeutral
		}
		h.metrics.ResponsesTotal.WithLabelValues(sentiment).Inc()
	}

	c.JSON(http.StatusCreated, gin.H{"response": response})
}

// UpdateState maneja POST /responses/update_state.
func (h *ResponseHandler) UpdateState(c *gin.Context) {
	var req struct {
		QuestionID string `json:"question_id" binding:"required"`
		Action     string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update state request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.responses.UpdateState(c.Request.Context(), req.QuestionID, req.Action); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "action must be defer or skip"})
		case errors.Is(err, service.ErrQuestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		default:
			h.logger.Error("update state failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update state"})
		}
		return
	}

	if h.metrics != nil {
		h.metrics.StateUpdatesTotal.WithLabelValues(req.Action).Inc()
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "action": req.Action})
}
