package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pulsebot/internal/domain"
	"pulsebot/internal/repository"
)

// ResponseService registra respuestas y mantiene el ciclo defer/skip de las
// preguntas contra el almacén externo.
type ResponseService struct {
	logger     *zap.Logger
	questions  repository.QuestionRepository
	responses  repository.ResponseRepository
	classifier *SentimentClassifier
}

func NewResponseService(
	logger *zap.Logger,
	questions repository.QuestionRepository,
	responses repository.ResponseRepository,
	classifier *SentimentClassifier,
) *ResponseService {
	return &ResponseService{
		logger:     logger,
		questions:  questions,
		responses:  responses,
		classifier: classifier,
	}
}

// RecordResponseInput es el payload de envío de feedback. Solo uno de los
// campos de contenido es necesario; no se exige que coincida con el tipo
// declarado de la pregunta.
type RecordResponseInput struct {
	QuestionID    string
	UserID        string
	ResponseText  string
	ResponseEmoji *int
	ResponseRadio string
}

// Record valida el payload, calcula sentimiento para texto libre y persiste la
// respuesta con id y timestamp asignados por el servidor. El sentimiento se
// fija exactamente una vez aquí y nunca se recalcula.
func (s *ResponseService) Record(ctx context.Context, input RecordResponseInput) (domain.Response, error) {
	response := domain.Response{
		QuestionID:    strings.TrimSpace(input.QuestionID),
		UserID:        strings.TrimSpace(input.UserID),
		ResponseText:  strings.TrimSpace(input.ResponseText),
		ResponseEmoji: input.ResponseEmoji,
		ResponseRadio: strings.TrimSpace(input.ResponseRadio),
	}

	if response.QuestionID == "" {
		return domain.Response{}, ErrQuestionNotFound
	}
	if !response.HasPayload() {
		return domain.Response{}, ErrEmptyResponse
	}
	if response.ResponseEmoji != nil {
		if v := *response.ResponseEmoji; v < 1 || v > 5 {
			return domain.Response{}, ErrInvalidEmoji
		}
	}

	if _, err := s.questions.GetByID(ctx, response.QuestionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Response{}, ErrQuestionNotFound
		}
		return domain.Response{}, storeError(err)
	}

	// Solo el texto libre se clasifica; emoji y radio quedan sin sentimiento.
	if response.ResponseText != "" {
		response.Sentiment = s.classifier.Classify(response.ResponseText)
	}

	response.ID = uuid.NewString()
	response.SubmittedAt = time.Now().UTC()

	if err := s.responses.Create(ctx, response); err != nil {
		return domain.Response{}, storeError(err)
	}

	return response, nil
}

// Defer incrementa el contador de aplazamientos de la pregunta. El incremento
// es una sola sentencia atómica en el repositorio, así defers concurrentes
// sobre la misma pregunta no pierden actualizaciones.
func (s *ResponseService) Defer(ctx context.Context, questionID string) error {
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return ErrQuestionNotFound
	}
	if err := s.questions.IncrementDefer(ctx, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return storeError(err)
	}
	return nil
}

// Skip marca la pregunta como saltada. Idempotente: saltar una pregunta ya
// saltada no es un error.
func (s *ResponseService) Skip(ctx context.Context, questionID string) error {
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return ErrQuestionNotFound
	}
	if err := s.questions.MarkSkipped(ctx, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return storeError(err)
	}
	return nil
}

// UpdateState despacha la acción defer/skip del payload de estado.
func (s *ResponseService) UpdateState(ctx context.Context, questionID, action string) error {
	switch action {
	case "defer":
		return s.Defer(ctx, questionID)
	case "skip":
		return s.Skip(ctx, questionID)
	default:
		return ErrInvalidAction
	}
}
