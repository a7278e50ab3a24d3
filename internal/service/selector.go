package service

import (
	"context"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pulsebot/internal/domain"
	"pulsebot/internal/repository"
)

const defaultTopN = 5

// SelectionResult es lo que el selector entrega al caller: la pregunta elegida
// (nil cuando el pool elegible quedó vacío) y las candidatas rankeadas.
type SelectionResult struct {
	Question   *domain.Question
	Candidates []RankedQuestion
}

// QuestionSelector compone filtro de elegibilidad, ranker y repositorios para
// elegir la próxima pregunta de un usuario. La selección no muta estado de
// preguntas; actualizar last_used_at es responsabilidad del caller.
type QuestionSelector struct {
	logger    *zap.Logger
	questions repository.QuestionRepository
	responses repository.ResponseRepository
	scores    repository.ScoreRepository
	ranker    RelevanceRanker
	topN      int
	randInt   func(n int) int
}

// NewQuestionSelector crea un selector. scores puede ser nil para no persistir
// puntajes; topN <= 0 usa el valor por defecto (5).
func NewQuestionSelector(
	logger *zap.Logger,
	questions repository.QuestionRepository,
	responses repository.ResponseRepository,
	scores repository.ScoreRepository,
	topN int,
) *QuestionSelector {
	if topN <= 0 {
		topN = defaultTopN
	}
	return &QuestionSelector{
		logger:    logger,
		questions: questions,
		responses: responses,
		scores:    scores,
		topN:      topN,
		randInt:   rand.IntN,
	}
}

// SelectNext obtiene el pool elegible del tipo pedido y elige uniformemente
// dentro del top-N rankeado. Con historial de texto libre el orden lo da el
// ranker TF-IDF; sin historial, dificultad ascendente. El muestreo dentro del
// top evita que siempre salga la mejor coincidencia.
func (s *QuestionSelector) SelectNext(ctx context.Context, userID, questionType string) (SelectionResult, error) {
	if !domain.IsValidQuestionType(questionType) {
		return SelectionResult{}, ErrInvalidQuestionType
	}

	all, err := s.questions.ListByType(ctx, questionType)
	if err != nil {
		return SelectionResult{}, storeError(err)
	}

	pool := EligibleQuestions(all, questionType)
	if len(pool) == 0 {
		return SelectionResult{}, nil
	}

	var feedbackTexts []string
	if userID != "" {
		feedbackTexts, err = s.responses.ListTextsByUserID(ctx, userID)
		if err != nil {
			return SelectionResult{}, storeError(err)
		}
	}

	var ranked []RankedQuestion
	if len(feedbackTexts) > 0 {
		ranked = s.ranker.Rank(feedbackTexts, pool)
		s.persistScores(ctx, userID, ranked)
	} else {
		sort.SliceStable(pool, func(a, b int) bool {
			return pool[a].DifficultyLevel < pool[b].DifficultyLevel
		})
		ranked = make([]RankedQuestion, len(pool))
		for i, q := range pool {
			ranked[i] = RankedQuestion{Question: q}
		}
	}

	slice := s.topN
	if slice > len(ranked) {
		slice = len(ranked)
	}
	chosen := ranked[s.randInt(slice)].Question

	return SelectionResult{Question: &chosen, Candidates: ranked}, nil
}

// persistScores guarda los puntajes calculados como telemetría, best-effort:
// una falla aquí no debe tumbar la selección.
func (s *QuestionSelector) persistScores(ctx context.Context, userID string, ranked []RankedQuestion) {
	if s.scores == nil {
		return
	}

	now := time.Now().UTC()
	scores := make([]domain.RelevanceScore, len(ranked))
	for i, rq := range ranked {
		scores[i] = domain.RelevanceScore{
			ID:         uuid.NewString(),
			QuestionID: rq.Question.ID,
			UserID:     userID,
			Score:      rq.Score,
			UpdatedAt:  now,
		}
	}

	if err := s.scores.Upsert(ctx, scores); err != nil && s.logger != nil {
		s.logger.Warn("persist relevance scores failed", zap.Error(err))
	}
}
