package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pulsebot/internal/domain"
)

// ScoreRepository persiste los puntajes de relevancia calculados por selección.
type ScoreRepository interface {
	Upsert(ctx context.Context, scores []domain.RelevanceScore) error
}

type PgScoreRepository struct {
	pool *pgxpool.Pool
}

func NewPgScoreRepository(pool *pgxpool.Pool) *PgScoreRepository {
	return &PgScoreRepository{pool: pool}
}

func (r *PgScoreRepository) Upsert(ctx context.Context, scores []domain.RelevanceScore) error {
	const query = `
		INSERT INTO ml_question_scores (score_id, question_id, user_id, relevance_score, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (question_id, user_id)
		DO UPDATE SET relevance_score = EXCLUDED.relevance_score, updated_at = EXCLUDED.updated_at
	`
	for _, score := range scores {
		_, err := r.pool.Exec(ctx, query,
			score.ID,
			score.QuestionID,
			score.UserID,
			score.Score,
			score.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
