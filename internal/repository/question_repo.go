package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulsebot/internal/domain"
)

// QuestionRepository define el contrato de persistencia para preguntas.
type QuestionRepository interface {
	Create(ctx context.Context, question domain.Question) error
	GetByID(ctx context.Context, id string) (domain.Question, error)
	ListByType(ctx context.Context, questionType string) ([]domain.Question, error)
	IncrementDefer(ctx context.Context, id string) error
	MarkSkipped(ctx context.Context, id string) error
	TouchLastUsed(ctx context.Context, id string, usedAt time.Time) error
}

// PgQuestionRepository implementa QuestionRepository usando pgxpool.
type PgQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionRepository(pool *pgxpool.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

func (r *PgQuestionRepository) Create(ctx context.Context, question domain.Question) error {
	const query = `
		INSERT INTO questions (question_id, question_text, category, question_type, difficulty_level, defer_count, skipped)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		question.ID,
		question.QuestionText,
		question.Category,
		question.QuestionType,
		question.DifficultyLevel,
		question.DeferCount,
		question.Skipped,
	)
	return err
}

func (r *PgQuestionRepository) GetByID(ctx context.Context, id string) (domain.Question, error) {
	const query = `
		SELECT question_id, question_text, category, question_type, difficulty_level, last_used_at, defer_count, skipped
		FROM questions
		WHERE question_id = $1
	`
	var q domain.Question
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID,
		&q.QuestionText,
		&q.Category,
		&q.QuestionType,
		&q.DifficultyLevel,
		&q.LastUsedAt,
		&q.DeferCount,
		&q.Skipped,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, err
	}
	return q, err
}

func (r *PgQuestionRepository) ListByType(ctx context.Context, questionType string) ([]domain.Question, error) {
	const query = `
		SELECT question_id, question_text, category, question_type, difficulty_level, last_used_at, defer_count, skipped
		FROM questions
		WHERE question_type = $1
		ORDER BY difficulty_level ASC, question_id ASC
	`
	rows, err := r.pool.Query(ctx, query, questionType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		err = rows.Scan(
			&q.ID,
			&q.QuestionText,
			&q.Category,
			&q.QuestionType,
			&q.DifficultyLevel,
			&q.LastUsedAt,
			&q.DeferCount,
			&q.Skipped,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// IncrementDefer incrementa defer_count en una sola sentencia para no perder
// actualizaciones bajo defers concurrentes sobre la misma pregunta.
func (r *PgQuestionRepository) IncrementDefer(ctx context.Context, id string) error {
	const query = `
		UPDATE questions
		SET defer_count = defer_count + 1
		WHERE question_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// MarkSkipped marca la pregunta como saltada. Idempotente.
func (r *PgQuestionRepository) MarkSkipped(ctx context.Context, id string) error {
	const query = `
		UPDATE questions
		SET skipped = TRUE
		WHERE question_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgQuestionRepository) TouchLastUsed(ctx context.Context, id string, usedAt time.Time) error {
	const query = `
		UPDATE questions
		SET last_used_at = $2
		WHERE question_id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, usedAt)
	return err
}
