package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pulsebot/internal/domain"
)

type ResponseRepository interface {
	Create(ctx context.Context, response domain.Response) error
	ListByUserID(ctx context.Context, userID string) ([]domain.Response, error)
	ListTextsByUserID(ctx context.Context, userID string) ([]string, error)
}

type PgResponseRepository struct {
	pool *pgxpool.Pool
}

func NewPgResponseRepository(pool *pgxpool.Pool) *PgResponseRepository {
	return &PgResponseRepository{pool: pool}
}

func (r *PgResponseRepository) Create(ctx context.Context, response domain.Response) error {
	const query = `
		INSERT INTO responses (response_id, question_id, user_id, response_text, response_emoji, response_radio, sentiment, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var userID interface{}
	if response.UserID != "" {
		userID = response.UserID
	}
	var text interface{}
	if response.ResponseText != "" {
		text = response.ResponseText
	}
	var radio interface{}
	if response.ResponseRadio != "" {
		radio = response.ResponseRadio
	}
	var sentiment interface{}
	if response.Sentiment != "" {
		sentiment = response.Sentiment
	}

	_, err := r.pool.Exec(ctx, query,
		response.ID,
		response.QuestionID,
		userID,
		text,
		response.ResponseEmoji,
		radio,
		sentiment,
		response.SubmittedAt,
	)
	return err
}

func (r *PgResponseRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Response, error) {
	const query = `
		SELECT response_id, question_id, user_id, response_text, response_emoji, response_radio, sentiment, submitted_at
		FROM responses
		WHERE user_id = $1
		ORDER BY submitted_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.Response
	for rows.Next() {
		var resp domain.Response
		var userIDValue, textValue, radioValue, sentimentValue *string

		err = rows.Scan(
			&resp.ID,
			&resp.QuestionID,
			&userIDValue,
			&textValue,
			&resp.ResponseEmoji,
			&radioValue,
			&sentimentValue,
			&resp.SubmittedAt,
		)
		if err != nil {
			return nil, err
		}
		if userIDValue != nil {
			resp.UserID = *userIDValue
		}
		if textValue != nil {
			resp.ResponseText = *textValue
		}
		if radioValue != nil {
			resp.ResponseRadio = *radioValue
		}
		if sentimentValue != nil {
			resp.Sentiment = *sentimentValue
		}
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// ListTextsByUserID devuelve solo el texto libre del historial, que es el corpus
// de feedback que consume el ranker.
func (r *PgResponseRepository) ListTextsByUserID(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT response_text
		FROM responses
		WHERE user_id = $1 AND response_text IS NOT NULL AND response_text <> ''
		ORDER BY submitted_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err = rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return texts, nil
}
