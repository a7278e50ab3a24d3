package domain

import "time"

// RelevanceScore asocia una pregunta con el puntaje TF-IDF calculado para un usuario.
// Se recalcula en cada selección; la fila persistida es solo telemetría.
type RelevanceScore struct {
	ID         string    `json:"score_id"`
	QuestionID string    `json:"question_id"`
	UserID     string    `json:"user_id"`
	Score      float64   `json:"relevance_score"`
	UpdatedAt  time.Time `json:"updated_at"`
}
