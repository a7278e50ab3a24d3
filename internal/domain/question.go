package domain

import "time"

const (
	QuestionTypeComment = "comment"
	QuestionTypeEmoji   = "emoji"
	QuestionTypeRadio   = "radio"
)

// DeferLimit es el umbral de aplazamientos tras el cual una pregunta queda fuera de rotación.
const DeferLimit = 3

type Question struct {
	ID              string     `json:"question_id"`
	QuestionText    string     `json:"question_text"`
	Category        string     `json:"category"`
	QuestionType    string     `json:"question_type"`
	DifficultyLevel int        `json:"difficulty_level"`
	LastUsedAt      *time.Time `json:"last_used_at,omitempty"`
	DeferCount      int        `json:"defer_count"`
	Skipped         bool       `json:"skipped"`
}

// IsValidQuestionType valida los tipos soportados por el ciclo de popups.
func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeComment, QuestionTypeEmoji, QuestionTypeRadio:
		return true
	}
	return false
}
