package domain

import "time"

// Etiquetas de sentimiento producidas por el clasificador léxico.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

type Response struct {
	ID            string    `json:"response_id"`
	QuestionID    string    `json:"question_id"`
	UserID        string    `json:"user_id,omitempty"`
	ResponseText  string    `json:"response_text,omitempty"`
	ResponseEmoji *int      `json:"response_emoji,omitempty"`
	ResponseRadio string    `json:"response_radio,omitempty"`
	Sentiment     string    `json:"sentiment,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// HasPayload indica si la respuesta trae al menos un contenido (texto, emoji o radio).
func (r Response) HasPayload() bool {
	return r.ResponseText != "" || r.ResponseEmoji != nil || r.ResponseRadio != ""
}
