package service

import (
	"strings"

	"github.com/jonreiter/govader"

	"pulsebot/internal/domain"
)

// Umbrales fijos del diseño: zona muerta de ancho 0.10 centrada en cero.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// SentimentClassifier etiqueta texto libre con un sentimiento de tres vías usando
// el léxico VADER. El analizador se construye una vez y después es solo lectura,
// por lo que puede compartirse entre requests concurrentes.
type SentimentClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewSentimentClassifier() *SentimentClassifier {
	return &SentimentClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Classify devuelve Positive, Negative o Neutral según el puntaje compuesto.
// Entrada vacía o solo espacios cuenta como señal cero: Neutral, nunca error.
func (c *SentimentClassifier) Classify(text string) string {
	if c == nil || c.analyzer == nil {
		return domain.SentimentNeutral
	}
	if strings.TrimSpace(text) == "" {
		return domain.SentimentNeutral
	}
	score := c.analyzer.PolarityScores(text)
	return classifyCompound(score.Compound)
}

func classifyCompound(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return domain.SentimentPositive
	case compound <= negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
