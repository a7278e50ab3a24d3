package service

import "pulsebot/internal/domain"

// EligibleQuestions filtra el snapshot recibido: tipo solicitado, no saltadas y
// con menos de domain.DeferLimit aplazamientos acumulados. Filtro puro sin
// efectos; un resultado vacío significa "no hay pregunta disponible ahora", no
// un error.
func EligibleQuestions(questions []domain.Question, questionType string) []domain.Question {
	var eligible []domain.Question
	for _, q := range questions {
		if q.QuestionType != questionType {
			continue
		}
		if q.Skipped {
			continue
		}
		if q.DeferCount >= domain.DeferLimit {
			continue
		}
		eligible = append(eligible, q)
	}
	return eligible
}
