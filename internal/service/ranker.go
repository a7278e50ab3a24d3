package service

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"pulsebot/internal/domain"
)

// RankedQuestion es el par (pregunta, puntaje) que produce el ranker.
type RankedQuestion struct {
	Question domain.Question `json:"question"`
	Score    float64         `json:"score"`
}

// RelevanceRanker ordena preguntas candidatas contra el historial de feedback de
// un usuario usando un espacio TF-IDF conjunto. El espacio se ajusta en cada
// llamada porque el corpus cambia por request; no hay índice persistente ni
// estado mutable compartido.
type RelevanceRanker struct{}

// Rank devuelve las candidatas en orden descendente de puntaje. El puntaje de
// una pregunta es la suma de sus pesos TF-IDF sobre el vocabulario que comparte
// con el corpus de feedback. Empates conservan el orden de entrada, así la
// selección es determinista; sin términos compartidos el orden de entrada se
// mantiene intacto.
func (RelevanceRanker) Rank(feedbackTexts []string, candidates []domain.Question) []RankedQuestion {
	ranked := make([]RankedQuestion, len(candidates))
	for i, q := range candidates {
		ranked[i] = RankedQuestion{Question: q}
	}
	if len(candidates) == 0 || len(feedbackTexts) == 0 {
		return ranked
	}

	// Corpus conjunto: feedback primero, luego los textos de las preguntas.
	docs := make([][]string, 0, len(feedbackTexts)+len(candidates))
	for _, text := range feedbackTexts {
		docs = append(docs, tokenize(text))
	}
	for _, q := range candidates {
		docs = append(docs, tokenize(q.QuestionText))
	}

	idf := inverseDocumentFrequencies(docs)

	feedbackVocab := make(map[string]struct{})
	for _, doc := range docs[:len(feedbackTexts)] {
		for _, term := range doc {
			feedbackVocab[term] = struct{}{}
		}
	}

	for i := range candidates {
		doc := docs[len(feedbackTexts)+i]
		terms, weights := tfidfWeights(doc, idf)

		// Sumar en orden de aparición: la suma de flotantes depende del orden
		// y el ranking debe ser reproducible bit a bit entre llamadas.
		var sum float64
		for _, term := range terms {
			if _, shared := feedbackVocab[term]; shared {
				sum += weights[term]
			}
		}
		ranked[i].Score = sum
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked
}

// inverseDocumentFrequencies calcula idf suavizado: ln((1+n)/(1+df)) + 1.
func inverseDocumentFrequencies(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// tfidfWeights produce el vector tf*idf del documento, normalizado L2.
// Devuelve además los términos únicos en orden de aparición para que los
// recorridos posteriores sean deterministas.
func tfidfWeights(doc []string, idf map[string]float64) ([]string, map[string]float64) {
	tf := make(map[string]int, len(doc))
	var terms []string
	for _, term := range doc {
		if _, seen := tf[term]; !seen {
			terms = append(terms, term)
		}
		tf[term]++
	}

	weights := make(map[string]float64, len(tf))
	var sumSquares float64
	for _, term := range terms {
		w := float64(tf[term]) * idf[term]
		weights[term] = w
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return terms, weights
	}

	norm := math.Sqrt(sumSquares)
	for _, term := range terms {
		weights[term] /= norm
	}
	return terms, weights
}

// tokenize baja a minúsculas y extrae términos de al menos dos caracteres
// alfanuméricos, igual que el tokenizador por defecto del vectorizador original.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	var runes int

	flush := func() {
		if runes >= 2 {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		runes = 0
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()
	return tokens
}
