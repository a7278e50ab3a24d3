package service

import (
	"testing"

	"pulsebot/internal/domain"
)

func TestClassifyCompoundBoundaries(t *testing.T) {
	cases := []struct {
		compound float64
		want     string
	}{
		{0.05, domain.SentimentPositive},
		{-0.05, domain.SentimentNegative},
		{0.0, domain.SentimentNeutral},
		{0.049, domain.SentimentNeutral},
		{-0.049, domain.SentimentNeutral},
		{0.9, domain.SentimentPositive},
		{-0.9, domain.SentimentNegative},
	}
	for _, c := range cases {
		if got := classifyCompound(c.compound); got != c.want {
			t.Fatalf("compound %v: expected %s, got %s", c.compound, c.want, got)
		}
	}
}

func TestClassifyLabelsText(t *testing.T) {
	classifier := NewSentimentClassifier()

	if got := classifier.Classify("I love this, it is wonderful and great!"); got != domain.SentimentPositive {
		t.Fatalf("expected Positive, got %s", got)
	}
	if got := classifier.Classify("I hate this, it is terrible and awful."); got != domain.SentimentNegative {
		t.Fatalf("expected Negative, got %s", got)
	}
	if got := classifier.Classify("The report is on the table."); got != domain.SentimentNeutral {
		t.Fatalf("expected Neutral, got %s", got)
	}
}

func TestClassifyAlwaysReturnsOneOfThreeLabels(t *testing.T) {
	classifier := NewSentimentClassifier()
	inputs := []string{
		"waiting times are too long",
		"ok",
		"1234 !!!",
		"meh",
		"absolutely fantastic experience",
	}
	for _, input := range inputs {
		got := classifier.Classify(input)
		if got != domain.SentimentPositive && got != domain.SentimentNegative && got != domain.SentimentNeutral {
			t.Fatalf("input %q: unexpected label %q", input, got)
		}
	}
}

func TestClassifyEmptyInputIsNeutral(t *testing.T) {
	classifier := NewSentimentClassifier()

	if got := classifier.Classify(""); got != domain.SentimentNeutral {
		t.Fatalf("expected Neutral for empty input, got %s", got)
	}
	if got := classifier.Classify("   \t\n"); got != domain.SentimentNeutral {
		t.Fatalf("expected Neutral for whitespace input, got %s", got)
	}

	var nilClassifier *SentimentClassifier
	if got := nilClassifier.Classify("anything"); got != domain.SentimentNeutral {
		t.Fatalf("expected Neutral for nil classifier, got %s", got)
	}
}
