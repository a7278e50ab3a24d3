package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"pulsebot/internal/config"
	"pulsebot/internal/db"
	"pulsebot/internal/domain"
	"pulsebot/internal/repository"
)

// Bootstrap de esquema y preguntas de ejemplo para ambientes locales.

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		employee_id TEXT UNIQUE NOT NULL,
		full_name TEXT NOT NULL,
		ads_id TEXT UNIQUE NOT NULL,
		manager_id TEXT NOT NULL,
		manager_name TEXT NOT NULL,
		manager_email_hash TEXT NOT NULL,
		department TEXT NOT NULL,
		band TEXT NOT NULL,
		job_title TEXT NOT NULL,
		is_active BOOLEAN DEFAULT TRUE,
		email_hash TEXT UNIQUE NOT NULL,
		created_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		question_id UUID PRIMARY KEY,
		question_text TEXT NOT NULL,
		category TEXT NOT NULL,
		question_type TEXT NOT NULL,
		difficulty_level INTEGER NOT NULL,
		last_used_at TIMESTAMPTZ,
		defer_count INTEGER NOT NULL DEFAULT 0,
		skipped BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS responses (
		response_id UUID PRIMARY KEY,
		question_id UUID NOT NULL REFERENCES questions(question_id),
		user_id UUID REFERENCES users(user_id),
		response_text TEXT,
		response_emoji INTEGER,
		response_radio TEXT,
		sentiment TEXT,
		submitted_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ml_question_scores (
		score_id UUID PRIMARY KEY,
		question_id UUID NOT NULL REFERENCES questions(question_id),
		user_id UUID NOT NULL REFERENCES users(user_id),
		relevance_score DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ DEFAULT now(),
		UNIQUE (question_id, user_id)
	)`,
}

var sampleQuestions = []domain.Question{
	{QuestionText: "How do you feel about your current workload?", Category: "workload", QuestionType: domain.QuestionTypeComment, DifficultyLevel: 1},
	{QuestionText: "What is slowing your team down this week?", Category: "process", QuestionType: domain.QuestionTypeComment, DifficultyLevel: 2},
	{QuestionText: "Are waiting times for approvals acceptable?", Category: "process", QuestionType: domain.QuestionTypeComment, DifficultyLevel: 3},
	{QuestionText: "How was your day overall?", Category: "mood", QuestionType: domain.QuestionTypeEmoji, DifficultyLevel: 1},
	{QuestionText: "How satisfied are you with team communication?", Category: "communication", QuestionType: domain.QuestionTypeEmoji, DifficultyLevel: 2},
	{QuestionText: "Would you recommend this team to a colleague?", Category: "engagement", QuestionType: domain.QuestionTypeRadio, DifficultyLevel: 1},
	{QuestionText: "Do you have the tools you need to do your job?", Category: "tooling", QuestionType: domain.QuestionTypeRadio, DifficultyLevel: 2},
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	questionRepo := repository.NewPgQuestionRepository(pool)
	for _, q := range sampleQuestions {
		q.ID = uuid.NewString()
		if err := questionRepo.Create(ctx, q); err != nil {
			log.Fatalf("seed question %q: %v", q.QuestionText, err)
		}
	}

	log.Printf("seeded %d questions", len(sampleQuestions))
}
