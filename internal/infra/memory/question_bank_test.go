package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-party-service/internal/domain"
)

func TestQuestionBankCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(sampleQuestions()),
	}
	bank := NewQuestionBank(loader, time.Minute)

	pool, err := bank.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(pool))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := bank.Questions(context.Background()); err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionBankReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(sampleQuestions()),
	}
	bank := NewQuestionBank(loader, time.Minute)
	now := time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC)
	bank.clock = func() time.Time { return now }

	if _, err := bank.Questions(context.Background()); err != nil {
		t.Fatalf("questions: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := bank.Questions(context.Background()); err != nil {
		t.Fatalf("questions after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderRejectsEmptyPool(t *testing.T) {
	_, err := NewStaticQuestionLoader(nil).LoadQuestions(context.Background())
	if !errors.Is(err, domain.ErrQuestionsNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Type: domain.QuestionText, Question: "What is 2 + 2?", Answer: "four"},
		{ID: "q2", Type: domain.QuestionImage, Question: "Name this town", Answer: "hawkins", ImageURL: "https://example.com/town.png"},
	}
}
