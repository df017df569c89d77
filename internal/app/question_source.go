package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"trivia-party-service/internal/domain"
)

// QuestionPicker yields a question whose ID is not in used, or false when the pool is exhausted.
type QuestionPicker interface {
	PickUnused(used map[string]struct{}) (domain.Question, bool)
}

// QuestionBank loads the question pool from a backing store (cache, database, static data).
type QuestionBank interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// QuestionSource is a fixed pool of questions with uniform random selection.
type QuestionSource struct {
	pool []domain.Question

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionSource(pool []domain.Question) *QuestionSource {
	return NewQuestionSourceWithRand(pool, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionSourceWithRand allows deterministic selection in tests.
func NewQuestionSourceWithRand(pool []domain.Question, rnd *rand.Rand) *QuestionSource {
	frozen := make([]domain.Question, len(pool))
	copy(frozen, pool)
	return &QuestionSource{pool: frozen, rnd: rnd}
}

// LoadQuestionSource reads the bank once and freezes the result into a QuestionSource.
func LoadQuestionSource(ctx context.Context, bank QuestionBank) (*QuestionSource, error) {
	pool, err := bank.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(pool) == 0 {
		return nil, domain.ErrNoQuestions
	}
	return NewQuestionSource(pool), nil
}

func (q *QuestionSource) PickUnused(used map[string]struct{}) (domain.Question, bool) {
	available := make([]domain.Question, 0, len(q.pool))
	for _, question := range q.pool {
		if _, seen := used[question.ID]; !seen {
			available = append(available, question)
		}
	}
	if len(available) == 0 {
		return domain.Question{}, false
	}

	q.mu.Lock()
	idx := q.rnd.Intn(len(available))
	q.mu.Unlock()
	return available[idx], true
}

// Size reports how many questions the pool holds.
func (q *QuestionSource) Size() int {
	return len(q.pool)
}
