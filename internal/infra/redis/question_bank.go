package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-party-service/internal/domain"
)

// QuestionLoader fetches the question pool from a backing store (e.g., Postgres, MongoDB).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionBank caches the question pool in Redis and falls back to a loader on cache miss.
// Questions are stored as: HSET trivia:questions {questionID} {question JSON}
type QuestionBank struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *QuestionBank) Questions(ctx context.Context) ([]domain.Question, error) {
	if pool, ok := b.cached(ctx); ok {
		return pool, nil
	}

	result, err, _ := b.sf.Do(questionsKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := b.cached(ctx); ok {
			return pool, nil
		}

		pool, err := b.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		pipe := b.client.Pipeline()
		for _, q := range pool {
			data, err := json.Marshal(q)
			if err != nil {
				return nil, fmt.Errorf("marshal question %s: %w", q.ID, err)
			}
			pipe.HSet(ctx, questionsKey, q.ID, data)
		}
		if ttl := b.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, questionsKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

const questionsKey = "trivia:questions"

// cached reads the pool back from Redis; entries that fail to decode count as a miss.
func (b *QuestionBank) cached(ctx context.Context) ([]domain.Question, bool) {
	entries, err := b.client.HGetAll(ctx, questionsKey).Result()
	if err != nil || len(entries) == 0 {
		return nil, false
	}
	pool := make([]domain.Question, 0, len(entries))
	for _, raw := range entries {
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, false
		}
		pool = append(pool, q)
	}
	sortByID(pool)
	return pool, true
}

// sortByID keeps hash iteration order out of the result; numeric IDs sort numerically.
func sortByID(pool []domain.Question) {
	sort.Slice(pool, func(i, j int) bool {
		a, errA := strconv.Atoi(pool[i].ID)
		b, errB := strconv.Atoi(pool[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		return pool[i].ID < pool[j].ID
	})
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	jitterMax := int64(b.ttl) / 10
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}
