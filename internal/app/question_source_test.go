package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-party-service/internal/app"
	"trivia-party-service/internal/domain"
)

func TestPickUnusedSkipsUsedQuestions(t *testing.T) {
	source := app.NewQuestionSourceWithRand(testPool(3), rand.New(rand.NewSource(3)))
	used := map[string]struct{}{}

	for i := 0; i < 3; i++ {
		q, ok := source.PickUnused(used)
		require.True(t, ok)
		assert.NotContains(t, used, q.ID)
		used[q.ID] = struct{}{}
	}

	_, ok := source.PickUnused(used)
	assert.False(t, ok, "pool should be exhausted")
}

func TestPickUnusedCoversWholePool(t *testing.T) {
	source := app.NewQuestionSourceWithRand(testPool(4), rand.New(rand.NewSource(11)))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		q, ok := source.PickUnused(nil)
		require.True(t, ok)
		seen[q.ID] = true
	}
	assert.Len(t, seen, 4)
}

func TestQuestionSourceCopiesPool(t *testing.T) {
	pool := testPool(1)
	source := app.NewQuestionSource(pool)
	pool[0].Answer = "changed"

	q, ok := source.PickUnused(nil)
	require.True(t, ok)
	assert.Equal(t, "Answer 1", q.Answer)
	assert.Equal(t, 1, source.Size())
}

type staticBank struct {
	questions []domain.Question
	err       error
}

func (b staticBank) Questions(context.Context) ([]domain.Question, error) {
	return b.questions, b.err
}

func TestLoadQuestionSource(t *testing.T) {
	ctx := context.Background()

	source, err := app.LoadQuestionSource(ctx, staticBank{questions: domain.DemoQuestions()})
	require.NoError(t, err)
	assert.Equal(t, 12, source.Size())

	_, err = app.LoadQuestionSource(ctx, staticBank{})
	assert.ErrorIs(t, err, domain.ErrNoQuestions)

	boom := errors.New("boom")
	_, err = app.LoadQuestionSource(ctx, staticBank{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestGenerateRoomCode(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		code := app.GenerateRoomCode(rnd)
		assert.Len(t, code, app.RoomCodeLength)
		assert.True(t, app.IsRoomCode(code), code)
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "1")
	}

	assert.True(t, app.IsRoomCode("abcde"))
	assert.False(t, app.IsRoomCode("ABCD"))
	assert.False(t, app.IsRoomCode("ABCD0"))
}

func TestUUIDGeneratorIsUnique(t *testing.T) {
	gen := app.UUIDGenerator{}
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}
