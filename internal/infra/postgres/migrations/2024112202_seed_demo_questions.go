package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"trivia-party-service/internal/domain"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			return UpsertQuestions(ctx, db, domain.DemoQuestions())
		},
		func(ctx context.Context, db *bun.DB) error {
			demo := domain.DemoQuestions()
			ids := make([]string, 0, len(demo))
			for _, q := range demo {
				ids = append(ids, q.ID)
			}
			_, err := db.NewDelete().
				Model((*QuestionRow)(nil)).
				Where("id IN (?)", bun.In(ids)).
				Exec(ctx)
			return err
		},
	)
}
