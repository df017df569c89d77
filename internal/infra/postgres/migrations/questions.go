package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"trivia-party-service/internal/domain"
)

// Migrations collects every schema and seed migration of the question bank.
var Migrations = migrate.NewMigrations()

// QuestionRow is the bun model of the questions table.
type QuestionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID       string `bun:"id,pk"`
	Type     string `bun:"type,notnull"`
	Question string `bun:"question,notnull"`
	Answer   string `bun:"answer,notnull"`
	ImageURL string `bun:"image_url,nullzero"`
}

// UpsertQuestions writes questions into the questions table, replacing rows with the same id.
func UpsertQuestions(ctx context.Context, db bun.IDB, questions []domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	rows := make([]QuestionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, QuestionRow{
			ID:       q.ID,
			Type:     string(q.Type),
			Question: q.Question,
			Answer:   q.Answer,
			ImageURL: q.ImageURL,
		})
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("type = EXCLUDED.type").
		Set("question = EXCLUDED.question").
		Set("answer = EXCLUDED.answer").
		Set("image_url = EXCLUDED.image_url").
		Exec(ctx)
	return err
}
