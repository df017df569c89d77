package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trivia-party-service/internal/domain"
)

// QuestionLoader loads the question pool from a MongoDB collection.
// Documents use the domain.Question bson layout with the question id as _id.
type QuestionLoader struct {
	collection *mongo.Collection
}

func NewQuestionLoader(client *mongo.Client, database, collection string) *QuestionLoader {
	return &QuestionLoader{
		collection: client.Database(database).Collection(collection),
	}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	cursor, err := l.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []domain.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrQuestionsNotFound
	}
	for i := range questions {
		if questions[i].Type == "" {
			questions[i].Type = domain.QuestionText
		}
	}
	return questions, nil
}

// SeedQuestions upserts questions into the collection, keyed by id.
func (l *QuestionLoader) SeedQuestions(ctx context.Context, questions []domain.Question) error {
	for _, q := range questions {
		_, err := l.collection.ReplaceOne(ctx, bson.M{"_id": q.ID}, q, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}
	return nil
}
