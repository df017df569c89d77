package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trivia-party-service/internal/app"
	"trivia-party-service/internal/config"
	"trivia-party-service/internal/domain"
	"trivia-party-service/internal/infra/memory"
	mongoloader "trivia-party-service/internal/infra/mongo"
	pgloader "trivia-party-service/internal/infra/postgres"
	redisinfra "trivia-party-service/internal/infra/redis"
)

const serviceName = "trivia-party"

// backends holds the connections opened for a command. close releases all of them.
type backends struct {
	redis  *redis.Client
	pg     *pgxpool.Pool
	mongo  *mongo.Client
	loader memory.QuestionLoader
	log    logrus.FieldLogger
}

// openBackends connects to whatever the config names. Postgres wins over MongoDB as the
// question source; with neither configured the built-in demo pool is served.
func openBackends(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*backends, error) {
	b := &backends{log: log}

	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.pg = pool
		b.loader = pgloader.NewQuestionLoader(pool)
		log.Info("loading questions from postgres")
	case cfg.Mongo.URI != "":
		client, err := connectMongo(ctx, cfg)
		if err != nil {
			b.close()
			return nil, err
		}
		b.mongo = client
		b.loader = mongoloader.NewQuestionLoader(client, mongoDatabase(cfg), mongoCollection(cfg))
		log.Info("loading questions from mongodb")
	default:
		b.loader = memory.NewStaticQuestionLoader(domain.DemoQuestions())
		log.Info("serving the built-in demo questions")
	}
	return b, nil
}

func connectMongo(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func mongoDatabase(cfg config.Config) string {
	if cfg.Mongo.Database == "" {
		return "trivia"
	}
	return cfg.Mongo.Database
}

func mongoCollection(cfg config.Config) string {
	if cfg.Mongo.Collection == "" {
		return "questions"
	}
	return cfg.Mongo.Collection
}

// questionBank wraps the loader in a Redis cache when Redis is configured, otherwise an in-process one.
func (b *backends) questionBank(cfg config.Config) app.QuestionBank {
	ttl := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	if b.redis != nil {
		return redisinfra.NewQuestionBank(b.redis, b.loader, ttl)
	}
	return memory.NewQuestionBank(b.loader, ttl)
}

func (b *backends) sessionStore(cfg config.Config) app.SessionRepository {
	if b.redis != nil {
		return redisinfra.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	}
	return memory.NewSessionStore()
}

func (b *backends) close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			b.log.WithError(err).Warn("close redis")
		}
	}
	if b.pg != nil {
		b.pg.Close()
	}
	if b.mongo != nil {
		if err := b.mongo.Disconnect(context.Background()); err != nil {
			b.log.WithError(err).Warn("disconnect mongo")
		}
	}
}
