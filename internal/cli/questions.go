package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"trivia-party-service/internal/config"
	"trivia-party-service/internal/domain"
	mongoloader "trivia-party-service/internal/infra/mongo"
	"trivia-party-service/internal/logging"
)

// NewQuestionsCmd groups question pool maintenance commands.
func NewQuestionsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Inspect or seed the question pool",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the pool the server would load, as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listQuestions(cmd.Context(), *configPath, cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "seed-mongo",
		Short: "Upsert the demo questions into the configured MongoDB collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedMongo(cmd.Context(), *configPath)
		},
	})
	return cmd
}

func listQuestions(ctx context.Context, configPath string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(serviceName, cfg.Log.Level)

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	pool, err := b.questionBank(cfg).Questions(ctx)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		return domain.ErrNoQuestions
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(pool)
}

func seedMongo(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("mongo uri not configured")
	}
	log := logging.New(serviceName, cfg.Log.Level)

	client, err := connectMongo(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("disconnect mongo")
		}
	}()

	questions := domain.DemoQuestions()
	loader := mongoloader.NewQuestionLoader(client, mongoDatabase(cfg), mongoCollection(cfg))
	if err := loader.SeedQuestions(ctx, questions); err != nil {
		return err
	}
	log.WithField("count", len(questions)).Info("seeded mongo questions")
	return nil
}
