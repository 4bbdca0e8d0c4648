package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/embedding"
	"github.com/spigell/skillscreen/internal/engine"
	"github.com/spigell/skillscreen/internal/logger"
	"github.com/spigell/skillscreen/internal/secrets"
)

// session bundles what every command needs: config, logger and a ready engine.
type session struct {
	config   *Config
	logger   *zap.Logger
	engine   *engine.Engine
	embedder embedding.Embedder
}

func newSession(ctx context.Context) (*session, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, err
	}

	dict, err := dictionary.Load(config.Dictionary)
	if err != nil {
		return nil, err
	}

	embedder, model, err := newEmbedder(ctx, config, log)
	if err != nil {
		return nil, err
	}

	log = logger.WithEngineFields(log, dict.Version(), embedder.Name(), model)

	eng, err := engine.New(dict, embedder, config.EngineConfig(), log)
	if err != nil {
		return nil, err
	}

	return &session{config: config, logger: log, engine: eng, embedder: embedder}, nil
}

// newEmbedder builds the configured backend. Gemini always falls back to the
// local embedder so a lost API never stops a batch. Results are cached per text.
func newEmbedder(ctx context.Context, config *Config, log *zap.Logger) (embedding.Embedder, string, error) {
	local := embedding.NewLocal(config.Embedding.Local.Dimensions)

	provider := strings.TrimSpace(strings.ToLower(config.Embedding.Provider))
	switch provider {
	case "", embedding.LocalName:
		return embedding.NewCached(local), "", nil
	case embedding.GeminiName:
	default:
		return nil, "", fmt.Errorf("unsupported embedding provider: %s", config.Embedding.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Embedding.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w (set embedding.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	gemini, err := embedding.NewGemini(ctx, apiKey, config.Embedding.Gemini.Model, config.Embedding.Gemini.Dimensions)
	if err != nil {
		return nil, "", err
	}

	fallbackLogger := log.With(
		zap.String("provider", embedding.GeminiName),
		zap.String("model", gemini.Model()),
		zap.Int("retry_attempts", config.Embedding.Gemini.MaxRetries),
	)

	chain := embedding.NewFallback(gemini, local, config.Embedding.Gemini.MaxRetries, fallbackLogger)
	return embedding.NewCached(chain), gemini.Model(), nil
}
