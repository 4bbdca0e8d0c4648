package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skillscreen/internal/embedding"
	"github.com/spigell/skillscreen/internal/engine"
	"github.com/spigell/skillscreen/internal/filtering"
	"github.com/spigell/skillscreen/internal/matching"
	"github.com/spigell/skillscreen/internal/scoring"
	"github.com/spigell/skillscreen/internal/skills"
)

const (
	app       = "skillscreen"
	envPrefix = "SKILLSCREEN"
)

type Config struct {
	Dictionary string           `mapstructure:"dictionary"`
	Embedding  EmbeddingConfig  `mapstructure:"embedding"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Scoring    scoring.Policy   `mapstructure:"scoring"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Filters    filtering.Config `mapstructure:"filters"`
}

type EmbeddingConfig struct {
	Provider string       `mapstructure:"provider" validate:"oneof=local gemini"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
	Local    LocalConfig  `mapstructure:"local"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	Dimensions int    `mapstructure:"dimensions" validate:"gte=0"`
}

type LocalConfig struct {
	Dimensions int `mapstructure:"dimensions" validate:"gte=0"`
}

type MatchingConfig struct {
	ShortPhraseThreshold    float64 `mapstructure:"short-phrase-threshold" validate:"gt=0,lte=1"`
	LongPhraseThreshold     float64 `mapstructure:"long-phrase-threshold" validate:"gt=0,lte=1"`
	ShortPhraseMaxWords     int     `mapstructure:"short-phrase-max-words" validate:"gte=1"`
	FallbackThreshold       float64 `mapstructure:"fallback-threshold" validate:"gt=0,lte=1"`
	MinExtractedSkills      int     `mapstructure:"min-extracted-skills" validate:"gte=0"`
	PhraseRecoveryMinSkills int     `mapstructure:"phrase-recovery-min-skills" validate:"gte=0"`
}

type BatchConfig struct {
	Workers int           `mapstructure:"workers" validate:"gte=1,lte=64"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// EngineConfig converts the matching, scoring and batch sections for the engine.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Thresholds: matching.Thresholds{
			Short:         c.Matching.ShortPhraseThreshold,
			Long:          c.Matching.LongPhraseThreshold,
			ShortMaxWords: c.Matching.ShortPhraseMaxWords,
		},
		Extraction: skills.ExtractorConfig{
			FallbackThreshold: c.Matching.FallbackThreshold,
			MinSkills:         c.Matching.MinExtractedSkills,
			RecoveryMinSkills: c.Matching.PhraseRecoveryMinSkills,
		},
		Policy:  c.Scoring,
		Workers: c.Batch.Workers,
	}
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillscreen ranks resumes against job descriptions by skill evidence",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults()

	if err := viper.BindEnv("embedding.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillscreen.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("dictionary", "", "skill dictionary file (default is the bundled dictionary)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("dictionary", rootCmd.PersistentFlags().Lookup("dictionary"))
}

func setDefaults() {
	thresholds := matching.DefaultThresholds()
	extraction := skills.DefaultExtractorConfig()
	policy := scoring.DefaultPolicy()

	viper.SetDefault("dictionary", "")
	viper.SetDefault("embedding.provider", embedding.LocalName)
	viper.SetDefault("embedding.gemini.api-key-file", "")
	viper.SetDefault("embedding.gemini.model", embedding.DefaultGeminiModel)
	viper.SetDefault("embedding.gemini.max-retries", 2)
	viper.SetDefault("embedding.gemini.dimensions", 0)
	viper.SetDefault("embedding.local.dimensions", embedding.DefaultLocalDimensions)
	viper.SetDefault("matching.short-phrase-threshold", thresholds.Short)
	viper.SetDefault("matching.long-phrase-threshold", thresholds.Long)
	viper.SetDefault("matching.short-phrase-max-words", thresholds.ShortMaxWords)
	viper.SetDefault("matching.fallback-threshold", extraction.FallbackThreshold)
	viper.SetDefault("matching.min-extracted-skills", extraction.MinSkills)
	viper.SetDefault("matching.phrase-recovery-min-skills", extraction.RecoveryMinSkills)
	viper.SetDefault("scoring.good", policy.Good)
	viper.SetDefault("scoring.partial", policy.Partial)
	viper.SetDefault("batch.workers", engine.DefaultWorkers)
	viper.SetDefault("batch.timeout", 10*time.Minute)
	viper.SetDefault("filters.require-role", false)
	viper.SetDefault("filters.exclude-file", "")
	viper.SetDefault("filters.minimum-verdict", "")
	viper.SetDefault("filters.dedupe-contacts", false)
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional, but an existing one must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if config.Matching.LongPhraseThreshold < config.Matching.ShortPhraseThreshold {
		return errors.New("invalid config: matching.long-phrase-threshold must not be below matching.short-phrase-threshold")
	}

	return nil
}
