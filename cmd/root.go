package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/formfiller/resume-matcher/internal/ai"
	"github.com/formfiller/resume-matcher/internal/ai/gemini"
	"github.com/formfiller/resume-matcher/internal/logger"
	"github.com/formfiller/resume-matcher/internal/match"
	"github.com/formfiller/resume-matcher/internal/secrets"
	"github.com/formfiller/resume-matcher/internal/store"
	"github.com/formfiller/resume-matcher/internal/textnorm"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "resume-matcher"

	defaultModelFile = "models/form_model.json"
	defaultStorePath = "resume-matcher.db"
)

type Config struct {
	Matcher    *MatcherConfig    `mapstructure:"matcher"`
	Gemini     *GeminiConfig     `mapstructure:"gemini"`
	Classifier *ClassifierConfig `mapstructure:"classifier"`
	Skills     *SkillsConfig     `mapstructure:"skills"`
	Store      *StoreConfig      `mapstructure:"store"`
	Selector   *SelectorConfig   `mapstructure:"selector"`
}

type MatcherConfig struct {
	Method string `mapstructure:"method"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type ClassifierConfig struct {
	ModelFile string `mapstructure:"model-file"`
}

type SkillsConfig struct {
	TermsFile string `mapstructure:"terms-file"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type SelectorConfig struct {
	BumpTerms map[string]float64 `mapstructure:"bump-terms"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher scores resumes against job descriptions and classifies form field labels",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini-api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// Every command works with built-in defaults, so a missing config file is
	// only fatal when one was requested explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Matcher == nil {
		config.Matcher = &MatcherConfig{}
	}
	if config.Matcher.Method == "" {
		config.Matcher.Method = match.MethodLexical
	}
	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}
	if config.Classifier == nil {
		config.Classifier = &ClassifierConfig{}
	}
	if config.Classifier.ModelFile == "" {
		config.Classifier.ModelFile = defaultModelFile
	}
	if config.Skills == nil {
		config.Skills = &SkillsConfig{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
	if config.Store.Path == "" {
		config.Store.Path = defaultStorePath
	}
	if config.Selector == nil {
		config.Selector = &SelectorConfig{}
	}

	return config, nil
}

func newLogger() *zap.Logger {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return logger
}

func openStore(ctx context.Context, config *Config) (*store.Store, error) {
	return store.Open(ctx, config.Store.Path)
}

// newMatcherFactory builds the matching strategies. A failed embedding backend
// is not fatal: the factory degrades to lexical-only matching.
func newMatcherFactory(ctx context.Context, config *Config, logger *zap.Logger) (*match.Factory, error) {
	normalizer, err := textnorm.New()
	if err != nil {
		return nil, err
	}

	encoder := newEncoder(ctx, config.Gemini, logger)
	return match.NewFactory(normalizer, encoder, logger), nil
}

func newEncoder(ctx context.Context, cfg *GeminiConfig, logger *zap.Logger) ai.Encoder {
	apiKey, err := resolveGeminiKey(cfg)
	if err != nil {
		logger.Warn("semantic matching disabled",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the 'gemini.api-key-file' key in the configuration file"),
		)
		return nil
	}

	encoder, err := gemini.NewEncoder(ctx, apiKey, cfg.Model)
	if err != nil {
		logger.Warn("semantic matching disabled", zap.Error(err))
		return nil
	}
	return encoder
}

func resolveGeminiKey(cfg *GeminiConfig) (string, error) {
	keyFile := cfg.APIKeyFile
	if keyFile == "" {
		keyFile = viper.GetString("gemini-api-key-file")
	}
	if keyFile == "" {
		return "", errors.New("gemini api key file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
}
