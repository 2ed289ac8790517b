package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobsummarizer"

	envOpenRouterKey = "OPENROUTER_API_KEY"
	envGeminiKey     = "GEMINI_API_KEY"
)

type Config struct {
	Extract  *ExtractConfig  `mapstructure:"extract"`
	Evaluate *EvaluateConfig `mapstructure:"evaluate"`
}

type ExtractConfig struct {
	// Provider selects the extraction backend: openrouter (default) or gemini.
	Provider   string            `mapstructure:"provider"`
	OutputDir  string            `mapstructure:"output-dir"`
	OpenRouter *OpenRouterConfig `mapstructure:"openrouter"`
	Gemini     *GeminiConfig     `mapstructure:"gemini"`
}

type OpenRouterConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
	MaxRetries     int    `mapstructure:"max-retries"`
}

type EvaluateConfig struct {
	Threshold    int    `mapstructure:"threshold"`
	ExpectedFile string `mapstructure:"expected-file"`
	HistoryFile  string `mapstructure:"history-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobsummarizer extracts job postings from scanned PDFs via an LLM and evaluates the extraction quality",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// API keys may live in a .env file next to the binary, as well as in the
	// environment or the config file.
	_ = godotenv.Load()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobsummarizer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	// The default config file is optional: both commands can run on flags,
	// environment variables and built-in defaults alone.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Extract == nil {
		config.Extract = &ExtractConfig{}
	}
	if config.Evaluate == nil {
		config.Evaluate = &EvaluateConfig{}
	}

	return config, nil
}
