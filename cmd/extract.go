package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/its-adityagoyal/JobSummarizer/internal/ai"
	"github.com/its-adityagoyal/JobSummarizer/internal/ai/gemini"
	"github.com/its-adityagoyal/JobSummarizer/internal/ai/openrouter"
	"github.com/its-adityagoyal/JobSummarizer/internal/logger"
	"github.com/its-adityagoyal/JobSummarizer/internal/secrets"
)

const defaultOutputDir = "Output"

var extractCmd = &cobra.Command{
	Use:   "extract <pdf> [<pdf>...]",
	Short: "Extract job postings from scanned PDFs into JSON files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		extract(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output-dir", "o", "", "directory for extracted JSON files (default \"Output\")")
	extractCmd.Flags().StringP("provider", "p", "", "extraction provider: openrouter or gemini (default \"openrouter\")")

	viper.BindPFlag("extract.output-dir", extractCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("extract.provider", extractCmd.Flags().Lookup("provider"))
}

func extract(_ *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the extraction",
		zap.String("version", version),
		zap.Int("pdf_count", len(args)),
	)

	extractor, err := newExtractor(ctx, config.Extract, logger)
	if err != nil {
		logger.Fatal("building extractor", zap.Error(err))
	}

	outputDir := strings.TrimSpace(config.Extract.OutputDir)
	if outputDir == "" {
		outputDir = defaultOutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Fatal("creating output directory", zap.Error(err))
	}

	failed := 0
	for _, pdfPath := range args {
		outputPath := filepath.Join(outputDir, fileStem(pdfPath)+".json")

		raw, err := extractor.ExtractJobDetails(ctx, pdfPath)
		if err != nil {
			failed++
			logger.Error("extraction failed",
				zap.String("pdf", pdfPath),
				zap.Error(err),
			)
			continue
		}

		if err := os.WriteFile(outputPath, []byte(raw), 0o644); err != nil {
			failed++
			logger.Error("writing extracted output",
				zap.String("path", outputPath),
				zap.Error(err),
			)
			continue
		}

		logger.Info("extracted job details saved",
			zap.String("pdf", pdfPath),
			zap.String("output", outputPath),
		)
	}

	logger.Info("extraction finished",
		zap.Int("succeeded", len(args)-failed),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		os.Exit(1)
	}
}

// newExtractor builds the configured extraction provider. OpenRouter is the
// default; the API key is resolved from the config file, a key file or the
// environment.
func newExtractor(ctx context.Context, cfg *ExtractConfig, logger *zap.Logger) (ai.Extractor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "openrouter":
		orCfg := cfg.OpenRouter
		if orCfg == nil {
			orCfg = &OpenRouterConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openrouter api key",
			Value: orCfg.APIKey,
			File:  orCfg.APIKeyFile,
			Env:   envOpenRouterKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set extract.openrouter.api-key or %s)", err, envOpenRouterKey)
		}

		return openrouter.New(apiKey, orCfg.Model, orCfg.MaxRetries, logger), nil

	case "gemini":
		gemCfg := cfg.Gemini
		if gemCfg == nil {
			gemCfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gemCfg.APIKey,
			File:  gemCfg.APIKeyFile,
			Env:   envGeminiKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set extract.gemini.api-key or %s)", err, envGeminiKey)
		}

		return gemini.New(ctx, apiKey, gemCfg.Model, gemCfg.EmbeddingModel, gemCfg.MaxRetries, logger)

	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", cfg.Provider)
	}
}

// fileStem returns the file name without directory and extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
