package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/its-adityagoyal/JobSummarizer/internal/ai"
	"github.com/its-adityagoyal/JobSummarizer/internal/ai/gemini"
	"github.com/its-adityagoyal/JobSummarizer/internal/evaluation"
	"github.com/its-adityagoyal/JobSummarizer/internal/expected"
	"github.com/its-adityagoyal/JobSummarizer/internal/fuzzy"
	"github.com/its-adityagoyal/JobSummarizer/internal/logger"
	"github.com/its-adityagoyal/JobSummarizer/internal/record"
	"github.com/its-adityagoyal/JobSummarizer/internal/results"
	"github.com/its-adityagoyal/JobSummarizer/internal/secrets"
	"github.com/its-adityagoyal/JobSummarizer/internal/similarity"
)

const (
	PromptShowFailures = "Show failed fields"
	PromptDumpReport   = "Dump report to file"
	PromptExit         = "Exit"
)

var reportPrompt = promptui.Select{
	Label: "Evaluation finished",
	Items: []string{PromptShowFailures, PromptDumpReport, PromptExit},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <extracted.json>",
	Short: "Compare an extracted JSON file against expected values",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		evaluate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("baseline", "b", "", "second extracted JSON file to compute embedding similarity against")
	evaluateCmd.Flags().BoolP("auto-approve", "y", false, "do not show the interactive report menu")
	evaluateCmd.Flags().IntP("threshold", "t", 0, "inclusive fuzzy pass mark 1-100 (default 50)")

	viper.BindPFlag("evaluate.threshold", evaluateCmd.Flags().Lookup("threshold"))
}

func evaluate(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	path := args[0]
	stem := fileStem(path)

	logger.Info("starting the evaluation",
		zap.String("version", version),
		zap.String("file", path),
	)

	entries, err := record.LoadEntries(path)
	if err != nil {
		logger.Warn("no data to evaluate", zap.String("file", path), zap.Error(err))
		return
	}
	if len(entries) == 0 {
		logger.Warn("no data to evaluate", zap.String("file", path), zap.String("reason", "file holds an empty list"))
		return
	}

	expectations := expected.Load(config.Evaluate.ExpectedFile, logger)

	consolidated := evaluation.Consolidate(entries, evaluation.Fields)
	report := evaluation.Run(
		stem,
		evaluation.Fields,
		consolidated,
		expectations.ForFile(stem, logger),
		config.Evaluate.Threshold,
		fuzzy.TokenSetRatio,
		logger,
	)

	logger.Info("evaluation finished",
		zap.Int("passed", report.Passed()),
		zap.Int("failed", report.Failed()),
		zap.Int("skipped", report.Skipped()),
	)

	simScore := scoreAgainstBaseline(ctx, cmd, config, entries, logger)

	recordHistory(config.Evaluate.HistoryFile, report, cmd.Flag("baseline").Value.String(), simScore, logger)

	if cmd.Flag("auto-approve").Value.String() == "false" {
		runReportMenu(report, logger)
	}

	if report.Failed() > 0 {
		os.Exit(1)
	}
}

// scoreAgainstBaseline computes the embedding similarity percentage between
// the evaluated entries and the baseline file, when one was requested. Any
// failure only disables the score; it never aborts the evaluation.
func scoreAgainstBaseline(ctx context.Context, cmd *cobra.Command, config *Config, entries []record.Record, logger *zap.Logger) *float64 {
	baseline := cmd.Flag("baseline").Value.String()
	if baseline == "" {
		return nil
	}

	baseEntries, err := record.LoadEntries(baseline)
	if err != nil {
		logger.Warn("skipping similarity score", zap.String("baseline", baseline), zap.Error(err))
		return nil
	}

	embedder, err := newEmbedder(ctx, config.Extract, logger)
	if err != nil {
		logger.Warn("skipping similarity score", zap.Error(err))
		return nil
	}

	score, err := similarity.NewScorer(embedder, logger).MaxPairwise(ctx, entries, baseEntries)
	if err != nil {
		if errors.Is(err, similarity.ErrNoEntries) {
			logger.Warn("skipping similarity score", zap.String("reason", "nothing to compare"))
		} else {
			logger.Warn("similarity scoring failed", zap.Error(err))
		}
		return nil
	}

	logger.Info(fmt.Sprintf("Similarity Score: %.2f%%", score))
	return &score
}

// newEmbedder builds the production embedding collaborator. Only Gemini
// provides embeddings; the OpenRouter provider covers extraction alone.
func newEmbedder(ctx context.Context, cfg *ExtractConfig, logger *zap.Logger) (ai.Embedder, error) {
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
}

func recordHistory(historyFile string, report *evaluation.Report, baseline string, simScore *float64, logger *zap.Logger) {
	if historyFile == "" {
		return
	}

	store, err := results.Open(historyFile)
	if err != nil {
		logger.Warn("opening history store", zap.Error(err))
		return
	}
	defer store.Close()

	id, err := store.Record(report, fileStem(baseline), simScore)
	if err != nil {
		logger.Warn("recording run history", zap.Error(err))
		return
	}

	logger.Info("run recorded", zap.String("run_id", id), zap.String("history", historyFile))
}

// runReportMenu shows the interactive action menu until the user exits.
func runReportMenu(report *evaluation.Report, logger *zap.Logger) {
	for {
		_, action, err := reportPrompt.Run()
		if err != nil {
			logger.Warn("closing report menu", zap.Error(err))
			return
		}

		switch action {
		case PromptShowFailures:
			failures := report.Failures()
			if len(failures) == 0 {
				fmt.Println("all compared fields passed")
				continue
			}
			for _, outcome := range failures {
				fmt.Printf("%s: score %d < threshold %d\n  expected: %s\n  actual:   %s\n",
					outcome.Field, outcome.Score, outcome.Threshold,
					outcome.Expected, outcome.Actual,
				)
			}
		case PromptDumpReport:
			filename, err := report.DumpToTmpFile()
			if err != nil {
				logger.Warn("dumping report to file", zap.Error(err))
				continue
			}
			logger.Info("dumped report to file", zap.String("filename", filename))
		case PromptExit:
			return
		}
	}
}
