package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/rewrite"
)

// loadMergedConfig loads the optional config file and fills the rest from
// defaults and the environment.
func loadMergedConfig(configPath string) (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if merged.APIKey == "" {
		merged.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := merged.Validate(); err != nil {
		return merged, err
	}
	return merged, nil
}

// buildPipeline constructs the evaluator client with the analyzer and
// rewriter that share it. The returned close function releases the client.
func buildPipeline(ctx context.Context, cfg config.Config, log *zap.Logger) (*analysis.Analyzer, *rewrite.Rewriter, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable or api_key config is required")
	}

	client, err := llm.NewGeminiClient(ctx, cfg.EvaluatorConfig(), cfg.APIKey, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create evaluator client: %w", err)
	}

	analyzer, err := analysis.New(client, nil, cfg.Threshold, log)
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, err
	}

	rewriter, err := rewrite.NewRewriter(client, log)
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, err
	}

	return analyzer, rewriter, func() { _ = client.Close() }, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}
