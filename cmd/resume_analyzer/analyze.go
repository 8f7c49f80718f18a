package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/report"
)

var (
	analyzeResume  string
	analyzeJob     string
	analyzeConfig  string
	analyzeJSON    bool
	analyzeOutput  string
	analyzeVerbose bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long:  `Run the full analysis pipeline: score the resume across weighted dimensions, extract skill overlaps and gaps, and print the report.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResume, "resume", "", "Path to resume text file (required)")
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "Path to job description text file (required)")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "Path to JSON config file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw analysis result as JSON instead of the report")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Write output to file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Print detailed debug information")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(analyzeConfig)
	if err != nil {
		return err
	}
	if analyzeVerbose {
		cfg.Verbose = true
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	resumeText, err := os.ReadFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	jobText, err := os.ReadFile(analyzeJob)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	ctx := cmd.Context()
	analyzer, _, closeClient, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeClient()

	result, err := analyzer.Analyze(ctx, string(resumeText), string(jobText))
	if err != nil {
		return err
	}

	var out []byte
	if analyzeJSON {
		out, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		out = append(out, '\n')
	} else {
		out = []byte(report.Build(result))
	}

	if analyzeOutput != "" {
		return os.WriteFile(analyzeOutput, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}
