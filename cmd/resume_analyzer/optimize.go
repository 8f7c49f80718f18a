package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/layout"
)

var (
	optimizeResume  string
	optimizeJob     string
	optimizeConfig  string
	optimizeLayout  bool
	optimizeOutput  string
	optimizeVerbose bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Generate an optimized resume for a job description",
	Long:  `Rewrite the resume to emphasize the experience most relevant to the target job description. Only existing content is reorganized and rephrased; nothing is fabricated. Prints the optimized resume as markup text.`,
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeResume, "resume", "", "Path to resume text file (required)")
	optimizeCmd.Flags().StringVar(&optimizeJob, "job", "", "Path to job description text file (required)")
	optimizeCmd.Flags().StringVar(&optimizeConfig, "config", "", "Path to JSON config file")
	optimizeCmd.Flags().BoolVar(&optimizeLayout, "layout", false, "Print the paginated layout as JSON instead of markup text")
	optimizeCmd.Flags().StringVar(&optimizeOutput, "output", "", "Write output to file instead of stdout")
	optimizeCmd.Flags().BoolVar(&optimizeVerbose, "verbose", false, "Print detailed debug information")
	_ = optimizeCmd.MarkFlagRequired("resume")
	_ = optimizeCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(optimizeConfig)
	if err != nil {
		return err
	}
	if optimizeVerbose {
		cfg.Verbose = true
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	resumeText, err := os.ReadFile(optimizeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	jobText, err := os.ReadFile(optimizeJob)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	ctx := cmd.Context()
	_, rewriter, closeClient, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeClient()

	optimized, _, err := rewriter.Rewrite(ctx, string(resumeText), string(jobText))
	if err != nil {
		return err
	}

	var out []byte
	if optimizeLayout {
		out, err = json.MarshalIndent(layout.Render(optimized), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
		out = append(out, '\n')
	} else {
		out = []byte(optimized + "\n")
	}

	if optimizeOutput != "" {
		return os.WriteFile(optimizeOutput, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}
