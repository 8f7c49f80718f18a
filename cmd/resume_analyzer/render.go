package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/layout"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/markup"
)

var (
	renderInput  string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Lay out a markup document into pages",
	Long:  `Tokenize a markup file and paginate it onto letter-size pages, printing the resulting layout as JSON.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderInput, "input", "", "Path to markup text file (required)")
	renderCmd.Flags().StringVar(&renderOutput, "output", "", "Write layout JSON to file instead of stdout")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	text, err := os.ReadFile(renderInput)
	if err != nil {
		return fmt.Errorf("failed to read markup file: %w", err)
	}

	log, err := logger.New(false, false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	blocks := markup.Tokenize(string(text))
	if n := markup.CountDegraded(blocks); n > 0 {
		log.Warn("markup degraded to plain paragraphs during rendering",
			zap.Int("degraded_blocks", n))
	}
	doc := layout.Layout(blocks)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	out = append(out, '\n')

	if renderOutput != "" {
		return os.WriteFile(renderOutput, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}
