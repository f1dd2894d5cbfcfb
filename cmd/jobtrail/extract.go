package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/jobtrail/internal/ai"
	"github.com/kiranshivaraju/jobtrail/internal/config"
	"github.com/kiranshivaraju/jobtrail/internal/intake"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

type extractResult struct {
	AIAnalysisPerformed bool              `json:"aiAnalysisPerformed"`
	Reason              ai.Reason         `json:"reason"`
	Provider            string            `json:"provider"`
	Enrichment          models.Enrichment `json:"enrichment"`
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "Run the extractor on a job description and print the result",
		Long: `Read a job description from a file (or stdin when no file or "-" is
given), run one extraction with the configured provider and print the
normalized enrichment as JSON. Nothing is stored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadExtraction(root.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			description, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			extractor, err := newExtractor(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !extractor.Available() {
				return errors.New("no extraction provider configured; set AI_PROVIDER and its credential")
			}

			outcome := extractor.Extract(cmd.Context(), description)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(extractResult{
				AIAnalysisPerformed: outcome.Performed(),
				Reason:              outcome.Reason,
				Provider:            extractor.ProviderName(),
				Enrichment:          intake.Normalize(outcome.Extraction),
			})
		},
	}
}

func readInput(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(data), nil
}
