package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jobtrail",
		Short: "Job application intake service with LLM-powered enrichment",
		Long: `jobtrail receives job postings captured by the browser extension,
extracts structured details with a language model when one is configured,
and records each posting as a job application.

Configuration is read from environment variables, a .env file in the
working directory, and an optional config file passed with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(
		&opts.cfgFile, "config", "", "config file with environment-style keys (optional)",
	)

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newExtractCmd(opts),
		newHashKeyCmd(),
	)
	return cmd
}
