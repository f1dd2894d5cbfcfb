package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newHashKeyCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hashkey [key]",
		Short: "Print the bcrypt hash of an ingest key for INGEST_KEY_HASH",
		Long: `Print the bcrypt hash of an ingest key. The key is read from the argument,
or from the first line of stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read key: %w", err)
				}
				key = line
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("key must not be empty")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
			if err != nil {
				return fmt.Errorf("hash key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}
