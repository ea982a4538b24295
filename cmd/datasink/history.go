package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newHistoryCommand creates the history command listing recent transfers
// from the journal.
func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transfers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("limit flag error: %w", err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			j, err := openJournal(cmd.Context(), afero.NewOsFs(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()

			records, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "No transfers recorded.")
				return nil
			}
			for _, rec := range records {
				status := color.GreenString("ok")
				if !rec.Success {
					status = color.RedString("failed")
				}
				_, _ = fmt.Fprintf(out, "%s  %-4s  %-6s  %s\n",
					rec.Time.Local().Format("2006-01-02 15:04:05"),
					rec.Operation, status, rec.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of records to show")
	return cmd
}
