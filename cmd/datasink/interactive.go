package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wizzomafizzo/datasink/internal/prompt"
	"github.com/wizzomafizzo/datasink/internal/transfer"
)

var operationChoices = map[string]string{
	"c":    string(transfer.OpCopy),
	"copy": string(transfer.OpCopy),
	"m":    string(transfer.OpMove),
	"move": string(transfer.OpMove),
}

// newInteractiveCommand creates the interactive front-end. Each transfer
// runs in its own goroutine so the prompt loop stays responsive; the result
// comes back over a channel.
func newInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run transfers from an interactive prompt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, engine, cleanup, err := setupEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			prompter := prompt.NewLinerPrompter()
			defer func() { _ = prompter.Close() }()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "datasink interactive mode. Empty source or Ctrl+C exits.")

			for {
				source, err := prompt.TextInput(prompter, "Source:")
				if err != nil || source == "" {
					return exitInteractive(err)
				}
				destination, err := prompt.TextInput(prompter, "Destination:")
				if err != nil {
					return exitInteractive(err)
				}
				op, err := prompt.Choice(prompter, "Operation [c]opy/[m]ove (default copy):",
					operationChoices, string(transfer.OpCopy))
				if err != nil {
					return exitInteractive(err)
				}

				_, _ = fmt.Fprintf(out, "[INFO] Starting '%s' operation...\n", op)
				_, _ = fmt.Fprintf(out, "[INFO] Source: %s\n", source)
				_, _ = fmt.Fprintf(out, "[INFO] Destination: %s\n", destination)

				results := make(chan transfer.Outcome, 1)
				go func() {
					results <- engine.Transfer(ctx, source, destination, transfer.Operation(op))
				}()

				result := <-results
				if result.Success {
					_, _ = fmt.Fprintf(out, "%s %s\n",
						color.GreenString("[INFO] SUCCESS:"), result.Message)
				} else {
					_, _ = fmt.Fprintf(out, "%s %s\n",
						color.RedString("[ERROR]"), result.Message)
				}
			}
		},
	}
}

func exitInteractive(err error) error {
	if err == nil || errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	return err
}
