package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wizzomafizzo/datasink/internal/config"
	"github.com/wizzomafizzo/datasink/internal/journal"
	"github.com/wizzomafizzo/datasink/internal/logging"
	"github.com/wizzomafizzo/datasink/internal/storage"
	"github.com/wizzomafizzo/datasink/internal/transfer"
)

// newRootCommand creates the main command: a single transfer invocation with
// positional source and destination.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datasink SOURCE DESTINATION",
		Short: "Copy or move a file or directory tree",
		Long: "Copy or move a single file or directory tree into a destination directory.\n" +
			"The destination must lie within your home directory or the current working\n" +
			"directory. Directory-copy collisions merge by default (overwriting same-named\n" +
			"files); set collision_policy: timestamp in the config to keep prior copies.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd, args[0], args[1])
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to config file")
	rootCmd.Flags().BoolP("move", "m", false, "Move the source instead of copying (the default action)")

	rootCmd.AddCommand(
		newHistoryCommand(),
		newInteractiveCommand(),
	)

	return rootCmd
}

func runTransfer(cmd *cobra.Command, source, destination string) error {
	move, err := cmd.Flags().GetBool("move")
	if err != nil {
		return fmt.Errorf("move flag error: %w", err)
	}
	op := transfer.OpCopy
	if move {
		op = transfer.OpMove
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, engine, cleanup, err := setupEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Starting '%s' operation...\n", op)
	_, _ = fmt.Fprintf(out, "Source: %s\n", source)
	_, _ = fmt.Fprintf(out, "Destination: %s\n", destination)

	result := engine.Transfer(ctx, source, destination, op)
	if result.Success {
		_, _ = fmt.Fprintf(out, "\n%s %s\n", color.GreenString("Success:"), result.Message)
	} else {
		_, _ = fmt.Fprintf(out, "\n%s %s\n", color.RedString("Error:"), result.Message)
	}
	_, _ = fmt.Fprintf(out, "Check '%s' for detailed logs.\n", cfg.LogFile)

	// TODO: exit nonzero on failure once callers stop relying on the
	// always-zero exit code and parse the message instead.
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("config flag error: %w", err)
	}
	cfg, err := config.Load(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupEngine wires the logger, journal, and engine from config. The
// returned cleanup closes the log file and journal; call it at shutdown.
func setupEngine(ctx context.Context, cfg *config.Config) (context.Context, *transfer.Engine, func(), error) {
	fs := afero.NewOsFs()

	ctx, logCloser, err := logging.New(ctx, fs, logging.Config{LogFile: cfg.LogFile})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	opts := []transfer.Option{
		transfer.WithCollisionPolicy(cfg.Policy()),
	}
	if len(cfg.AllowedRoots) > 0 {
		opts = append(opts, transfer.WithExtraRoots(cfg.AllowedRoots...))
	}

	var journalCloser io.Closer
	if cfg.History.Enabled {
		j, err := openJournal(ctx, fs, cfg)
		if err != nil {
			_ = logCloser.Close()
			return nil, nil, nil, err
		}
		journalCloser = j
		opts = append(opts, transfer.WithRecorder(j))
	}

	cleanup := func() {
		if journalCloser != nil {
			_ = journalCloser.Close()
		}
		_ = logCloser.Close()
	}
	return ctx, transfer.NewEngine(opts...), cleanup, nil
}

func openJournal(ctx context.Context, fs afero.Fs, cfg *config.Config) (*journal.Journal, error) {
	path := cfg.History.Path
	if path == "" {
		var err error
		path, err = storage.New(fs).GetHistoryPath()
		if err != nil {
			return nil, err
		}
	}
	return journal.Open(ctx, path)
}
