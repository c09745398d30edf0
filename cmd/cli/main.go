package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/landing-console/pkg/app"
	"github.com/wadjakorntonsri/landing-console/pkg/config"
	"github.com/wadjakorntonsri/landing-console/pkg/observe"
)

// console is opened before every subcommand and closed by main
var console *app.App

var rootCmd = &cobra.Command{
	Use:           "landing-cli",
	Short:         "Manage the landing page configuration from the shell",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// stdout is reserved for command output such as exports
		logger := observe.NewLogger(os.Stderr, cfg.LogLevel)
		slog.SetDefault(logger)

		console, err = app.New(cfg, logger)
		return err
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when a command fails, so close here
	if console != nil {
		if cerr := console.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
