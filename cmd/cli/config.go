package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOut  string
	importFile string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to file instead of stdout")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the current configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := console.Sync.ExportConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("exporting configuration: %w", err)
		}
		if exportOut == "" {
			fmt.Println(data)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(data+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOut, err)
		}
		fmt.Fprintf(os.Stderr, "Exported configuration to %s\n", exportOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the configuration with the contents of a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", importFile, err)
		}
		if err := console.Sync.ImportConfig(cmd.Context(), string(data)); err != nil {
			return err
		}
		cfg := console.Sync.LocalConfig(cmd.Context())
		fmt.Printf("Imported %d site(s) and %d header link(s)\n", len(cfg.Sites), len(cfg.HeaderLinks))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if res := console.Sync.ResetConfig(cmd.Context()); !res.OK() {
			return fmt.Errorf("reset saved locally but not to remote: %w", res.RemoteErr)
		}
		fmt.Println("Configuration reset to defaults")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync mode, remote connectivity and a content summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := console.Sync.GetConfig(ctx)

		mode := "local-only"
		if console.Sync.RemoteAvailable() {
			mode = "cloud"
		}
		fmt.Printf("Mode:         %s\n", mode)
		fmt.Printf("Connected:    %t\n", console.Sync.TestConnection(ctx))
		fmt.Printf("Title:        %s\n", cfg.SiteConfig.Title)
		fmt.Printf("Sites:        %d\n", len(cfg.Sites))
		fmt.Printf("Header links: %d\n", len(cfg.HeaderLinks))
		for _, err := range cfg.Categories.Violations(cfg.SiteLimits) {
			fmt.Printf("Warning:      %v\n", err)
		}
		return nil
	},
}
