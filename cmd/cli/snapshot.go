package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pushDescription string

func init() {
	pushCmd.Flags().StringVarP(&pushDescription, "description", "d", "", "Snapshot description")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(colorCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the configuration as a snapshot and print its share code",
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := console.Editor.UploadSnapshot(cmd.Context(), pushDescription)
		if err != nil {
			return err
		}
		fmt.Println(code)
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull <code>",
	Short: "Download a snapshot by share code and apply it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := console.Editor.DownloadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Applied %s (%s), downloaded %d time(s)\n", snap.ShareCode, snap.Description, snap.AccessCount)
		return nil
	},
}

var colorCmd = &cobra.Command{
	Use:   "color <image>",
	Short: "Print the dominant color of an image file, URL or data URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		console.Colors.AllowFiles = true
		fmt.Println(console.Colors.Extract(cmd.Context(), args[0]))
		return nil
	},
}
