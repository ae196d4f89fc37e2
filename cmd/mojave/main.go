// Package main provides the mojave binary: start a new wasteland run,
// continue a saved one, or manage saves.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mojave",
	Short: "Mojave Adventure, a text RPG narrated by an AI game master",
	Long: `Mojave Adventure is a turn-based wasteland RPG. The rules engine tracks your
character, resolves combat with dice and keeps a worldbook; an AI narrator
describes what happens and may start fights, hand out items or move you.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (defaults plus MOJAVE_* environment when empty)")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(savesCmd)
}
