package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/common"
)

var (
	configPath string

	config *common.Config
	logger arbor.ILogger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "relnotes",
		Short:         "Scrape release notes from multiple sources",
		Long:          "Release Notes Scraper - scrape release notes from GitHub repositories, the VS Code updates site and arbitrary web pages, and store them as organized markdown files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			// Startup order: config, then logger, then banner.
			var err error
			config, err = common.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger = common.InitLogger(config)
			common.PrintBanner(common.GetVersion())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path (default: relnotes.toml when present)")

	rootCmd.AddCommand(newGitHubCmd())
	rootCmd.AddCommand(newVSCodeCmd())
	rootCmd.AddCommand(newWebCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("relnotes version %s\n", common.GetFullVersion())
		},
	}
}
