package main

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/handlers"
)

var versionFlagPattern = regexp.MustCompile(`^\d+\.\d+$`)

func newVSCodeCmd() *cobra.Command {
	var (
		latest      bool
		version     string
		allVersions bool
		fromVersion string
		toVersion   string
	)

	cmd := &cobra.Command{
		Use:   "vscode",
		Short: "VS Code release notes scraping",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range []string{version, fromVersion, toVersion} {
				if v != "" && !versionFlagPattern.MatchString(v) {
					return fmt.Errorf("version must be in format X.Y (e.g., 1.101): %q", v)
				}
			}

			handler := handlers.NewVSCodeHandler(config, logger)
			ctx := context.Background()

			switch {
			case latest:
				if !handler.ScrapeLatest(ctx) {
					return fmt.Errorf("failed to scrape latest VS Code release")
				}
				fmt.Println("Successfully scraped latest VS Code release")
			case version != "":
				if !handler.ScrapeVersion(ctx, version) {
					return fmt.Errorf("failed to scrape VS Code version %s", version)
				}
				fmt.Printf("Successfully scraped VS Code version %s\n", version)
			case allVersions:
				if !handler.ScrapeAll(ctx) {
					return fmt.Errorf("failed to scrape VS Code versions")
				}
				fmt.Println("Successfully scraped all VS Code versions")
			case fromVersion != "" && toVersion != "":
				if !handler.ScrapeVersionRange(ctx, fromVersion, toVersion) {
					return fmt.Errorf("failed to scrape VS Code versions from %s to %s", fromVersion, toVersion)
				}
				fmt.Printf("Successfully scraped VS Code versions from %s to %s\n", fromVersion, toVersion)
			default:
				return fmt.Errorf("please specify one of: --latest, --version, --all, or --from/--to")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false, "Scrape latest VS Code release")
	cmd.Flags().StringVar(&version, "version", "", "Specific VS Code version (e.g., 1.101)")
	cmd.Flags().BoolVar(&allVersions, "all", false, "Scrape all available VS Code versions")
	cmd.Flags().StringVar(&fromVersion, "from", "", "Start version (e.g., 1.100)")
	cmd.Flags().StringVar(&toVersion, "to", "", "End version (e.g., 1.101)")

	return cmd
}
