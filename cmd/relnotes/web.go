package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/handlers"
)

func newWebCmd() *cobra.Command {
	var (
		rawURL string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Generic web page scraping",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
				return fmt.Errorf("URL must start with http:// or https://")
			}

			handler := handlers.NewWebHandler(config, logger)
			if !handler.ScrapeURL(context.Background(), rawURL, name) {
				return fmt.Errorf("failed to scrape release notes from %s", rawURL)
			}
			fmt.Printf("Successfully scraped release notes from %s\n", rawURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "", "URL to scrape")
	cmd.Flags().StringVar(&name, "name", "", "Custom source name")
	cmd.MarkFlagRequired("url")

	return cmd
}
