package main

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/handlers"
)

var repoFlagPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+/[a-zA-Z0-9._-]+$`)

func newGitHubCmd() *cobra.Command {
	var (
		repo        string
		latest      bool
		version     string
		allReleases bool
		fromDate    string
		toDate      string
		token       string
	)

	cmd := &cobra.Command{
		Use:   "github",
		Short: "GitHub repository release notes scraping",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !repoFlagPattern.MatchString(repo) {
				return fmt.Errorf("repository must be in format owner/repo")
			}
			for _, date := range []string{fromDate, toDate} {
				if date == "" {
					continue
				}
				if _, err := time.Parse("2006-01-02", date); err != nil {
					return fmt.Errorf("date must be in format YYYY-MM-DD: %q", date)
				}
			}

			if token != "" {
				config.Sources.GitHub.Token = token
			}

			handler := handlers.NewGitHubHandler(config, logger)
			ctx := context.Background()

			switch {
			case latest:
				if !handler.ScrapeLatest(ctx, repo) {
					return fmt.Errorf("failed to scrape latest release from %s", repo)
				}
				fmt.Printf("Successfully scraped latest release from %s\n", repo)
			case version != "":
				if !handler.ScrapeVersion(ctx, repo, version) {
					return fmt.Errorf("failed to scrape version %s from %s", version, repo)
				}
				fmt.Printf("Successfully scraped version %s from %s\n", version, repo)
			case allReleases:
				if !handler.ScrapeAll(ctx, repo) {
					return fmt.Errorf("failed to scrape releases from %s", repo)
				}
				fmt.Printf("Successfully scraped all releases from %s\n", repo)
			case fromDate != "" && toDate != "":
				if !handler.ScrapeDateRange(ctx, repo, fromDate, toDate) {
					return fmt.Errorf("failed to scrape releases from %s", repo)
				}
				fmt.Printf("Successfully scraped releases from %s between %s and %s\n", repo, fromDate, toDate)
			default:
				return fmt.Errorf("please specify one of: --latest, --version, --all, or --from/--to")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "Repository name (owner/repo)")
	cmd.Flags().BoolVar(&latest, "latest", false, "Scrape latest release")
	cmd.Flags().StringVar(&version, "version", "", "Specific release version/tag")
	cmd.Flags().BoolVar(&allReleases, "all", false, "Scrape all releases")
	cmd.Flags().StringVar(&fromDate, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub API token (default: GITHUB_TOKEN env var)")
	cmd.MarkFlagRequired("repo")

	return cmd
}
