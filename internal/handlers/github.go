package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/common"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/interfaces"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/markdown"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/storage"
)

const dateLayout = "2006-01-02"

var repoPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+/[a-zA-Z0-9._-]+$`)

// GitHubHandler scrapes release notes from the GitHub releases API.
type GitHubHandler struct {
	client    *github.Client
	store     *storage.FileStore
	generator *markdown.Generator
	logger    arbor.ILogger
}

// NewGitHubHandler creates a GitHub handler. Without a token the client
// stays uninitialized and every operation fails with ErrAuth.
func NewGitHubHandler(config *common.Config, logger arbor.ILogger) *GitHubHandler {
	var client *github.Client
	if token := config.Sources.GitHub.Token; token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(context.Background(), ts)
		client = github.NewClient(tc)

		if base := config.Sources.GitHub.APIBase; base != "" && base != "https://api.github.com" {
			if u, err := url.Parse(strings.TrimSuffix(base, "/") + "/"); err == nil {
				client.BaseURL = u
			}
		}
	}

	return &GitHubHandler{
		client:    client,
		store:     storage.NewFileStore(config.Storage.OutputDir, logger),
		generator: markdown.NewGenerator(),
		logger:    logger,
	}
}

// SourceType returns the source kind this handler serves.
func (h *GitHubHandler) SourceType() models.SourceType {
	return models.SourceTypeGitHub
}

// Validate reports whether repo is a well-formed owner/name coordinate.
func (h *GitHubHandler) Validate(repo string) bool {
	return repoPattern.MatchString(repo)
}

// FetchAndExtract fetches the latest release of the given repository.
func (h *GitHubHandler) FetchAndExtract(ctx context.Context, repo string) (*models.ReleaseRecord, error) {
	return h.GetLatestRelease(ctx, repo)
}

// GetLatestRelease returns the repository's latest release as a record.
func (h *GitHubHandler) GetLatestRelease(ctx context.Context, repo string) (*models.ReleaseRecord, error) {
	owner, name, err := h.splitRepo(repo)
	if err != nil {
		return nil, err
	}

	release, resp, err := h.client.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		return nil, classifyAPIError(fmt.Sprintf("getting latest release for %s", repo), err, resp)
	}

	return mapRelease(repo, release), nil
}

// GetReleaseByTag returns the release with the exact tag as a record.
func (h *GitHubHandler) GetReleaseByTag(ctx context.Context, repo, tag string) (*models.ReleaseRecord, error) {
	owner, name, err := h.splitRepo(repo)
	if err != nil {
		return nil, err
	}

	release, resp, err := h.client.Repositories.GetReleaseByTag(ctx, owner, name, tag)
	if err != nil {
		return nil, classifyAPIError(fmt.Sprintf("getting release %s for %s", tag, repo), err, resp)
	}

	return mapRelease(repo, release), nil
}

// GetAllReleases returns every release of the repository, newest first
// as returned by the API.
func (h *GitHubHandler) GetAllReleases(ctx context.Context, repo string) ([]*models.ReleaseRecord, error) {
	owner, name, err := h.splitRepo(repo)
	if err != nil {
		return nil, err
	}

	var records []*models.ReleaseRecord
	opts := &github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := h.client.Repositories.ListReleases(ctx, owner, name, opts)
		if err != nil {
			return nil, classifyAPIError(fmt.Sprintf("listing releases for %s", repo), err, resp)
		}
		for _, release := range releases {
			records = append(records, mapRelease(repo, release))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return records, nil
}

// GetReleasesByDateRange returns releases whose publish date falls
// within the inclusive [from, to] interval. Timestamps are truncated to
// their calendar date before comparison.
func (h *GitHubHandler) GetReleasesByDateRange(ctx context.Context, repo, from, to string) ([]*models.ReleaseRecord, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from date %q, expected YYYY-MM-DD", models.ErrValidation, from)
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to date %q, expected YYYY-MM-DD", models.ErrValidation, to)
	}

	records, err := h.GetAllReleases(ctx, repo)
	if err != nil {
		return nil, err
	}

	return filterByDateRange(records, fromDate, toDate), nil
}

// ScrapeLatest scrapes the latest release and saves it.
func (h *GitHubHandler) ScrapeLatest(ctx context.Context, repo string) bool {
	record, err := h.GetLatestRelease(ctx, repo)
	if err != nil {
		h.logger.Error().Err(err).Str("repo", repo).Msg("Failed to get latest release")
		return false
	}
	return h.saveRelease(repo, record)
}

// ScrapeVersion scrapes the release with the exact tag and saves it.
func (h *GitHubHandler) ScrapeVersion(ctx context.Context, repo, tag string) bool {
	record, err := h.GetReleaseByTag(ctx, repo, tag)
	if err != nil {
		h.logger.Error().Err(err).Str("repo", repo).Str("tag", tag).Msg("Failed to get release")
		return false
	}
	return h.saveRelease(repo, record)
}

// ScrapeAll scrapes every release sequentially. A failure on one release
// is counted and the loop continues; the batch succeeds when at least
// one release was saved.
func (h *GitHubHandler) ScrapeAll(ctx context.Context, repo string) bool {
	records, err := h.GetAllReleases(ctx, repo)
	if err != nil {
		h.logger.Error().Err(err).Str("repo", repo).Msg("Failed to list releases")
		return false
	}
	if len(records) == 0 {
		h.logger.Warn().Str("repo", repo).Msg("No releases found")
		return false
	}

	successCount := 0
	for _, record := range records {
		if h.saveRelease(repo, record) {
			successCount++
		}
	}

	h.logger.Info().Str("repo", repo).Msgf("Successfully scraped %d out of %d releases", successCount, len(records))
	return successCount > 0
}

// ScrapeDateRange scrapes releases published within the inclusive date
// interval, sequentially, continuing past individual failures.
func (h *GitHubHandler) ScrapeDateRange(ctx context.Context, repo, from, to string) bool {
	records, err := h.GetReleasesByDateRange(ctx, repo, from, to)
	if err != nil {
		h.logger.Error().Err(err).Str("repo", repo).Msg("Failed to get releases by date range")
		return false
	}
	if len(records) == 0 {
		h.logger.Warn().Str("repo", repo).Str("from", from).Str("to", to).Msg("No releases in date range")
		return false
	}

	successCount := 0
	for _, record := range records {
		if h.saveRelease(repo, record) {
			successCount++
		}
	}

	h.logger.Info().Str("repo", repo).Msgf("Successfully scraped %d out of %d releases", successCount, len(records))
	return successCount > 0
}

// Save renders the record and writes it to its deterministic path under
// the record's repository coordinate.
func (h *GitHubHandler) Save(record *models.ReleaseRecord) bool {
	repo := record.Repo
	if repo == "" {
		repo = "unknown/unknown"
	}
	return h.saveRelease(repo, record)
}

func (h *GitHubHandler) saveRelease(repo string, record *models.ReleaseRecord) bool {
	content := h.generator.GitHubRelease(repo, record)
	path := h.store.GitHubReleasePath(repo, record.Version)

	if err := h.store.SaveMarkdown(path, content); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("Failed to save release")
		return false
	}

	h.logger.Info().Str("version", record.Version).Str("path", path).Msg("Saved release")
	return true
}

// splitRepo validates the coordinate and checks client initialization.
func (h *GitHubHandler) splitRepo(repo string) (owner, name string, err error) {
	if !h.Validate(repo) {
		return "", "", fmt.Errorf("%w: invalid repository format %q, expected owner/repo", models.ErrValidation, repo)
	}
	if h.client == nil {
		return "", "", fmt.Errorf("%w: GitHub client not initialized, provide a token", models.ErrAuth)
	}
	parts := strings.SplitN(repo, "/", 2)
	return parts[0], parts[1], nil
}

// mapRelease converts an API release to a normalized record.
func mapRelease(repo string, release *github.RepositoryRelease) *models.ReleaseRecord {
	record := &models.ReleaseRecord{
		Version:   release.GetTagName(),
		Content:   release.GetBody(),
		Repo:      repo,
		Author:    "Unknown",
		SourceURL: fmt.Sprintf("https://github.com/%s/releases/tag/%s", repo, release.GetTagName()),
	}

	if published := release.GetPublishedAt(); !published.IsZero() {
		record.Date = published.Format(dateLayout)
	}
	if author := release.GetAuthor(); author != nil && author.GetLogin() != "" {
		record.Author = author.GetLogin()
	}
	for _, asset := range release.Assets {
		record.Assets = append(record.Assets, models.ReleaseAsset{
			Name: asset.GetName(),
			URL:  asset.GetBrowserDownloadURL(),
		})
	}

	return record
}

// filterByDateRange keeps records whose publish date, truncated to its
// calendar date, falls inside the inclusive interval. Records without a
// date are excluded.
func filterByDateRange(records []*models.ReleaseRecord, from, to time.Time) []*models.ReleaseRecord {
	var filtered []*models.ReleaseRecord
	for _, record := range records {
		if record.Date == "" {
			continue
		}
		published, err := time.Parse(dateLayout, record.Date)
		if err != nil {
			continue
		}
		if !published.Before(from) && !published.After(to) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func classifyAPIError(op string, err error, resp *github.Response) error {
	if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return fmt.Errorf("%w: %s: %v", models.ErrAuth, op, err)
	}
	return fmt.Errorf("%w: %s: %v", models.ErrFetch, op, err)
}

// Ensure interface compliance
var _ interfaces.SourceHandler = (*GitHubHandler)(nil)
