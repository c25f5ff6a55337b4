package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/common"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	config := common.DefaultConfig()
	config.Storage.OutputDir = t.TempDir()
	config.Scraper.RequestTimeout = "5s"
	config.Scraper.RequestsPerMinute = 0
	return config
}

func TestGitHubValidate(t *testing.T) {
	handler := NewGitHubHandler(testConfig(t), common.GetLogger())

	tests := []struct {
		repo  string
		valid bool
	}{
		{"microsoft/vscode", true},
		{"octo-cat/my.repo_1", true},
		{"a/b", true},
		{"noslash", false},
		{"a/b/c", false},
		{"/repo", false},
		{"owner/", false},
		{"owner/re po", false},
		{"owner/repo!", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			assert.Equal(t, tt.valid, handler.Validate(tt.repo))
		})
	}
}

func TestGitHubMissingTokenIsAuthError(t *testing.T) {
	config := testConfig(t)
	config.Sources.GitHub.Token = ""
	handler := NewGitHubHandler(config, common.GetLogger())

	_, err := handler.GetLatestRelease(context.Background(), "acme/widget")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuth)
	assert.NotErrorIs(t, err, models.ErrFetch)
}

func TestGitHubInvalidRepoIsValidationError(t *testing.T) {
	config := testConfig(t)
	config.Sources.GitHub.Token = "token"
	handler := NewGitHubHandler(config, common.GetLogger())

	_, err := handler.GetLatestRelease(context.Background(), "not-a-repo")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFilterByDateRange(t *testing.T) {
	records := []*models.ReleaseRecord{
		{Version: "v3", Date: "2025-06-20"},
		{Version: "v2", Date: "2025-06-12"},
		{Version: "v1", Date: "2025-05-01"},
		{Version: "v0", Date: ""},
	}

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	filtered := filterByDateRange(records, from, to)
	require.Len(t, filtered, 1)
	assert.Equal(t, "v2", filtered[0].Version)

	// Boundaries are inclusive on both ends.
	wide := filterByDateRange(records, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	assert.Len(t, wide, 3)
}

func TestGitHubScrapeLatestEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"tag_name": "v1.2.3",
			"published_at": "2025-06-12T10:30:00Z",
			"body": "Fixed a crash on startup.",
			"author": {"login": "octocat"},
			"assets": [
				{"name": "widget-linux.tar.gz", "browser_download_url": "https://example.com/widget-linux.tar.gz"}
			]
		}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	config := testConfig(t)
	config.Sources.GitHub.Token = "test-token"
	config.Sources.GitHub.APIBase = srv.URL

	handler := NewGitHubHandler(config, common.GetLogger())
	require.True(t, handler.ScrapeLatest(context.Background(), "acme/widget"))

	path := handler.store.GitHubReleasePath("acme/widget", "v1.2.3")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	doc := string(content)
	assert.Contains(t, doc, "# acme/widget - v1.2.3")
	assert.Contains(t, doc, "**Release Date**: 2025-06-12")
	assert.Contains(t, doc, "**Author**: octocat")
	assert.Contains(t, doc, "## Overview")
	assert.Contains(t, doc, "Fixed a crash on startup.")
	assert.Contains(t, doc, "## Downloads")
	assert.Contains(t, doc, "- [widget-linux.tar.gz](https://example.com/widget-linux.tar.gz)")
	assert.Contains(t, doc, "**Source**: https://github.com/acme/widget/releases/tag/v1.2.3")
}

func TestGitHubGetAllReleasesPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/releases", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"tag_name": "v1.0.0"}]`)
			return
		}
		next := fmt.Sprintf("http://%s/repos/acme/widget/releases?page=2", r.Host)
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="last"`, next, next))
		fmt.Fprint(w, `[{"tag_name": "v3.0.0"}, {"tag_name": "v2.0.0"}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	config := testConfig(t)
	config.Sources.GitHub.Token = "test-token"
	config.Sources.GitHub.APIBase = srv.URL

	handler := NewGitHubHandler(config, common.GetLogger())
	records, err := handler.GetAllReleases(context.Background(), "acme/widget")
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "v3.0.0", records[0].Version)
	assert.Equal(t, "v2.0.0", records[1].Version)
	assert.Equal(t, "v1.0.0", records[2].Version)
	assert.Equal(t, "acme/widget", records[0].Repo)
}

func TestGitHubSaveFilesUnderRecordRepo(t *testing.T) {
	handler := NewGitHubHandler(testConfig(t), common.GetLogger())

	record := &models.ReleaseRecord{
		Version:   "v1.2.3",
		Repo:      "acme/widget",
		Content:   "Notes.",
		SourceURL: "https://github.com/acme/widget/releases/tag/v1.2.3",
	}
	require.True(t, handler.Save(record))

	_, err := os.Stat(handler.store.GitHubReleasePath("acme/widget", "v1.2.3"))
	assert.NoError(t, err)

	// A record without a repo coordinate gets the fixed fallback rather
	// than an empty path segment.
	require.True(t, handler.Save(&models.ReleaseRecord{Version: "v0.1.0"}))
	_, err = os.Stat(handler.store.GitHubReleasePath("unknown/unknown", "v0.1.0"))
	assert.NoError(t, err)
}

func TestGitHubScrapeDateRangeEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/releases", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"tag_name": "v3.0.0", "published_at": "2025-06-20T08:00:00Z", "body": "Three"},
			{"tag_name": "v2.0.0", "published_at": "2025-06-12T23:59:00Z", "body": "Two"},
			{"tag_name": "v1.0.0", "published_at": "2025-05-01T00:00:00Z", "body": "One"}
		]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	config := testConfig(t)
	config.Sources.GitHub.Token = "test-token"
	config.Sources.GitHub.APIBase = srv.URL

	handler := NewGitHubHandler(config, common.GetLogger())
	require.True(t, handler.ScrapeDateRange(context.Background(), "acme/widget", "2025-06-01", "2025-06-12"))

	// Time-of-day is dropped before comparison: v2.0.0 published late on
	// the to-date is still included.
	_, err := os.Stat(handler.store.GitHubReleasePath("acme/widget", "v2.0.0"))
	assert.NoError(t, err)

	_, err = os.Stat(handler.store.GitHubReleasePath("acme/widget", "v1.0.0"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(handler.store.GitHubReleasePath("acme/widget", "v3.0.0"))
	assert.True(t, os.IsNotExist(err))
}

func TestGitHubDateRangeRejectsBadDates(t *testing.T) {
	config := testConfig(t)
	config.Sources.GitHub.Token = "token"
	handler := NewGitHubHandler(config, common.GetLogger())

	_, err := handler.GetReleasesByDateRange(context.Background(), "acme/widget", "June 1", "2025-06-12")
	assert.ErrorIs(t, err, models.ErrValidation)
}
