package handlers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/common"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/interfaces"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/markdown"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/scraper"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/storage"
)

var nonSlugChars = regexp.MustCompile(`[^\w\s-]`)

// WebHandler scrapes release notes from arbitrary web pages.
type WebHandler struct {
	fetcher   *scraper.Fetcher
	store     *storage.FileStore
	generator *markdown.Generator
	logger    arbor.ILogger
}

// NewWebHandler creates a generic web page handler.
func NewWebHandler(config *common.Config, logger arbor.ILogger) *WebHandler {
	scraperConfig := config.Scraper
	if config.Sources.Web.UserAgent != "" {
		scraperConfig.UserAgent = config.Sources.Web.UserAgent
	}

	return &WebHandler{
		fetcher:   scraper.NewFetcher(scraperConfig, logger),
		store:     storage.NewFileStore(config.Storage.OutputDir, logger),
		generator: markdown.NewGenerator(),
		logger:    logger,
	}
}

// SourceType returns the source kind this handler serves.
func (h *WebHandler) SourceType() models.SourceType {
	return models.SourceTypeWeb
}

// Validate reports whether rawURL is an absolute http(s) URL with a
// non-empty host.
func (h *WebHandler) Validate(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// NameFromURL derives the default filing name from the URL's host.
func (h *WebHandler) NameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return parsed.Host
}

// FetchAndExtract fetches the page and assembles a record from its
// title, date and main content block.
func (h *WebHandler) FetchAndExtract(ctx context.Context, rawURL string) (*models.ReleaseRecord, error) {
	if !h.Validate(rawURL) {
		return nil, fmt.Errorf("%w: invalid URL %q, expected absolute http(s) URL", models.ErrValidation, rawURL)
	}

	doc, err := h.fetcher.FetchDocument(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return &models.ReleaseRecord{
		Version:   scraper.ExtractTitle(doc),
		Date:      scraper.ExtractDate(doc),
		Content:   scraper.ExtractMainContent(doc),
		SourceURL: rawURL,
	}, nil
}

// ScrapeURL scrapes release notes from a URL. When name is empty the
// URL's host is used for filing.
func (h *WebHandler) ScrapeURL(ctx context.Context, rawURL, name string) bool {
	record, err := h.FetchAndExtract(ctx, rawURL)
	if err != nil {
		h.logger.Error().Err(err).Str("url", rawURL).Msg("Failed to scrape page")
		return false
	}

	if name == "" {
		name = h.NameFromURL(rawURL)
	}
	return h.saveRelease(record, name)
}

// Save renders the record and writes it under the host-derived source
// name.
func (h *WebHandler) Save(record *models.ReleaseRecord) bool {
	return h.saveRelease(record, h.NameFromURL(record.SourceURL))
}

func (h *WebHandler) saveRelease(record *models.ReleaseRecord, name string) bool {
	if name == "" {
		name = "unknown"
	}

	content := h.generator.WebRelease(name, record)
	path := h.store.WebReleasePath(name, slugFromTitle(record.Version))

	if err := h.store.SaveMarkdown(path, content); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("Failed to save release")
		return false
	}

	h.logger.Info().Str("title", record.Version).Str("path", path).Msg("Saved release")
	return true
}

// slugFromTitle derives the file leaf name from a page title: non-word
// characters removed, spaces to underscores, lowercased, with a fixed
// fallback for titles that clean away to nothing.
func slugFromTitle(title string) string {
	slug := nonSlugChars.ReplaceAllString(title, "")
	slug = strings.TrimSpace(slug)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ToLower(slug)
	if slug == "" {
		slug = "release"
	}
	return slug
}

// Ensure interface compliance
var _ interfaces.SourceHandler = (*WebHandler)(nil)
