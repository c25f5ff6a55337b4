package handlers

import (
	"context"
	"fmt"
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

var vscodeVersionPattern = regexp.MustCompile(`^\d+\.\d+$`)

// VSCodeHandler scrapes release notes from the VS Code updates site.
type VSCodeHandler struct {
	baseURL   string
	fetcher   *scraper.Fetcher
	store     *storage.FileStore
	generator *markdown.Generator
	logger    arbor.ILogger
}

// NewVSCodeHandler creates a VS Code handler.
func NewVSCodeHandler(config *common.Config, logger arbor.ILogger) *VSCodeHandler {
	baseURL := config.Sources.VSCode.BaseURL
	if baseURL == "" {
		baseURL = "https://code.visualstudio.com/updates/"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &VSCodeHandler{
		baseURL:   baseURL,
		fetcher:   scraper.NewFetcher(config.Scraper, logger),
		store:     storage.NewFileStore(config.Storage.OutputDir, logger),
		generator: markdown.NewGenerator(),
		logger:    logger,
	}
}

// SourceType returns the source kind this handler serves.
func (h *VSCodeHandler) SourceType() models.SourceType {
	return models.SourceTypeVSCode
}

// Validate reports whether version is a well-formed <major>.<minor>
// version number.
func (h *VSCodeHandler) Validate(version string) bool {
	return vscodeVersionPattern.MatchString(version)
}

// ConvertVersionToURLFormat converts a version to its URL segment
// (1.101 -> v1_101). Invalid versions are returned unchanged.
func (h *VSCodeHandler) ConvertVersionToURLFormat(version string) string {
	if !h.Validate(version) {
		return version
	}
	return "v" + strings.ReplaceAll(version, ".", "_")
}

// VersionURL builds the release-notes page URL for a version.
func (h *VSCodeHandler) VersionURL(version string) string {
	return h.baseURL + h.ConvertVersionToURLFormat(version)
}

// FetchAndExtract fetches a version's release-notes page and assembles a
// normalized record from its heading, date and h2 sections.
func (h *VSCodeHandler) FetchAndExtract(ctx context.Context, version string) (*models.ReleaseRecord, error) {
	if !h.Validate(version) {
		return nil, fmt.Errorf("%w: invalid version format %q, expected X.Y", models.ErrValidation, version)
	}

	url := h.VersionURL(version)
	doc, err := h.fetcher.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	// The page is only a valid release page when its heading carries a
	// version number.
	_, date, err := scraper.ExtractVersionInfo(doc)
	if err != nil {
		return nil, err
	}

	sections := scraper.ExtractSections(doc)

	return &models.ReleaseRecord{
		Version:   version,
		Date:      date,
		Content:   formatSections(sections),
		SourceURL: url,
	}, nil
}

// LatestVersion determines the newest version from the index page.
func (h *VSCodeHandler) LatestVersion(ctx context.Context) (string, error) {
	doc, err := h.fetcher.FetchDocument(ctx, h.baseURL)
	if err != nil {
		return "", err
	}

	version := scraper.ExtractLatestVersion(doc)
	if version == "" {
		return "", fmt.Errorf("%w: no version number found on index page", models.ErrExtraction)
	}
	return version, nil
}

// AvailableVersions enumerates every version reachable from the index
// page, newest first, deduplicated.
func (h *VSCodeHandler) AvailableVersions(ctx context.Context) ([]string, error) {
	doc, err := h.fetcher.FetchDocument(ctx, h.baseURL)
	if err != nil {
		return nil, err
	}
	return scraper.ExtractAvailableVersions(doc), nil
}

// ScrapeLatest scrapes the newest version from the index page.
func (h *VSCodeHandler) ScrapeLatest(ctx context.Context) bool {
	version, err := h.LatestVersion(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Could not determine latest version")
		return false
	}
	return h.ScrapeVersion(ctx, version)
}

// ScrapeVersion scrapes a single version and saves it.
func (h *VSCodeHandler) ScrapeVersion(ctx context.Context, version string) bool {
	record, err := h.FetchAndExtract(ctx, version)
	if err != nil {
		h.logger.Error().Err(err).Str("version", version).Msg("Failed to scrape version")
		return false
	}
	return h.Save(record)
}

// ScrapeAll scrapes every available version sequentially, continuing
// past individual failures.
func (h *VSCodeHandler) ScrapeAll(ctx context.Context) bool {
	versions, err := h.AvailableVersions(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to enumerate versions")
		return false
	}
	if len(versions) == 0 {
		h.logger.Warn().Msg("No versions found")
		return false
	}

	successCount := 0
	for _, version := range versions {
		if h.ScrapeVersion(ctx, version) {
			successCount++
		}
	}

	h.logger.Info().Msgf("Successfully scraped %d out of %d versions", successCount, len(versions))
	return successCount > 0
}

// ScrapeVersionRange scrapes the contiguous inclusive slice of the
// newest-first version list between from and to. The bounds may be
// given in either order; both must be present in the enumerated list.
func (h *VSCodeHandler) ScrapeVersionRange(ctx context.Context, from, to string) bool {
	if !h.Validate(from) || !h.Validate(to) {
		h.logger.Error().Str("from", from).Str("to", to).Msg("Invalid version format in range")
		return false
	}

	versions, err := h.AvailableVersions(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to enumerate versions")
		return false
	}

	selected := selectVersionRange(versions, from, to)
	if len(selected) == 0 {
		h.logger.Warn().Str("from", from).Str("to", to).Msg("Version range not found in available versions")
		return false
	}

	successCount := 0
	for _, version := range selected {
		if h.ScrapeVersion(ctx, version) {
			successCount++
		}
	}

	h.logger.Info().Msgf("Successfully scraped %d out of %d versions", successCount, len(selected))
	return successCount > 0
}

// Save renders the record and writes it to releases/vscode/<version>.md.
func (h *VSCodeHandler) Save(record *models.ReleaseRecord) bool {
	content := h.generator.VSCodeRelease(record)
	path := h.store.VSCodeReleasePath(record.Version)

	if err := h.store.SaveMarkdown(path, content); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("Failed to save release")
		return false
	}

	h.logger.Info().Str("version", record.Version).Str("path", path).Msg("Saved VS Code release")
	return true
}

// selectVersionRange slices the newest-first list between the two bounds
// inclusively, regardless of which bound comes first in the list. Both
// bounds must be present; otherwise no versions are selected.
func selectVersionRange(versions []string, from, to string) []string {
	fromIdx, toIdx := -1, -1
	for i, v := range versions {
		if v == from {
			fromIdx = i
		}
		if v == to {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return nil
	}
	if fromIdx > toIdx {
		fromIdx, toIdx = toIdx, fromIdx
	}
	return versions[fromIdx : toIdx+1]
}

// formatSections joins named sections into a single body, one h2-style
// heading per section, in page order.
func formatSections(sections []models.Section) string {
	if len(sections) == 0 {
		return ""
	}

	var b strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", section.Name, section.Body)
	}
	return strings.TrimSpace(b.String())
}

// Ensure interface compliance
var _ interfaces.SourceHandler = (*VSCodeHandler)(nil)
