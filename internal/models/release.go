package models

// SourceType identifies which kind of source a release was scraped from.
// It determines validation rules, fetch strategy and output path shape.
type SourceType string

const (
	SourceTypeGitHub SourceType = "github"
	SourceTypeVSCode SourceType = "vscode"
	SourceTypeWeb    SourceType = "web"
)

// ReleaseAsset is a downloadable artifact attached to a GitHub release.
type ReleaseAsset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Section is a named block of body text delimited by h2 headings on a
// source page. Order matches page order.
type Section struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// ReleaseRecord is the normalized result of one successful scrape.
// It is built by a source handler, consumed once by the markdown
// generator, and never persisted on its own.
type ReleaseRecord struct {
	// Version is the release tag, version number or page title used to
	// identify the release. Never empty.
	Version string `json:"version"`

	// Date is the publication date as scraped ("June 12, 2025",
	// "2025-06-12", ...). Empty when the page carried no date.
	Date string `json:"date"`

	// Content is the release body. May be empty when the source page
	// genuinely had no matching content.
	Content string `json:"content"`

	// Repo is the owner/name coordinate the release belongs to
	// (GitHub only). Filing paths are derived from it.
	Repo string `json:"repo,omitempty"`

	// Author is the release author login (GitHub only).
	Author string `json:"author,omitempty"`

	// Assets are attached downloads in source order (GitHub only).
	Assets []ReleaseAsset `json:"assets,omitempty"`

	// SourceURL is the canonical URL the release was scraped from.
	SourceURL string `json:"source_url"`
}
