package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
)

const scrapedTimeFormat = "2006-01-02 15:04:05"

// Generator assembles release records into markdown documents with a
// fixed header/metadata/body/footer layout.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a generator using the wall clock for scrape
// timestamps.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// GitHubRelease renders a GitHub release document. The body goes under
// "## Overview" and attached assets under "## Downloads".
func (g *Generator) GitHubRelease(repo string, record *models.ReleaseRecord) string {
	sourceURL := record.SourceURL
	if sourceURL == "" {
		sourceURL = fmt.Sprintf("https://github.com/%s/releases/tag/%s", repo, record.Version)
	}
	scraped := g.now().Format(scrapedTimeFormat)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s - %s\n\n", repo, record.Version)
	if record.Date != "" {
		fmt.Fprintf(&b, "**Release Date**: %s\n", record.Date)
	}
	if record.Author != "" {
		fmt.Fprintf(&b, "**Author**: %s\n", record.Author)
	}
	fmt.Fprintf(&b, "**Source**: %s\n", sourceURL)
	fmt.Fprintf(&b, "**Scraped**: %s\n\n", scraped)

	if record.Content != "" {
		b.WriteString("## Overview\n\n")
		b.WriteString(Convert(record.Content))
		b.WriteString("\n\n")
	}

	if len(record.Assets) > 0 {
		b.WriteString("## Downloads\n\n")
		for _, asset := range record.Assets {
			fmt.Fprintf(&b, "- [%s](%s)\n", asset.Name, asset.URL)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n*Scraped from %s on %s*", sourceURL, scraped)
	return b.String()
}

// VSCodeRelease renders a VS Code release document. The body goes under
// "## Changes".
func (g *Generator) VSCodeRelease(record *models.ReleaseRecord) string {
	sourceURL := record.SourceURL
	if sourceURL == "" {
		sourceURL = fmt.Sprintf("https://code.visualstudio.com/updates/v%s", strings.ReplaceAll(record.Version, ".", "_"))
	}
	scraped := g.now().Format(scrapedTimeFormat)

	var b strings.Builder
	fmt.Fprintf(&b, "# Visual Studio Code - %s\n\n", record.Version)
	if record.Date != "" {
		fmt.Fprintf(&b, "**Release Date**: %s\n", record.Date)
	}
	fmt.Fprintf(&b, "**Source**: %s\n", sourceURL)
	fmt.Fprintf(&b, "**Scraped**: %s\n\n", scraped)

	if record.Content != "" {
		b.WriteString("## Changes\n\n")
		b.WriteString(Convert(record.Content))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "---\n*Scraped from %s on %s*", sourceURL, scraped)
	return b.String()
}

// WebRelease renders a generic web page document. The title line pairs
// the source name with the extracted page title; the body goes under
// "## Changes".
func (g *Generator) WebRelease(sourceName string, record *models.ReleaseRecord) string {
	scraped := g.now().Format(scrapedTimeFormat)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s - %s\n\n", sourceName, record.Version)
	if record.Date != "" {
		fmt.Fprintf(&b, "**Release Date**: %s\n", record.Date)
	}
	if record.SourceURL != "" {
		fmt.Fprintf(&b, "**Source**: %s\n", record.SourceURL)
	}
	fmt.Fprintf(&b, "**Scraped**: %s\n\n", scraped)

	if record.Content != "" {
		b.WriteString("## Changes\n\n")
		b.WriteString(Convert(record.Content))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "---\n*Scraped from %s on %s*", record.SourceURL, scraped)
	return b.String()
}
