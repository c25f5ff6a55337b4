package markdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
)

func fixedGenerator() *Generator {
	g := NewGenerator()
	g.now = func() time.Time {
		return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	}
	return g
}

func TestGitHubReleaseDocument(t *testing.T) {
	record := &models.ReleaseRecord{
		Version: "v1.2.3",
		Date:    "2025-06-12",
		Content: "Fixed a crash on startup.",
		Author:  "octocat",
		Assets: []models.ReleaseAsset{
			{Name: "widget-linux.tar.gz", URL: "https://example.com/widget-linux.tar.gz"},
			{Name: "widget-darwin.tar.gz", URL: "https://example.com/widget-darwin.tar.gz"},
		},
		SourceURL: "https://github.com/acme/widget/releases/tag/v1.2.3",
	}

	doc := fixedGenerator().GitHubRelease("acme/widget", record)

	expected := "# acme/widget - v1.2.3\n\n" +
		"**Release Date**: 2025-06-12\n" +
		"**Author**: octocat\n" +
		"**Source**: https://github.com/acme/widget/releases/tag/v1.2.3\n" +
		"**Scraped**: 2025-06-15 10:30:00\n\n" +
		"## Overview\n\n" +
		"Fixed a crash on startup.\n\n" +
		"## Downloads\n\n" +
		"- [widget-linux.tar.gz](https://example.com/widget-linux.tar.gz)\n" +
		"- [widget-darwin.tar.gz](https://example.com/widget-darwin.tar.gz)\n\n" +
		"---\n*Scraped from https://github.com/acme/widget/releases/tag/v1.2.3 on 2025-06-15 10:30:00*"

	assert.Equal(t, expected, doc)
}

func TestGitHubReleaseOmitsMissingOptionals(t *testing.T) {
	record := &models.ReleaseRecord{
		Version:   "v0.1.0",
		SourceURL: "https://github.com/acme/widget/releases/tag/v0.1.0",
	}

	doc := fixedGenerator().GitHubRelease("acme/widget", record)

	assert.NotContains(t, doc, "**Release Date**")
	assert.NotContains(t, doc, "**Author**")
	assert.NotContains(t, doc, "## Overview")
	assert.NotContains(t, doc, "## Downloads")
	assert.Contains(t, doc, "# acme/widget - v0.1.0")
	assert.Contains(t, doc, "**Scraped**: 2025-06-15 10:30:00")
}

func TestVSCodeReleaseDocument(t *testing.T) {
	record := &models.ReleaseRecord{
		Version: "1.101",
		Date:    "June 12, 2025",
		Content: "## Chat\n\nBetter completions.\n\n## Editor Experience\n\nFaster rendering.",
	}

	doc := fixedGenerator().VSCodeRelease(record)

	assert.True(t, len(doc) > 0)
	assert.Contains(t, doc, "# Visual Studio Code - 1.101")
	assert.Contains(t, doc, "**Release Date**: June 12, 2025")
	assert.Contains(t, doc, "**Source**: https://code.visualstudio.com/updates/v1_101")
	assert.Contains(t, doc, "## Changes")
	assert.Contains(t, doc, "Better completions.")
	assert.Contains(t, doc, "Faster rendering.")
	assert.Contains(t, doc, "*Scraped from https://code.visualstudio.com/updates/v1_101 on 2025-06-15 10:30:00*")
}

func TestWebReleaseDocument(t *testing.T) {
	record := &models.ReleaseRecord{
		Version:   "Release v1.0.0 - My App",
		Date:      "2025-06-01",
		Content:   "<p>New <strong>features</strong> everywhere.</p>",
		SourceURL: "https://myapp.example.com/releases/v1",
	}

	doc := fixedGenerator().WebRelease("myapp.example.com", record)

	assert.Contains(t, doc, "# myapp.example.com - Release v1.0.0 - My App")
	assert.Contains(t, doc, "**Release Date**: 2025-06-01")
	assert.Contains(t, doc, "**Source**: https://myapp.example.com/releases/v1")
	assert.Contains(t, doc, "## Changes")
	assert.Contains(t, doc, "New **features** everywhere.")
	assert.Contains(t, doc, "---\n*Scraped from https://myapp.example.com/releases/v1 on 2025-06-15 10:30:00*")
}

func TestWebReleaseOmitsEmptyDate(t *testing.T) {
	record := &models.ReleaseRecord{
		Version:   "Unknown Title",
		SourceURL: "https://example.com/notes",
	}

	doc := fixedGenerator().WebRelease("example.com", record)

	assert.NotContains(t, doc, "**Release Date**")
	assert.NotContains(t, doc, "## Changes")
}
