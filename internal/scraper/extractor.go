package scraper

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
)

// Heuristic content extraction over parsed pages. All functions are
// stateless; a nil or empty selection simply yields the documented
// fallback, never a panic.

var (
	versionPattern     = regexp.MustCompile(`(?i)version (\d+\.\d+)`)
	headingDatePattern = regexp.MustCompile(`(?i)Release date: ([^)]+)`)
	siblingDatePattern = regexp.MustCompile(`(?i)Release date: (.+)`)
	versionLinkPattern = regexp.MustCompile(`/updates/v(\d+_\d+)`)
	versionFormat      = regexp.MustCompile(`^\d+\.\d+$`)

	// Date phrasings tried in fixed priority order; first match wins.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Release date:\s*([^<\n]+)`),
		regexp.MustCompile(`(?i)Published:\s*([^<\n]+)`),
		regexp.MustCompile(`(?i)Date:\s*([^<\n]+)`),
		regexp.MustCompile(`(\w+ \d{1,2}, \d{4})`),
		regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	}

	// Content containers tried in fixed order for generic pages.
	contentSelectors = []string{
		"main",
		".content",
		"#content",
		".main-content",
		"article",
		".post-content",
	}
)

// ExtractTitle returns the page title for generic pages: the first h1 or
// h2, falling back to the <title> element, falling back to "Unknown
// Title".
func ExtractTitle(doc *goquery.Document) string {
	if heading := doc.Find("h1, h2").First(); heading.Length() > 0 {
		return strings.TrimSpace(heading.Text())
	}
	if title := doc.Find("title").First(); title.Length() > 0 {
		return strings.TrimSpace(title.Text())
	}
	return "Unknown Title"
}

// ExtractDate searches the page's flattened text against the fixed list
// of date phrasings and returns the first match, or "" when none match.
func ExtractDate(doc *goquery.Document) string {
	text := doc.Text()
	for _, pattern := range datePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ExtractSections returns one named section per h2 heading, in page
// order. A section's body is the newline-joined text of the heading's
// following siblings up to but excluding the next h2. A page with no h2
// headings yields no sections.
func ExtractSections(doc *goquery.Document) []models.Section {
	var sections []models.Section
	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		name := strings.TrimSpace(h2.Text())
		var parts []string
		h2.NextUntil("h2").Each(func(_ int, sib *goquery.Selection) {
			if text := strings.TrimSpace(sib.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			sections = append(sections, models.Section{
				Name: name,
				Body: strings.Join(parts, "\n"),
			})
		}
	})
	return sections
}

// ExtractVersionInfo extracts the version number and release date from a
// release-notes page. The first h1/h2 heading must carry a
// "version <major>.<minor>" phrase; a page without one is not a valid
// release page. When the heading itself has no date, the next <p>
// sibling is checked before giving up with "Unknown".
func ExtractVersionInfo(doc *goquery.Document) (version, date string, err error) {
	heading := doc.Find("h1, h2").First()
	if heading.Length() == 0 {
		return "", "", fmt.Errorf("%w: no heading found on page", models.ErrExtraction)
	}

	headingText := heading.Text()
	m := versionPattern.FindStringSubmatch(headingText)
	if m == nil {
		return "", "", fmt.Errorf("%w: no version number in heading %q", models.ErrExtraction, strings.TrimSpace(headingText))
	}
	version = m[1]

	if dm := headingDatePattern.FindStringSubmatch(headingText); dm != nil {
		date = strings.TrimSpace(dm[1])
	} else if p := heading.NextAllFiltered("p").First(); p.Length() > 0 {
		if dm := siblingDatePattern.FindStringSubmatch(p.Text()); dm != nil {
			date = strings.TrimSpace(dm[1])
		}
	}
	if date == "" {
		date = "Unknown"
	}

	return version, date, nil
}

// ExtractLatestVersion scans the index page's headings for a
// "version <major>.<minor>" phrase and returns the first match, or ""
// when no heading carries one.
func ExtractLatestVersion(doc *goquery.Document) string {
	latest := ""
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if m := versionPattern.FindStringSubmatch(heading.Text()); m != nil {
			latest = m[1]
			return false
		}
		return true
	})
	return latest
}

// ExtractAvailableVersions enumerates every version-page link on the
// index page (hrefs like /updates/v1_101), deduplicated and sorted
// newest-first.
func ExtractAvailableVersions(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var versions []string
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		m := versionLinkPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		version := strings.ReplaceAll(m[1], "_", ".")
		if !versionFormat.MatchString(version) || seen[version] {
			return
		}
		seen[version] = true
		versions = append(versions, version)
	})

	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) > 0
	})
	return versions
}

// ExtractMainContent returns the HTML of the page's main content block,
// using the first matching container selector, falling back to the whole
// body, falling back to empty when the page has no body. Navigation
// chrome is removed from the chosen block; script/style stripping is the
// renderer's job.
func ExtractMainContent(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return contentHTML(sel)
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return contentHTML(body)
	}
	return ""
}

func contentHTML(sel *goquery.Selection) string {
	sel.Find("nav, header, footer").Remove()
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return html
}

// compareVersions orders <major>.<minor> strings numerically.
func compareVersions(a, b string) int {
	aMajor, aMinor := splitVersion(a)
	bMajor, bMinor := splitVersion(b)
	if aMajor != bMajor {
		return aMajor - bMajor
	}
	return aMinor - bMinor
}

func splitVersion(v string) (major, minor int) {
	parts := strings.SplitN(v, ".", 2)
	major, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}
