package markdown

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Convert rewrites an HTML fragment into markdown-flavored text using a
// fixed ordered list of rewrite rules. The conversion is deliberately
// lossy: it is a flat text rewrite, not a structural translation. A rule
// that finds no match is a no-op, so malformed input never fails and
// already-clean text passes through unchanged.

type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rewriteRules = []rewriteRule{
	// Headings
	{regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`), "# $1"},
	{regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`), "## $1"},
	{regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`), "### $1"},
	{regexp.MustCompile(`(?is)<h4[^>]*>(.*?)</h4>`), "#### $1"},
	{regexp.MustCompile(`(?is)<h5[^>]*>(.*?)</h5>`), "##### $1"},
	{regexp.MustCompile(`(?is)<h6[^>]*>(.*?)</h6>`), "###### $1"},

	// Paragraphs
	{regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`), "$1\n\n"},

	// Lists: unwrap containers, prefix items
	{regexp.MustCompile(`(?is)<ul[^>]*>(.*?)</ul>`), "$1"},
	{regexp.MustCompile(`(?is)<ol[^>]*>(.*?)</ol>`), "$1"},
	{regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`), "- $1\n"},

	// Emphasis
	{regexp.MustCompile(`(?is)<strong[^>]*>(.*?)</strong>`), "**$1**"},
	{regexp.MustCompile(`(?is)<b[^>]*>(.*?)</b>`), "**$1**"},
	{regexp.MustCompile(`(?is)<em[^>]*>(.*?)</em>`), "*$1*"},
	{regexp.MustCompile(`(?is)<i[^>]*>(.*?)</i>`), "*$1*"},

	// Links
	{regexp.MustCompile(`(?is)<a[^>]*href=["']([^"']*)["'][^>]*>(.*?)</a>`), "[$2]($1)"},

	// Code
	{regexp.MustCompile("(?is)<code[^>]*>(.*?)</code>"), "`$1`"},
	{regexp.MustCompile("(?is)<pre[^>]*>(.*?)</pre>"), "```\n$1\n```"},
}

var (
	remainingTagPattern = regexp.MustCompile(`<[^>]+>`)
	blankLinePattern    = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// Convert converts an HTML fragment to markdown-flavored text.
func Convert(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	text := stripNonContent(fragment)

	for _, rule := range rewriteRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}

	text = remainingTagPattern.ReplaceAllString(text, "")
	text = blankLinePattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// stripNonContent removes script, style and noscript elements entirely,
// attributes and nesting included. The fragment is parsed permissively;
// anything unparseable is passed through untouched.
func stripNonContent(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	doc.Find("script, style, noscript").Remove()

	html, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}
	return html
}
