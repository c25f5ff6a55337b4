package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/hopchouinard/ReleaseNotesScrapper/internal/common"
	"github.com/hopchouinard/ReleaseNotesScrapper/internal/models"
)

// Fetcher performs blocking HTTP page fetches for the scraping handlers.
// Requests are rate limited per the configured requests-per-minute budget
// and parsed into goquery documents.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    arbor.ILogger
}

// NewFetcher creates a fetcher from scraper configuration.
func NewFetcher(config common.ScraperConfig, logger arbor.ILogger) *Fetcher {
	var limiter *rate.Limiter
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(config.RequestsPerMinute)/60.0), 1)
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: config.RequestTimeoutDuration(),
		},
		limiter:   limiter,
		userAgent: config.UserAgent,
		logger:    logger,
	}
}

// FetchDocument fetches a URL and parses the response body into a goquery
// document. Network failures, timeouts and non-2xx statuses are reported
// as ErrFetch.
func (f *Fetcher) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait for %s: %v", models.ErrFetch, url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", models.ErrFetch, url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Debug().Str("url", url).Msg("Fetching page")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", models.ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: fetching %s: HTTP status %d", models.ErrFetch, url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", models.ErrFetch, url, err)
	}

	return doc, nil
}
