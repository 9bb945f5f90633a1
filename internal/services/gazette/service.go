package gazette

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/httpclient"
	"github.com/ternarybob/auspex/internal/models"
)

const cacheKey = "gazette_index"

// Service scrapes the government gazette index page. Scrape results are
// cached for the configured TTL so report requests don't hammer the
// upstream site; the report assembler treats a thin result as a signal to
// merge in the internal regulatory fallback.
type Service struct {
	config *common.GazetteConfig
	client *http.Client
	cache  *gocache.Cache
	logger arbor.ILogger
}

// NewService creates the gazette scraper
func NewService(config *common.GazetteConfig, logger arbor.ILogger) *Service {
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Service{
		config: config,
		client: httpclient.NewDefaultHTTPClient(config.RequestTimeout),
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Fetch returns the current gazette index entries, served from cache when
// a recent scrape is available
func (s *Service) Fetch(ctx context.Context) ([]models.GazetteEntry, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.GazetteEntry), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gazette request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: gazette request failed: %v", common.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gazette index returned status %d", common.ErrUpstreamFailure, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse gazette index: %v", common.ErrUpstreamFailure, err)
	}

	entries := s.parseIndex(doc)
	if len(entries) > 0 {
		s.cache.Set(cacheKey, entries, gocache.DefaultExpiration)
	}

	s.logger.Debug().Int("entries", len(entries)).Msg("Gazette index scraped")
	return entries, nil
}

// parseIndex extracts {date, title, link} rows from the index table
func (s *Service) parseIndex(doc *goquery.Document) []models.GazetteEntry {
	base, _ := url.Parse(s.config.URL)

	var entries []models.GazetteEntry
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		anchor := row.Find("a").First()
		href, ok := anchor.Attr("href")
		if !ok || href == "" {
			return
		}

		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			title = strings.TrimSpace(cells.Eq(1).Text())
		}
		if title == "" {
			return
		}

		entries = append(entries, models.GazetteEntry{
			Date:   strings.TrimSpace(cells.Eq(0).Text()),
			Title:  title,
			Link:   resolveLink(base, href),
			Source: sourceHost(base),
		})
	})
	return entries
}

func resolveLink(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func sourceHost(base *url.URL) string {
	if base == nil {
		return ""
	}
	return base.Host
}
