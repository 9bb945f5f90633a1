package collector

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/httpclient"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
	"github.com/ternarybob/auspex/internal/services/analysis"
	"golang.org/x/time/rate"
)

// Scorer annotates a record with sentiment and impact fields. Scoring is
// produced by an external collaborator; when no scorer is configured the
// fields stay at their zero defaults and reports degrade gracefully.
type Scorer interface {
	Score(record *models.TextRecord)
}

// Service pulls topic feeds into the corpus store. One feed failing is
// logged and skipped; the batch continues with whatever sources answered.
type Service struct {
	config  *common.CollectorConfig
	corpus  interfaces.CorpusService
	client  *http.Client
	limiter *rate.Limiter
	scorer  Scorer
	logger  arbor.ILogger
}

// NewService creates the collector. scorer may be nil.
func NewService(config *common.CollectorConfig, corpus interfaces.CorpusService, scorer Scorer, logger arbor.ILogger) *Service {
	delay := config.RequestDelay
	if delay <= 0 {
		delay = time.Second
	}

	return &Service{
		config:  config,
		corpus:  corpus,
		client:  httpclient.NewRotatingAgentClient(config.RequestTimeout, config.UserAgents),
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		scorer:  scorer,
		logger:  logger,
	}
}

// RefreshNews rebuilds the news corpus from the configured topics
func (s *Service) RefreshNews(ctx context.Context) error {
	records, err := s.collectTopics(ctx, s.config.Topics)
	if err != nil {
		return err
	}
	return s.corpus.ReplaceNews(ctx, records)
}

// RefreshMarket rebuilds the market-data snapshot
func (s *Service) RefreshMarket(ctx context.Context) error {
	records, err := s.collectTopics(ctx, s.config.MarketTopics)
	if err != nil {
		return err
	}
	return s.corpus.ReplaceMarket(ctx, records)
}

// CollectRange scrapes a historical date window for the given topics and
// returns the collected records without touching the live corpus. Topics
// default to the configured news topics.
func (s *Service) CollectRange(ctx context.Context, start, end time.Time, topics []string) ([]models.TextRecord, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", common.ErrInvalidArgument)
	}
	if len(topics) == 0 {
		topics = s.config.Topics
	}

	window := fmt.Sprintf("after:%s before:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	queries := make([]string, 0, len(topics))
	for _, topic := range topics {
		queries = append(queries, topic+" "+window)
	}

	return s.collectTopics(ctx, queries)
}

// collectTopics pulls every topic feed, isolating per-source failures. It
// errors only when every source failed and nothing was collected.
func (s *Service) collectTopics(ctx context.Context, topics []string) ([]models.TextRecord, error) {
	var records []models.TextRecord
	var failures int

	for _, topic := range topics {
		items, err := s.fetchFeed(ctx, topic)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failures++
			s.logger.Warn().Err(err).Str("topic", topic).Msg("Feed pull failed, skipping source")
			continue
		}
		records = append(records, items...)
	}

	if len(records) == 0 && failures > 0 {
		return nil, fmt.Errorf("%w: all %d feed sources failed", common.ErrUpstreamFailure, failures)
	}

	deduped := models.DedupeByLink(records)
	s.logger.Info().
		Int("topics", len(topics)).
		Int("failures", failures).
		Int("records", len(deduped)).
		Msg("Feed collection completed")

	return deduped, nil
}

// fetchFeed pulls and parses one topic's RSS feed
func (s *Service) fetchFeed(ctx context.Context, topic string) ([]models.TextRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("hl", s.config.Language)
	params.Set("gl", s.config.Region)
	params.Set("ceid", s.config.Region+":"+languageCode(s.config.Language))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.FeedURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := time.Now()
	records := make([]models.TextRecord, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		if item.Link == "" {
			continue
		}

		cleaned := cleanText(item.Title + " " + item.Description)
		rec := models.TextRecord{
			Title:          strings.TrimSpace(item.Title),
			Link:           item.Link,
			Published:      models.ParsePublished(item.PubDate, now),
			Source:         itemSource(item),
			CleanedText:    cleaned,
			OperationalTag: analysis.SectorTag(cleaned),
		}
		if s.scorer != nil {
			s.scorer.Score(&rec)
		}
		records = append(records, rec)
	}

	return records, nil
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	PubDate     string    `xml:"pubDate"`
	Description string    `xml:"description"`
	Source      rssSource `xml:"source"`
}

type rssSource struct {
	Name string `xml:",chardata"`
	URL  string `xml:"url,attr"`
}

func itemSource(item rssItem) string {
	if name := strings.TrimSpace(item.Source.Name); name != "" {
		return name
	}
	return "Google News"
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// cleanText lowercases and strips markup so downstream keyword matching
// works on plain substring containment
func cleanText(text string) string {
	text = html.UnescapeString(text)
	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// languageCode reduces "en-LK" to "en" for the ceid parameter
func languageCode(language string) string {
	if idx := strings.Index(language, "-"); idx > 0 {
		return language[:idx]
	}
	return language
}
