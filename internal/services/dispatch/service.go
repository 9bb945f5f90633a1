// -----------------------------------------------------------------------
// Dispatch Service - assembles and emails the daily market brief
// -----------------------------------------------------------------------

package dispatch

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
	"github.com/ternarybob/auspex/internal/services/analysis"
)

// Service builds the daily stock brief from the current corpus and sends
// it to every subscriber that opted in. A recipient failure is logged and
// skipped so one bad address never blocks the rest of the list.
type Service struct {
	corpus      interfaces.CorpusService
	gazette     interfaces.GazetteService
	mailer      interfaces.MailerService
	subscribers interfaces.SubscriberStorage
	logger      arbor.ILogger
}

// NewService creates the daily dispatcher
func NewService(corpus interfaces.CorpusService, gazette interfaces.GazetteService, mailer interfaces.MailerService, subscribers interfaces.SubscriberStorage, logger arbor.ILogger) *Service {
	return &Service{
		corpus:      corpus,
		gazette:     gazette,
		mailer:      mailer,
		subscribers: subscribers,
		logger:      logger,
	}
}

// DispatchDaily builds the market brief and emails it to opted-in
// subscribers. An unconfigured mailer or an empty recipient list is a
// silent no-op, not an error.
func (s *Service) DispatchDaily(ctx context.Context) error {
	if !s.mailer.IsConfigured() {
		s.logger.Warn().Msg("Mailer not configured, skipping daily dispatch")
		return nil
	}

	subs, err := s.subscribers.ListSubscribers()
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	recipients := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.WantsReports {
			recipients = append(recipients, sub.Email)
		}
	}
	if len(recipients) == 0 {
		s.logger.Info().Msg("No opted-in subscribers, skipping daily dispatch")
		return nil
	}

	report := s.buildReport(ctx)
	subject := fmt.Sprintf("Auspex Daily Market Brief - %s", time.Now().Format("2006-01-02"))
	textBody := renderText(report)
	htmlBody := renderHTML(report)

	var failures int
	for _, email := range recipients {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.mailer.SendHTMLEmail(ctx, email, subject, htmlBody, textBody); err != nil {
			failures++
			s.logger.Warn().Err(err).Str("recipient", email).Msg("Failed to send daily brief")
			continue
		}
	}

	s.logger.Info().
		Int("recipients", len(recipients)).
		Int("failures", failures).
		Int("data_points", report.DataPoints).
		Msg("Daily dispatch completed")

	return nil
}

// buildReport assembles the neutral-profile stock brief. A gazette scrape
// failure degrades to the internal regulatory fallback.
func (s *Service) buildReport(ctx context.Context) models.StockReport {
	var external []models.GazetteEntry
	if s.gazette != nil {
		entries, err := s.gazette.Fetch(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Gazette scrape failed, using internal fallback")
		} else {
			external = entries
		}
	}

	sqc := models.StockQueryContext{
		Horizon:     "short_term",
		RiskProfile: models.RiskProfileNeutral,
	}
	return analysis.BuildStockReport(s.corpus.News(), s.corpus.Market(), sqc, external)
}

func renderText(report models.StockReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Market Sentiment: %.2f\n", report.MarketSentiment)
	fmt.Fprintf(&b, "Recommended Action: %s\n", report.RecommendedAction)
	if report.TopSector != "" {
		fmt.Fprintf(&b, "Top Sector: %s\n", report.TopSector)
	}
	fmt.Fprintf(&b, "Data Points: %d\n\n", report.DataPoints)

	if len(report.EntitySignals) > 0 {
		b.WriteString("Entity Signals:\n")
		for _, sig := range report.EntitySignals {
			fmt.Fprintf(&b, "  %s (%s): %s (%.2f)\n", sig.Ticker, sig.Name, sig.Signal, sig.Sentiment)
		}
		b.WriteString("\n")
	}

	if len(report.Events) > 0 {
		b.WriteString("Corporate Events:\n")
		for _, event := range report.Events {
			fmt.Fprintf(&b, "  [%s] %s\n", event.Event, event.Title)
		}
		b.WriteString("\n")
	}

	if len(report.GazetteMatches) > 0 {
		b.WriteString("Regulatory Watch:\n")
		for _, entry := range report.GazetteMatches {
			fmt.Fprintf(&b, "  %s - %s\n", entry.Date, entry.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString(report.ReportText)
	return b.String()
}

func renderHTML(report models.StockReport) string {
	var b strings.Builder

	b.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #222;\">")
	b.WriteString("<h2>Auspex Daily Market Brief</h2>")

	fmt.Fprintf(&b, "<p><strong>Market Sentiment:</strong> %.2f<br>", report.MarketSentiment)
	fmt.Fprintf(&b, "<strong>Recommended Action:</strong> %s<br>", html.EscapeString(report.RecommendedAction))
	if report.TopSector != "" {
		fmt.Fprintf(&b, "<strong>Top Sector:</strong> %s<br>", html.EscapeString(report.TopSector))
	}
	fmt.Fprintf(&b, "<strong>Data Points:</strong> %d</p>", report.DataPoints)

	if len(report.EntitySignals) > 0 {
		b.WriteString("<h3>Entity Signals</h3><ul>")
		for _, sig := range report.EntitySignals {
			fmt.Fprintf(&b, "<li><strong>%s</strong> (%s): %s (%.2f)</li>",
				html.EscapeString(sig.Ticker), html.EscapeString(sig.Name), sig.Signal, sig.Sentiment)
		}
		b.WriteString("</ul>")
	}

	if len(report.Events) > 0 {
		b.WriteString("<h3>Corporate Events</h3><ul>")
		for _, event := range report.Events {
			fmt.Fprintf(&b, "<li>[%s] <a href=\"%s\">%s</a></li>",
				html.EscapeString(event.Event), html.EscapeString(event.Link), html.EscapeString(event.Title))
		}
		b.WriteString("</ul>")
	}

	if len(report.GazetteMatches) > 0 {
		b.WriteString("<h3>Regulatory Watch</h3><ul>")
		for _, entry := range report.GazetteMatches {
			fmt.Fprintf(&b, "<li>%s - <a href=\"%s\">%s</a></li>",
				html.EscapeString(entry.Date), html.EscapeString(entry.Link), html.EscapeString(entry.Title))
		}
		b.WriteString("</ul>")
	}

	b.WriteString("</body></html>")
	return b.String()
}
