package fbref

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/provider/fetch"
)

// Scraper collects fbref match-log pages into one raw table.
type Scraper struct {
	client *fetch.Client
	delay  time.Duration
	logger *slog.Logger
}

// NewScraper creates an fbref scraper. delay is waited between pages on top
// of the client's own rate limit.
func NewScraper(client *fetch.Client, delay time.Duration, logger *slog.Logger) *Scraper {
	return &Scraper{client: client, delay: delay, logger: logger}
}

// Scrape fetches every season page and concatenates the matchlogs_all rows,
// tagging each with the season taken from its URL. The header is the union
// of page headers in first-seen order.
func (s *Scraper) Scrape(ctx context.Context, urls []string) (provider.RawTable, error) {
	var out provider.RawTable
	seen := make(map[string]struct{})

	for i, url := range urls {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(s.delay):
			}
		}

		s.logger.Info("Scraping page", "provider", provider.FBref, "url", url)
		body, err := s.client.Get(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			s.logger.Warn("Page fetch failed", "url", url, "error", err)
			continue
		}

		page, err := ParsePage(string(body))
		if err != nil {
			s.logger.Warn("Page parse failed", "url", url, "error", err)
			continue
		}

		season := SeasonFromURL(url)
		for _, h := range append(page.Header, ColSeason) {
			if _, ok := seen[h]; !ok {
				seen[h] = struct{}{}
				out.Header = append(out.Header, h)
			}
		}
		for _, row := range page.Rows {
			row[ColSeason] = season
			out.Rows = append(out.Rows, row)
		}
		s.logger.Debug("Page parsed", "url", url, "season", season, "rows", len(page.Rows))
	}

	if len(out.Rows) == 0 {
		return out, fmt.Errorf("no match-log rows found in %d fbref pages", len(urls))
	}
	return out, nil
}

// ParsePage reads table#matchlogs_all. The last thead row holds the column
// names; body rows that repeat the header or have no date are dropped.
func ParsePage(html string) (provider.RawTable, error) {
	// fbref ships some tables inside HTML comments.
	clean := strings.ReplaceAll(html, "<!--", "")
	clean = strings.ReplaceAll(clean, "-->", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return provider.RawTable{}, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table#matchlogs_all").First()
	if table.Length() == 0 {
		return provider.RawTable{}, fmt.Errorf("table#matchlogs_all not found")
	}

	var header []string
	table.Find("thead tr").Last().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, strings.TrimSpace(cell.Text()))
	})
	if len(header) == 0 {
		return provider.RawTable{}, fmt.Errorf("matchlogs_all has no header row")
	}

	t := provider.RawTable{Header: header}
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") || tr.HasClass("spacer") {
			return
		}
		row := make(provider.RawRow, len(header))
		tr.Find("th,td").Each(func(i int, cell *goquery.Selection) {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(cell.Text())
			}
		})
		date := row[colDate]
		if date == "" || date == colDate {
			return
		}
		t.Rows = append(t.Rows, row)
	})
	return t, nil
}

// SeasonFromURL returns the season path segment of a match-log URL
// (".../matchlogs/2023-2024/Name-Match-Logs" -> "2023-2024").
func SeasonFromURL(url string) string {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}
