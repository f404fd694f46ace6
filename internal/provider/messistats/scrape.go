package messistats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/provider/fetch"
)

// Scraper collects the messistats game pages into one raw table.
type Scraper struct {
	client *fetch.Client
	delay  time.Duration
	logger *slog.Logger
}

// NewScraper creates a messistats scraper. delay is waited between pages on
// top of the client's own rate limit.
func NewScraper(client *fetch.Client, delay time.Duration, logger *slog.Logger) *Scraper {
	return &Scraper{client: client, delay: delay, logger: logger}
}

// Scrape fetches every URL and concatenates their game rows. A page that
// fails to download or parse is logged and skipped; it is an error only when
// no page yields any row.
func (s *Scraper) Scrape(ctx context.Context, urls []string) (provider.RawTable, error) {
	out := provider.RawTable{Header: Headers}

	for i, url := range urls {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(s.delay):
			}
		}

		s.logger.Info("Scraping page", "provider", provider.MessiStats, "url", url)
		body, err := s.client.Get(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			s.logger.Warn("Page fetch failed", "url", url, "error", err)
			continue
		}

		rows, err := ParsePage(bytes.NewReader(body))
		if err != nil {
			s.logger.Warn("Page parse failed", "url", url, "error", err)
			continue
		}
		s.logger.Debug("Page parsed", "url", url, "rows", len(rows))
		out.Rows = append(out.Rows, rows...)
	}

	if len(out.Rows) == 0 {
		return out, fmt.Errorf("no game rows found in %d messistats pages", len(urls))
	}
	return out, nil
}

// ParsePage extracts every table row that has data cells. Cells map onto
// Headers by position; rows narrower than Headers keep only the leading
// columns and wider rows drop the excess.
func ParsePage(r io.Reader) ([]provider.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var rows []provider.RawRow
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make(provider.RawRow, len(Headers))
		cells.Each(func(i int, td *goquery.Selection) {
			if i < len(Headers) {
				row[Headers[i]] = strings.TrimSpace(td.Text())
			}
		})
		rows = append(rows, row)
	})
	return rows, nil
}
