package fbref

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/provider/fetch"
)

func TestNormalize_AwayMatch(t *testing.T) {
	m, issues, skip := NewNormalizer().Normalize(provider.RawRow{
		colDate:     "2023-09-16",
		colComp:     "La Liga",
		colVenue:    "Away",
		colResult:   "W 5–0",
		colSquad:    "Barcelona",
		colOpponent: "Betis",
		colStart:    "N",
		colMin:      "25",
		colGls:      "0",
		colAst:      "1",
		colCrdY:     "1",
		colCrdR:     "1",
	})
	require.False(t, skip)
	require.NotNil(t, m.Date)
	assert.Equal(t, "2023-09-16", m.Date.Format(provider.DateLayout))
	assert.Equal(t, "Real Betis", m.HomeTeam)
	assert.Equal(t, "FC Barcelona", m.AwayTeam)
	assert.Equal(t, provider.LineupSubstitute, m.Lineup)
	assert.Equal(t, "W 5–0", m.Result)
	assert.Equal(t, 25, *m.Minutes)
	assert.Equal(t, 2, *m.Cards)
	assert.Empty(t, issues.BadNumeric)
	assert.Empty(t, issues.Unmapped)
}

func TestNormalize_NationalTeamWithPrefix(t *testing.T) {
	m, issues, _ := NewNormalizer().Normalize(provider.RawRow{
		colDate:     "2023-09-08",
		colComp:     "UEFA Euro Qualifying",
		colVenue:    "Home",
		colSquad:    "es Spain",
		colOpponent: "ge Georgia",
		colStart:    "Y",
		colMin:      "",
	})
	assert.Equal(t, "Spain", m.HomeTeam)
	assert.Equal(t, "Georgia", m.AwayTeam)
	assert.Equal(t, "UEFA Euro Qualification", m.Competition)
	assert.Equal(t, provider.LineupStarter, m.Lineup)
	assert.Nil(t, m.Minutes)
	assert.Contains(t, issues.BadNumeric, "minutes")
	assert.Empty(t, issues.Unmapped)
}

func TestNormalize_UnknownSquadIsUnmapped(t *testing.T) {
	m, issues, _ := NewNormalizer().Normalize(provider.RawRow{
		colDate:     "2024-07-14",
		colComp:     "UEFA Euro",
		colVenue:    "Away",
		colSquad:    "es Espana",
		colOpponent: "eng England",
	})
	assert.Equal(t, "England", m.HomeTeam)
	assert.Equal(t, []provider.Unmapped{{Kind: "team", Value: "Espana"}}, issues.Unmapped)
}

func TestNormalize_SkipsHeaderEcho(t *testing.T) {
	_, _, skip := NewNormalizer().Normalize(provider.RawRow{colDate: "Date"})
	assert.True(t, skip)
}

func TestStripCountry(t *testing.T) {
	assert.Equal(t, "Spain", StripCountry("es Spain"))
	assert.Equal(t, "Arsenal", StripCountry("eng Arsenal"))
	assert.Equal(t, "Barcelona", StripCountry("Barcelona"))
	assert.Equal(t, "Real Madrid", StripCountry("Real Madrid"))
}

func TestSeasonFromURL(t *testing.T) {
	url := "https://fbref.com/en/players/82ec26c1/matchlogs/2023-2024/Lamine-Yamal-Match-Logs"
	assert.Equal(t, "2023-2024", SeasonFromURL(url))
}

const matchLogsPage = `<html><body>
<div id="all_matchlogs"><!--
<table id="matchlogs_all">
<thead>
<tr><th colspan="3"></th><th colspan="2">Performance</th></tr>
<tr><th>Date</th><th>Comp</th><th>Venue</th><th>Squad</th><th>Opponent</th><th>Min</th></tr>
</thead>
<tbody>
<tr><th>2023-08-13</th><td>La Liga</td><td>Away</td><td>Barcelona</td><td>Getafe</td><td>90</td></tr>
<tr class="thead"><th>Date</th><td>Comp</td></tr>
<tr class="spacer"><th></th></tr>
<tr><th>2023-08-20</th><td>La Liga</td><td>Home</td><td>Barcelona</td><td>Cádiz</td><td>65</td></tr>
</tbody></table>
--></div></body></html>`

func TestParsePage(t *testing.T) {
	table, err := ParsePage(matchLogsPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Comp", "Venue", "Squad", "Opponent", "Min"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Getafe", table.Rows[0][colOpponent])
	assert.Equal(t, "65", table.Rows[1][colMin])
}

func TestParsePage_MissingTable(t *testing.T) {
	_, err := ParsePage("<html><body><table id=\"other\"></table></body></html>")
	require.Error(t, err)
}

func TestScrape_TagsSeasonAndSkipsFailedPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/matchlogs/2023-2024/Logs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, matchLogsPage)
	})
	mux.HandleFunc("/matchlogs/2024-2025/Logs", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := fetch.NewClient("test", 60_000, logger).WithBackoff(time.Millisecond)
	s := NewScraper(client, 0, logger)

	table, err := s.Scrape(context.Background(), []string{
		srv.URL + "/matchlogs/2023-2024/Logs",
		srv.URL + "/matchlogs/2024-2025/Logs",
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.True(t, table.HasColumn(ColSeason))
	for _, row := range table.Rows {
		assert.Equal(t, "2023-2024", row[ColSeason])
	}
}
