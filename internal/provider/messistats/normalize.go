package messistats

import (
	"strings"

	"github.com/albapepper/matchlogs/internal/provider"
)

// --------------------------------------------------------------------------
// Column names as written by the scraper (see Headers)
// --------------------------------------------------------------------------

const (
	colIndex       = "Index"
	colDate        = "Date"
	colCompetition = "Competition"
	colHomeTeam    = "Home Team"
	colResult      = "Result"
	colAwayTeam    = "Away Team"
	colLineup      = "Lineup"
	colMinutes     = "Minutes"
	colGoals       = "Goals"
	colAssists     = "Assists"
	colCards       = "Cards"
	colJersey      = "Jersey"
	colExtra       = "Extra"
)

// Headers is the fixed column set of a messistats game table, in page order.
// Rows narrower than this keep the leading columns.
var Headers = []string{
	colIndex, colDate, colCompetition, colHomeTeam, colResult, colAwayTeam,
	colLineup, colMinutes, colGoals, colAssists, colCards, colJersey, colExtra,
}

// DedupKey lists the columns that identify one match in the raw snapshot.
var DedupKey = []string{colDate, colHomeTeam, colAwayTeam}

// Day-first is what the site renders; the others cover re-saved snapshots.
var dateLayouts = []string{"02-01-2006", "2006-01-02", "02/01/2006"}

// --------------------------------------------------------------------------
// Alias tables
// --------------------------------------------------------------------------

var teamAliases = map[string]string{
	"Barcelona":           "FC Barcelona",
	"FC Barcelona":        "FC Barcelona",
	"PSG":                 "Paris Saint-Germain",
	"Paris SG":            "Paris Saint-Germain",
	"Paris Saint Germain": "Paris Saint-Germain",
	"Inter Miami CF":      "Inter Miami",
	"Inter Miami":         "Inter Miami",
	"Argentina":           "Argentina",
}

var competitionAliases = map[string]string{
	"Liga":                    "La Liga",
	"LaLiga":                  "La Liga",
	"La Liga":                 "La Liga",
	"Champions League":        "UEFA Champions League",
	"UEFA Champions League":   "UEFA Champions League",
	"Copa del Rey":            "Copa del Rey",
	"Supercopa de España":     "Spanish Super Cup",
	"Spanish Super Cup":       "Spanish Super Cup",
	"Ligue 1":                 "Ligue 1",
	"Trophée des Champions":   "Trophée des Champions",
	"MLS":                     "MLS",
	"Leagues Cup":             "Leagues Cup",
	"World Cup":               "FIFA World Cup",
	"World Cup Qualifiers":    "FIFA World Cup Qualification",
	"Copa América":            "Copa América",
	"Friendly":                "Friendly",
	"Club Friendly":           "Friendly",
	"International Friendly":  "International friendly",
	"UEFA Super Cup":          "UEFA Super Cup",
	"Club World Cup":          "FIFA Club World Cup",
	"FIFA Club World Cup":     "FIFA Club World Cup",
	"Finalissima":             "Finalissima",
	"Olympic Games":           "Olympic Games",
	"U-20 World Cup":          "FIFA U-20 World Cup",
	"South American U-20":     "South American U-20 Championship",
}

// --------------------------------------------------------------------------
// Normalizer
// --------------------------------------------------------------------------

// Normalizer maps messistats rows onto the canonical record.
type Normalizer struct {
	teams        *provider.AliasTable
	competitions *provider.AliasTable
}

// NewNormalizer creates a messistats normalizer with the built-in alias tables.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		teams:        provider.NewAliasTable("team", teamAliases),
		competitions: provider.NewAliasTable("competition", competitionAliases),
	}
}

func (n *Normalizer) Provider() provider.Provider { return provider.MessiStats }

func (n *Normalizer) RequiredColumns() []string {
	return []string{colDate, colHomeTeam, colAwayTeam, colCompetition}
}

// Prepare drops the scrape-artifact columns when present.
func (n *Normalizer) Prepare(t provider.RawTable) provider.RawTable {
	return provider.DropColumns(t, colIndex, colJersey, colExtra)
}

// Teams exposes the team alias table for closest-name suggestions.
func (n *Normalizer) Teams() *provider.AliasTable { return n.teams }

func (n *Normalizer) Normalize(row provider.RawRow) (provider.Match, provider.RowIssues, bool) {
	var issues provider.RowIssues

	if isHeaderEcho(row) {
		return provider.Match{}, issues, true
	}

	m := provider.Match{
		RawDate:    strings.TrimSpace(row[colDate]),
		RawMinutes: strings.TrimSpace(row[colMinutes]),
		Result:     strings.TrimSpace(row[colResult]),
	}

	m.Date = provider.ParseDate(m.RawDate, dateLayouts...)
	if m.Date == nil {
		issues.BadDate = true
	}

	m.Competition = issues.Resolve(n.competitions, provider.SecondLine(row[colCompetition]))
	m.HomeTeam, m.AwayTeam = issues.ResolveSides(n.teams, row[colHomeTeam], row[colAwayTeam])
	m.Lineup = parseLineup(provider.SecondLine(row[colLineup]))

	m.Minutes = count(row[colMinutes], "minutes", &issues)
	m.Goals = count(row[colGoals], "goals", &issues)
	m.Assists = count(row[colAssists], "assists", &issues)
	m.Cards = count(row[colCards], "cards", &issues)

	return m, issues, false
}

func count(cell, column string, issues *provider.RowIssues) *int {
	n, ok := provider.ParseCount(cell)
	if !ok {
		issues.AddBadNumeric(column)
		return nil
	}
	return &n
}

// parseLineup recognises the site's starter/substitute wording in English
// and Spanish. Unrecognised text passes through.
func parseLineup(s string) provider.Lineup {
	l := strings.ToLower(strings.TrimSpace(s))
	switch {
	case l == "":
		return ""
	case strings.Contains(l, "start"), strings.Contains(l, "titular"):
		return provider.LineupStarter
	case strings.Contains(l, "sub"), strings.Contains(l, "suplente"), strings.Contains(l, "bench"):
		return provider.LineupSubstitute
	}
	return provider.Lineup(strings.TrimSpace(s))
}

// isHeaderEcho reports a row that repeats the column names, which happens
// when a raw snapshot was concatenated with its own header.
func isHeaderEcho(row provider.RawRow) bool {
	return strings.TrimSpace(row[colDate]) == colDate &&
		strings.TrimSpace(row[colHomeTeam]) == colHomeTeam
}
