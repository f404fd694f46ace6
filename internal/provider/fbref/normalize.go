package fbref

import (
	"regexp"
	"strings"

	"github.com/albapepper/matchlogs/internal/provider"
)

// --------------------------------------------------------------------------
// Column names of the matchlogs_all table
// --------------------------------------------------------------------------

const (
	colDate     = "Date"
	colComp     = "Comp"
	colVenue    = "Venue"
	colResult   = "Result"
	colSquad    = "Squad"
	colOpponent = "Opponent"
	colStart    = "Start"
	colMin      = "Min"
	colGls      = "Gls"
	colAst      = "Ast"
	colCrdY     = "CrdY"
	colCrdR     = "CrdR"

	// ColSeason is appended by the scraper from the page URL.
	ColSeason = "Season"
)

// Squad and Opponent cells carry a lowercase country code before the name.
var countryPrefix = regexp.MustCompile(`^[a-z]{2,3}\s+`)

// --------------------------------------------------------------------------
// Alias tables
// --------------------------------------------------------------------------

var teamAliases = map[string]string{
	"Barcelona":       "FC Barcelona",
	"Betis":           "Real Betis",
	"Athletic Club":   "Athletic de Bilbao",
	"Celta Vigo":      "Celta de Vigo",
	"Paris S-G":       "Paris Saint-Germain",
	"Shakhtar":        "Shakhtar Donetsk",
	"Almeria":         "UD Almería",
	"Porto":           "FC Porto",
	"Mallorca":        "Real Mallorca",
	"Antwerp":         "Antwerp",
	"Osasuna":         "Osasuna",
	"Napoli":          "Napoli",
	"Las Palmas":      "Las Palmas",
	"Granada":         "Granada",
	"Valencia":        "Valencia",
	"Real Sociedad":   "Real Sociedad",
	"Atlético Madrid": "Atlético Madrid",
	"Real Madrid":     "Real Madrid",
	"Sevilla":         "Sevilla",
	"Girona":          "Girona",
	"Alavés":          "Alavés",
	"Rayo Vallecano":  "Rayo Vallecano",
	"Getafe":          "Getafe",
	"Cádiz":           "Cádiz",
	"Spain":           "Spain",
}

var competitionAliases = map[string]string{
	"La Liga":              "La Liga",
	"Champions Lg":         "UEFA Champions League",
	"Copa del Rey":         "Copa del Rey",
	"Supercopa de España":  "Spanish Super Cup",
	"Friendlies (M)":       "International friendly",
	"UEFA Nations League":  "UEFA Nations League",
	"UEFA Euro Qualifying": "UEFA Euro Qualification",
	"UEFA Euro":            "UEFA Euro",
}

// --------------------------------------------------------------------------
// Normalizer
// --------------------------------------------------------------------------

// Normalizer maps fbref match-log rows onto the canonical record.
type Normalizer struct {
	teams        *provider.AliasTable
	competitions *provider.AliasTable
}

// NewNormalizer creates an fbref normalizer with the built-in alias tables.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		teams:        provider.NewAliasTable("team", teamAliases),
		competitions: provider.NewAliasTable("competition", competitionAliases),
	}
}

func (n *Normalizer) Provider() provider.Provider { return provider.FBref }

func (n *Normalizer) RequiredColumns() []string {
	return []string{colDate, colVenue, colSquad, colOpponent}
}

// Prepare is a no-op; fbref tables have no artifact columns.
func (n *Normalizer) Prepare(t provider.RawTable) provider.RawTable {
	return t
}

// Teams exposes the team alias table for closest-name suggestions.
func (n *Normalizer) Teams() *provider.AliasTable { return n.teams }

func (n *Normalizer) Normalize(row provider.RawRow) (provider.Match, provider.RowIssues, bool) {
	var issues provider.RowIssues

	rawDate := strings.TrimSpace(row[colDate])
	if rawDate == colDate {
		return provider.Match{}, issues, true
	}

	m := provider.Match{
		RawDate:    rawDate,
		RawMinutes: strings.TrimSpace(row[colMin]),
		Result:     strings.TrimSpace(row[colResult]),
	}

	m.Date = provider.ParseDate(rawDate, provider.DateLayout)
	if m.Date == nil {
		issues.BadDate = true
	}

	m.Competition = issues.Resolve(n.competitions, row[colComp])

	squad := issues.Resolve(n.teams, StripCountry(row[colSquad]))
	// Squad is always the player's side; opponents outside the table pass through.
	opponent, _ := n.teams.Resolve(StripCountry(row[colOpponent]))
	if strings.TrimSpace(row[colVenue]) == "Home" {
		m.HomeTeam, m.AwayTeam = squad, opponent
	} else {
		m.HomeTeam, m.AwayTeam = opponent, squad
	}

	if strings.TrimSpace(row[colStart]) == "Y" {
		m.Lineup = provider.LineupStarter
	} else {
		m.Lineup = provider.LineupSubstitute
	}

	m.Minutes = count(row[colMin], "minutes", &issues)
	m.Goals = count(row[colGls], "goals", &issues)
	m.Assists = count(row[colAst], "assists", &issues)

	// Yellow cards drive the missing marker; red cards are added when present.
	m.Cards = count(row[colCrdY], "cards", &issues)
	if m.Cards != nil {
		if red, ok := provider.ParseCount(row[colCrdR]); ok {
			*m.Cards += red
		}
	}

	return m, issues, false
}

// StripCountry removes the lowercase country code fbref prefixes to team
// names ("es Spain" -> "Spain").
func StripCountry(name string) string {
	return countryPrefix.ReplaceAllString(strings.TrimSpace(name), "")
}

func count(cell, column string, issues *provider.RowIssues) *int {
	n, ok := provider.ParseCount(cell)
	if !ok {
		issues.AddBadNumeric(column)
		return nil
	}
	return &n
}
