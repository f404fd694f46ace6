// Package resolve infers which side the player played for and derives the
// fields that depend on it: venue, opponent and the cleaned result.
package resolve

import (
	"regexp"
	"strings"

	"github.com/albapepper/matchlogs/internal/player"
	"github.com/albapepper/matchlogs/internal/provider"
)

// PlayerTeam attributes a match to the national team or a club.
//
// National-team matches are recognised first: the competition name contains
// a national keyword, or one side is the national team. Otherwise the club
// spells are consulted in order. A match with no season cannot be placed at
// a club and yields UnknownTeam.
func PlayerTeam(p player.Profile, season, competition, home, away string) string {
	if p.NationalTeam != "" {
		comp := strings.ToLower(competition)
		for _, kw := range p.NationalKeywords {
			if kw != "" && strings.Contains(comp, kw) {
				return p.NationalTeam
			}
		}
		if home == p.NationalTeam || away == p.NationalTeam {
			return p.NationalTeam
		}
	}

	if season == "" {
		return provider.UnknownTeam
	}
	for _, spell := range p.Clubs {
		if inSpell(season, spell) {
			return spell.Team
		}
	}
	return provider.UnknownTeam
}

// inSpell compares season labels as strings. This is not a chronological
// comparison; it only holds because every label is a zero-padded
// "YYYY-YYYY" pair in the same century.
func inSpell(season string, s player.ClubSpell) bool {
	if s.From != "" && season < s.From {
		return false
	}
	if s.To != "" && season > s.To {
		return false
	}
	return true
}

// Venue places the player's team relative to the home side.
func Venue(playerTeam, home string) provider.Venue {
	switch {
	case playerTeam == "" || playerTeam == provider.UnknownTeam || home == "":
		return provider.VenueUnknown
	case home == playerTeam:
		return provider.VenueHome
	default:
		return provider.VenueAway
	}
}

// Opponent returns the side the player's team faced. ok is false when the
// player team matches neither side, or both; the opponent is then unknown
// and must not be guessed.
func Opponent(playerTeam, home, away string) (string, bool) {
	isHome := playerTeam == home
	isAway := playerTeam == away
	switch {
	case isHome && !isAway:
		return away, true
	case isAway && !isHome:
		return home, true
	}
	return "", false
}

var (
	dashes = strings.NewReplacer("–", "-", "—", "-", "‒", "-", "−", "-", ":", "-")
	score  = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)`)
)

// Result reduces a result cell to a plain "X-Y" score. A leading outcome
// token ("W", "D" or "L") is dropped along with any trailing annotation
// such as a penalty shoot-out score. Text without a recognisable score is
// returned trimmed, with dashes normalized.
func Result(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	if isOutcome(fields[0]) {
		fields = fields[1:]
	}
	s := dashes.Replace(strings.Join(fields, " "))
	if m := score.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2]
	}
	return strings.TrimSpace(s)
}

func isOutcome(tok string) bool {
	switch tok {
	case "W", "D", "L":
		return true
	}
	return false
}

// Gap describes a match whose opponent could not be reconciled.
type Gap struct {
	Index      int
	RawDate    string
	PlayerTeam string
	HomeTeam   string
	AwayTeam   string
}

// Apply resolves player team, venue, opponent and result on every match and
// returns the reconciliation gaps in row order.
func Apply(matches []provider.Match, p player.Profile) []Gap {
	var gaps []Gap
	for i := range matches {
		m := &matches[i]
		m.Player = p.Name
		m.PlayerTeam = PlayerTeam(p, m.Season, m.Competition, m.HomeTeam, m.AwayTeam)
		m.Venue = Venue(m.PlayerTeam, m.HomeTeam)
		m.Result = Result(m.Result)

		opp, ok := Opponent(m.PlayerTeam, m.HomeTeam, m.AwayTeam)
		m.Opponent = opp
		if !ok {
			gaps = append(gaps, Gap{
				Index:      i,
				RawDate:    m.RawDate,
				PlayerTeam: m.PlayerTeam,
				HomeTeam:   m.HomeTeam,
				AwayTeam:   m.AwayTeam,
			})
		}
	}
	return gaps
}
