package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchlogs/internal/player"
	"github.com/albapepper/matchlogs/internal/provider"
)

func TestPlayerTeam(t *testing.T) {
	messi := player.Messi
	tests := []struct {
		name                     string
		season, comp, home, away string
		want                     string
	}{
		{"national keyword", "2022-2023", "Argentina National Team Friendly", "Argentina", "Panama", "Argentina"},
		{"national side", "2022-2023", "FIFA World Cup", "Argentina", "France", "Argentina"},
		{"national without season", "", "FIFA World Cup", "France", "Argentina", "Argentina"},
		{"early barcelona", "2004-2005", "La Liga", "FC Barcelona", "Albacete", "FC Barcelona"},
		{"last barcelona", "2020-2021", "La Liga", "FC Barcelona", "Eibar", "FC Barcelona"},
		{"psg", "2021-2022", "Ligue 1", "Paris Saint-Germain", "Lyon", "Paris Saint-Germain"},
		{"psg end", "2022-2023", "Ligue 1", "Lens", "Paris Saint-Germain", "Paris Saint-Germain"},
		{"miami", "2024-2025", "MLS", "Inter Miami", "Orlando City", "Inter Miami"},
		{"missing season", "", "La Liga", "FC Barcelona", "Getafe", provider.UnknownTeam},
		{"club friendly", "2010-2011", "Friendly", "FC Barcelona", "Boca Juniors", "FC Barcelona"},
		{"international friendly", "2010-2011", "International friendly", "Argentina", "Spain", "Argentina"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayerTeam(messi, tt.season, tt.comp, tt.home, tt.away))
		})
	}
}

func TestPlayerTeam_NoSpellMatches(t *testing.T) {
	assert.Equal(t, provider.UnknownTeam,
		PlayerTeam(player.LamineYamal, "2021-2022", "La Liga", "FC Barcelona", "Getafe"))
}

func TestVenue(t *testing.T) {
	assert.Equal(t, provider.VenueHome, Venue("FC Barcelona", "FC Barcelona"))
	assert.Equal(t, provider.VenueAway, Venue("FC Barcelona", "Real Madrid"))
	assert.Equal(t, provider.VenueUnknown, Venue(provider.UnknownTeam, "FC Barcelona"))
	assert.Equal(t, provider.VenueUnknown, Venue("FC Barcelona", ""))
}

func TestOpponent(t *testing.T) {
	opp, ok := Opponent("FC Barcelona", "FC Barcelona", "Getafe")
	assert.True(t, ok)
	assert.Equal(t, "Getafe", opp)

	opp, ok = Opponent("FC Barcelona", "Getafe", "FC Barcelona")
	assert.True(t, ok)
	assert.Equal(t, "Getafe", opp)

	opp, ok = Opponent("Argentina", "Barca B", "Getafe")
	assert.False(t, ok)
	assert.Equal(t, "", opp)

	_, ok = Opponent("X", "X", "X")
	assert.False(t, ok)
}

func TestResult(t *testing.T) {
	cases := map[string]string{
		"W 5–0":       "5-0",
		"L 1—2":       "1-2",
		"D 1–1 (4–2)": "1-1",
		"2-0":         "2-0",
		"2 - 0":       "2-0",
		"3:1":         "3-1",
		"  ":          "",
		"W":           "",
		"postponed":   "postponed",
	}
	for in, want := range cases {
		assert.Equal(t, want, Result(in), "input %q", in)
	}
}

func TestApply_VenueOpponentConsistency(t *testing.T) {
	matches := []provider.Match{
		{Season: "2010-2011", Competition: "La Liga", HomeTeam: "FC Barcelona", AwayTeam: "Real Madrid", Result: "5–0"},
		{Season: "2010-2011", Competition: "La Liga", HomeTeam: "Sevilla", AwayTeam: "FC Barcelona", Result: "1-1"},
		{Season: "2010-2011", Competition: "Copa del Rey", HomeTeam: "Barca Atletic", AwayTeam: "Real Madrid", RawDate: "20-04-2011"},
		{Competition: "La Liga", HomeTeam: "FC Barcelona", AwayTeam: "Getafe"},
	}

	gaps := Apply(matches, player.Messi)

	require.Len(t, gaps, 2)
	assert.Equal(t, 2, gaps[0].Index)
	assert.Equal(t, "20-04-2011", gaps[0].RawDate)
	assert.Equal(t, 3, gaps[1].Index)

	for i, m := range matches {
		assert.Equal(t, "Lionel Messi", m.Player)
		switch m.Venue {
		case provider.VenueHome:
			assert.Equal(t, m.PlayerTeam, m.HomeTeam, "row %d", i)
			if m.Opponent != "" {
				assert.Equal(t, m.AwayTeam, m.Opponent, "row %d", i)
			}
		case provider.VenueAway:
			assert.NotEqual(t, m.PlayerTeam, m.HomeTeam, "row %d", i)
			if m.Opponent != "" {
				assert.Equal(t, m.HomeTeam, m.Opponent, "row %d", i)
			}
		}
	}

	assert.Equal(t, provider.VenueHome, matches[0].Venue)
	assert.Equal(t, "Real Madrid", matches[0].Opponent)
	assert.Equal(t, "5-0", matches[0].Result)
	assert.Equal(t, provider.VenueAway, matches[1].Venue)
	assert.Equal(t, "Sevilla", matches[1].Opponent)
	assert.Equal(t, provider.VenueAway, matches[2].Venue)
	assert.Equal(t, "", matches[2].Opponent)
	assert.Equal(t, provider.VenueUnknown, matches[3].Venue)
}
