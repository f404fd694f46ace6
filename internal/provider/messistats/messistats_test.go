package messistats

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchlogs/internal/provider"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer()
	row := provider.RawRow{
		colDate:        "25-11-2017",
		colCompetition: "icon\nLiga",
		colHomeTeam:    "Barcelona",
		colResult:      "2-0",
		colAwayTeam:    "Real Madrid",
		colLineup:      "icon\nStarter",
		colMinutes:     "90'",
		colGoals:       "1",
		colAssists:     "",
		colCards:       "0",
	}

	m, issues, skip := n.Normalize(row)
	require.False(t, skip)

	date := time.Date(2017, time.November, 25, 0, 0, 0, 0, time.UTC)
	want := provider.Match{
		Date:        &date,
		Competition: "La Liga",
		HomeTeam:    "FC Barcelona",
		AwayTeam:    "Real Madrid",
		Result:      "2-0",
		Lineup:      provider.LineupStarter,
		Minutes:     provider.IntPtr(90),
		Goals:       provider.IntPtr(1),
		Cards:       provider.IntPtr(0),
		RawDate:     "25-11-2017",
		RawMinutes:  "90'",
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, issues.BadDate)
	assert.Equal(t, []string{"assists"}, issues.BadNumeric)
	// Real Madrid is the opponent of a known side, so it is not reported.
	assert.Empty(t, issues.Unmapped)
}

func TestNormalize_UnknownSidesAreUnmapped(t *testing.T) {
	_, issues, _ := NewNormalizer().Normalize(provider.RawRow{
		colDate:        "01-03-2012",
		colCompetition: "icon\nCopa del Rey",
		colHomeTeam:    "Barca Atletic",
		colAwayTeam:    "Valencia",
	})
	assert.Equal(t, []provider.Unmapped{
		{Kind: "team", Value: "Barca Atletic"},
		{Kind: "team", Value: "Valencia"},
	}, issues.Unmapped)
}

func TestNormalize_ClubFriendly(t *testing.T) {
	m, issues, _ := NewNormalizer().Normalize(provider.RawRow{
		colDate:        "02-08-2010",
		colCompetition: "icon\nFriendly",
		colHomeTeam:    "Barcelona",
		colResult:      "1-0",
		colAwayTeam:    "Boca Juniors",
	})
	assert.Equal(t, "Friendly", m.Competition)
	assert.Equal(t, "FC Barcelona", m.HomeTeam)
	assert.Empty(t, issues.Unmapped)
}

func TestNormalize_BadDateIsRowIssue(t *testing.T) {
	m, issues, skip := NewNormalizer().Normalize(provider.RawRow{
		colDate:     "not a date",
		colHomeTeam: "Argentina",
		colAwayTeam: "Brazil",
	})
	require.False(t, skip)
	assert.Nil(t, m.Date)
	assert.True(t, issues.BadDate)
	assert.Equal(t, "not a date", m.RawDate)
}

func TestNormalize_SkipsHeaderEcho(t *testing.T) {
	_, _, skip := NewNormalizer().Normalize(provider.RawRow{
		colDate:     "Date",
		colHomeTeam: "Home Team",
	})
	assert.True(t, skip)
}

func TestParseLineup(t *testing.T) {
	cases := map[string]provider.Lineup{
		"Starter":    provider.LineupStarter,
		"Titular":    provider.LineupStarter,
		"Substitute": provider.LineupSubstitute,
		"Suplente":   provider.LineupSubstitute,
		"":           "",
		"Captain":    "Captain",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLineup(in), "input %q", in)
	}
}

func TestPrepareDropsArtifacts(t *testing.T) {
	table := provider.RawTable{
		Header: Headers,
		Rows:   []provider.RawRow{{colIndex: "1", colDate: "01-01-2020", colJersey: "10"}},
	}
	out := NewNormalizer().Prepare(table)
	assert.False(t, out.HasColumn(colIndex))
	assert.False(t, out.HasColumn(colJersey))
	assert.False(t, out.HasColumn(colExtra))
	assert.True(t, out.HasColumn(colDate))
	assert.Equal(t, provider.RawRow{colDate: "01-01-2020"}, out.Rows[0])
}

const gamesPage = `<html><body><table>
<thead><tr><th>#</th><th>Date</th><th>Competition</th></tr></thead>
<tbody>
<tr><td>1</td><td>01-03-2005</td><td>
Liga</td><td>Barcelona</td><td>2-0</td><td>Albacete</td><td>Substitute</td><td>3</td><td>1</td><td>0</td><td>0</td><td>30</td><td>x</td><td>overflow</td></tr>
<tr><td>2</td><td>08-03-2005</td><td>Champions League</td></tr>
</tbody></table></body></html>`

func TestParsePage(t *testing.T) {
	rows, err := ParsePage(strings.NewReader(gamesPage))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "01-03-2005", rows[0][colDate])
	assert.Equal(t, "Albacete", rows[0][colAwayTeam])
	assert.Equal(t, "x", rows[0][colExtra])
	assert.Len(t, rows[0], len(Headers))

	// Narrow rows keep the leading columns only.
	assert.Equal(t, provider.RawRow{colIndex: "2", colDate: "08-03-2005", colCompetition: "Champions League"}, rows[1])
}
