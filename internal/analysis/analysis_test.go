package analysis

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchlogs/internal/provider"
)

func match(date string, season string, age float64, venue provider.Venue, comp string, lineup provider.Lineup, minutes, goals, assists int) provider.Match {
	d, _ := time.Parse(provider.DateLayout, date)
	return provider.Match{
		Date:        &d,
		Season:      season,
		Age:         &age,
		Venue:       venue,
		Competition: comp,
		Lineup:      lineup,
		Minutes:     provider.IntPtr(minutes),
		Goals:       provider.IntPtr(goals),
		Assists:     provider.IntPtr(assists),
		Cards:       provider.IntPtr(0),
	}
}

func sample() []provider.Match {
	return []provider.Match{
		match("2023-08-13", "2023-2024", 16.09, provider.VenueAway, "La Liga", provider.LineupSubstitute, 20, 0, 1),
		match("2023-09-08", "2023-2024", 16.16, provider.VenueAway, "UEFA Euro Qualification", provider.LineupSubstitute, 25, 1, 0),
		match("2024-04-13", "2023-2024", 16.75, provider.VenueHome, "La Liga", provider.LineupStarter, 90, 1, 1),
		match("2024-09-15", "2024-2025", 17.18, provider.VenueHome, "La Liga", provider.LineupStarter, 75, 2, 0),
		{Venue: provider.VenueUnknown, Competition: "Copa del Rey", Lineup: provider.LineupStarter},
	}
}

func TestCompute(t *testing.T) {
	s := Compute("Lamine Yamal", sample())

	assert.Equal(t, 5, s.Matches)
	assert.Equal(t, 4, s.Goals)
	assert.Equal(t, 2, s.Assists)
	assert.Equal(t, 210, s.Minutes)
	assert.Equal(t, 0.8, s.GoalsPerMatch)
	assert.Equal(t, 42.0, s.AverageMinutes)
	require.NotNil(t, s.MinutesPerGoal)
	assert.Equal(t, 52.5, *s.MinutesPerGoal)

	want := []KeyCount{{"2023", 1}, {"2024", 3}}
	if diff := cmp.Diff(want, s.GoalsByYear); diff != "" {
		t.Errorf("GoalsByYear mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []KeyCount{{"2023-2024", 2}, {"2024-2025", 2}}, s.GoalsBySeason)
	assert.Equal(t, []KeyCount{{"2023-2024", 135}, {"2024-2025", 75}}, s.MinutesBySeason)
	assert.Equal(t, []KeyCount{{"2023-2024", 2}, {"2024-2025", 0}}, s.AssistsBySeason)
	assert.Equal(t, []KeyCount{{"April", 1}, {"August", 0}, {"September", 3}}, s.GoalsByMonth)
	assert.Equal(t, []KeyCount{{"La Liga", 3}, {"UEFA Euro Qualification", 1}, {"Copa del Rey", 0}}, s.TopCompetitions)
	assert.Equal(t, []KeyCount{{"Starter", 3}, {"Substitute", 2}}, s.Lineups)

	assert.Equal(t, []Split{
		{Key: "Home", Matches: 2, Goals: 3, Assists: 1},
		{Key: "Away", Matches: 2, Goals: 1, Assists: 1},
		{Key: "Unknown", Matches: 1},
	}, s.ByVenue)
	assert.Equal(t, []Split{
		{Key: "16", Matches: 3, Goals: 2, Assists: 2},
		{Key: "17", Matches: 1, Goals: 2},
	}, s.ByAge)
}

func TestCompute_TopCompetitionsCapped(t *testing.T) {
	var matches []provider.Match
	for i, comp := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		matches = append(matches, provider.Match{Competition: comp, Goals: provider.IntPtr(i)})
	}
	s := Compute("x", matches)
	require.Len(t, s.TopCompetitions, TopCompetitions)
	assert.Equal(t, "G", s.TopCompetitions[0].Key)
	assert.Equal(t, "C", s.TopCompetitions[4].Key)
}

func TestCompute_NoGoals(t *testing.T) {
	s := Compute("x", []provider.Match{{Minutes: provider.IntPtr(90)}})
	assert.Nil(t, s.MinutesPerGoal)
	assert.Equal(t, 90.0, s.AverageMinutes)

	empty := Compute("x", nil)
	assert.Equal(t, 0, empty.Matches)
	assert.Equal(t, 0.0, empty.GoalsPerMatch)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, Compute("Lamine Yamal", sample()))
	out := buf.String()
	assert.Contains(t, out, "Lamine Yamal")
	assert.Contains(t, out, "Goals by season")
	assert.Contains(t, out, "2024-2025")
}

func TestWriteMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	paths, err := WriteMarkdown(dir, "lamine", Compute("Lamine Yamal", sample()))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	content, err := os.ReadFile(filepath.Join(dir, "lamine_goals_by_season.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "## Goals by season")
	assert.Contains(t, string(content), "| 2023-2024 | 2 |")
}
