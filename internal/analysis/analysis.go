// Package analysis computes descriptive statistics over a canonical match
// table. It only reads the table; nothing here feeds back into processing.
package analysis

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/albapepper/matchlogs/internal/provider"
)

// TopCompetitions is how many competitions the goals ranking keeps.
const TopCompetitions = 5

// KeyCount is one bucket of a grouped sum.
type KeyCount struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Split sums goals and assists for one group of matches.
type Split struct {
	Key     string `json:"key"`
	Matches int    `json:"matches"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
}

// Summary is the full set of statistics for one player's table.
type Summary struct {
	Player  string `json:"player"`
	Matches int    `json:"matches"`

	Goals          int      `json:"goals"`
	Assists        int      `json:"assists"`
	Minutes        int      `json:"minutes"`
	GoalsPerMatch  float64  `json:"goals_per_match"`
	AverageMinutes float64  `json:"average_minutes"`
	MinutesPerGoal *float64 `json:"minutes_per_goal"`

	GoalsByYear     []KeyCount `json:"goals_by_year"`
	GoalsBySeason   []KeyCount `json:"goals_by_season"`
	GoalsByMonth    []KeyCount `json:"goals_by_month"`
	TopCompetitions []KeyCount `json:"top_competitions"`
	AssistsBySeason []KeyCount `json:"assists_by_season"`
	MinutesBySeason []KeyCount `json:"minutes_by_season"`
	Lineups         []KeyCount `json:"lineups"`

	ByVenue []Split `json:"by_venue"`
	ByAge   []Split `json:"by_age"`
}

// Compute builds the summary. Counts are read as zero when missing; rows
// without a date or season are left out of the buckets that need them.
func Compute(playerName string, matches []provider.Match) Summary {
	s := Summary{Player: playerName, Matches: len(matches)}

	byYear := map[string]int{}
	byMonth := map[time.Month]int{}
	goalsBySeason := map[string]int{}
	assistsBySeason := map[string]int{}
	minutesBySeason := map[string]int{}
	byComp := map[string]int{}
	lineups := map[string]int{}
	venues := map[string]*Split{}
	ages := map[int]*Split{}

	for _, m := range matches {
		goals := provider.Count(m.Goals)
		assists := provider.Count(m.Assists)
		minutes := provider.Count(m.Minutes)

		s.Goals += goals
		s.Assists += assists
		s.Minutes += minutes

		if m.Date != nil {
			byYear[m.Date.Format("2006")] += goals
			byMonth[m.Date.Month()] += goals
		}
		if m.Season != "" {
			goalsBySeason[m.Season] += goals
			assistsBySeason[m.Season] += assists
			minutesBySeason[m.Season] += minutes
		}
		if m.Competition != "" {
			byComp[m.Competition] += goals
		}
		if m.Lineup != "" {
			lineups[string(m.Lineup)]++
		}

		venue := string(m.Venue)
		if venue == "" {
			venue = string(provider.VenueUnknown)
		}
		addSplit(venues, venue, goals, assists)

		if m.Age != nil {
			age := int(math.Floor(*m.Age))
			sp, ok := ages[age]
			if !ok {
				sp = &Split{}
				ages[age] = sp
			}
			sp.Matches++
			sp.Goals += goals
			sp.Assists += assists
		}
	}

	if s.Matches > 0 {
		s.GoalsPerMatch = round2(float64(s.Goals) / float64(s.Matches))
		s.AverageMinutes = round2(float64(s.Minutes) / float64(s.Matches))
	}
	if s.Goals > 0 {
		mpg := round2(float64(s.Minutes) / float64(s.Goals))
		s.MinutesPerGoal = &mpg
	}

	s.GoalsByYear = sortedByKey(byYear)
	s.GoalsBySeason = sortedByKey(goalsBySeason)
	s.AssistsBySeason = sortedByKey(assistsBySeason)
	s.MinutesBySeason = sortedByKey(minutesBySeason)
	s.Lineups = sortedByKey(lineups)

	for month := time.January; month <= time.December; month++ {
		if g, ok := byMonth[month]; ok {
			s.GoalsByMonth = append(s.GoalsByMonth, KeyCount{Key: month.String(), Value: g})
		}
	}

	s.TopCompetitions = sortedByKey(byComp)
	sort.SliceStable(s.TopCompetitions, func(i, j int) bool {
		return s.TopCompetitions[i].Value > s.TopCompetitions[j].Value
	})
	if len(s.TopCompetitions) > TopCompetitions {
		s.TopCompetitions = s.TopCompetitions[:TopCompetitions]
	}

	for _, v := range []provider.Venue{provider.VenueHome, provider.VenueAway, provider.VenueUnknown} {
		if sp, ok := venues[string(v)]; ok {
			s.ByVenue = append(s.ByVenue, *sp)
		}
	}

	ageKeys := make([]int, 0, len(ages))
	for a := range ages {
		ageKeys = append(ageKeys, a)
	}
	sort.Ints(ageKeys)
	for _, a := range ageKeys {
		sp := *ages[a]
		sp.Key = strconv.Itoa(a)
		s.ByAge = append(s.ByAge, sp)
	}

	return s
}

func addSplit(m map[string]*Split, key string, goals, assists int) {
	sp, ok := m[key]
	if !ok {
		sp = &Split{Key: key}
		m[key] = sp
	}
	sp.Matches++
	sp.Goals += goals
	sp.Assists += assists
}

func sortedByKey(m map[string]int) []KeyCount {
	out := make([]KeyCount, 0, len(m))
	for k, v := range m {
		out = append(out, KeyCount{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
