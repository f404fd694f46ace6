// Package player holds the fixed per-player facts the pipeline needs:
// birthdate, source provider, national team and club history.
package player

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/albapepper/matchlogs/internal/provider"
)

// ClubSpell assigns a club to an inclusive range of season labels.
// Empty From or To leaves that side unbounded.
type ClubSpell struct {
	From string
	To   string
	Team string
}

// Profile is the fixed configuration for one player's pipeline.
type Profile struct {
	Key       string // short id used in file names and URLs
	Name      string
	Birthdate time.Time
	Provider  provider.Provider

	// NationalTeam is the canonical national side. A competition whose
	// lower-cased name contains one of NationalKeywords, or a match listing
	// NationalTeam as a side, is attributed to it.
	NationalTeam     string
	NationalKeywords []string

	// Clubs is evaluated in order; the first spell whose range contains the
	// season wins.
	Clubs []ClubSpell

	SourceURLs []string
}

// RawFile returns the default raw snapshot file name.
func (p Profile) RawFile() string {
	return p.Key + "_raw_data.csv"
}

// ProcessedFile returns the default canonical table file name.
func (p Profile) ProcessedFile() string {
	return p.Key + "_cleaned_data.csv"
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

var Messi = Profile{
	Key:              "messi",
	Name:             "Lionel Messi",
	Birthdate:        date(1987, time.June, 24),
	Provider:         provider.MessiStats,
	NationalTeam:     "Argentina",
	NationalKeywords: []string{"argentina", "national"},
	Clubs: []ClubSpell{
		{To: "2020-2021", Team: "FC Barcelona"},
		{From: "2021-2022", To: "2022-2023", Team: "Paris Saint-Germain"},
		{From: "2023-2024", Team: "Inter Miami"},
	},
	SourceURLs: messiURLs(),
}

var LamineYamal = Profile{
	Key:              "lamine",
	Name:             "Lamine Yamal",
	Birthdate:        date(2007, time.July, 13),
	Provider:         provider.FBref,
	NationalTeam:     "Spain",
	NationalKeywords: []string{"spain", "national"},
	Clubs: []ClubSpell{
		{From: "2022-2023", Team: "FC Barcelona"},
	},
	SourceURLs: []string{
		"https://fbref.com/en/players/82ec26c1/matchlogs/2022-2023/Lamine-Yamal-Match-Logs",
		"https://fbref.com/en/players/82ec26c1/matchlogs/2023-2024/Lamine-Yamal-Match-Logs",
		"https://fbref.com/en/players/82ec26c1/matchlogs/2024-2025/Lamine-Yamal-Match-Logs",
	},
}

// Registry lists the known players by key.
var Registry = map[string]Profile{
	Messi.Key:       Messi,
	LamineYamal.Key: LamineYamal,
}

// Lookup returns the profile for key (case-insensitive).
func Lookup(key string) (Profile, error) {
	p, ok := Registry[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Profile{}, fmt.Errorf("unknown player %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return p, nil
}

// Keys returns the registered player keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Registry))
	for k := range Registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// messiURLs lists the per-competition-group game pages on messistats.
func messiURLs() []string {
	groups := []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 24}
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, fmt.Sprintf("https://www.messistats.com/en/games/0/0/all/0/%d/0/t/0/0/0/1", g))
	}
	return out
}
