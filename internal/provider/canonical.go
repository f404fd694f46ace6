// Package provider defines the canonical match-log shape that every source
// site normalizes into. These structs are the contract between the provider
// normalizers and the processing stages. Providers output these, the
// deriver and resolver enrich them and the table writer persists them.
//
// Adding a new provider means implementing Normalizer for its raw columns.
// The processing stages and the output schema never change.
package provider

import (
	"fmt"
	"time"
)

// Provider tags the raw column convention of a source site.
type Provider string

const (
	// MessiStats pages embed icon text and value in one multi-line cell.
	MessiStats Provider = "messistats"
	// FBref match logs carry atomic Venue/Start/Squad/Opponent columns.
	FBref Provider = "fbref"
)

// ParseProvider maps a tag string to a known provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case MessiStats, FBref:
		return Provider(s), nil
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

// Venue is the player's team location relative to the home side.
type Venue string

const (
	VenueHome    Venue = "Home"
	VenueAway    Venue = "Away"
	VenueUnknown Venue = "Unknown"
)

// Lineup is the player's role at kick-off. Raw text that cannot be mapped
// is carried through as-is.
type Lineup string

const (
	LineupStarter    Lineup = "Starter"
	LineupSubstitute Lineup = "Substitute"
)

// UnknownTeam is the player team when no inference rule matches.
const UnknownTeam = "Unknown"

// DateLayout is the canonical date format in written tables.
const DateLayout = "2006-01-02"

// Match is the canonical match-appearance record.
//
// Pointer fields are the missing markers: a nil Date, Age or count means the
// source value was absent or unparseable. Season and Opponent use "" for the
// same purpose.
type Match struct {
	Date        *time.Time `json:"date"`
	Season      string     `json:"season,omitempty"`
	Age         *float64   `json:"age"`
	Player      string     `json:"player"`
	PlayerTeam  string     `json:"player_team"`
	Venue       Venue      `json:"home_away"`
	Competition string     `json:"competition"`
	HomeTeam    string     `json:"home_team"`
	Result      string     `json:"result"`
	AwayTeam    string     `json:"away_team"`
	Opponent    string     `json:"opponent,omitempty"`
	Lineup      Lineup     `json:"lineup"`
	Minutes     *int       `json:"minutes"`
	Goals       *int       `json:"goals"`
	Assists     *int       `json:"assists"`
	Cards       *int       `json:"cards"`

	// RawDate and RawMinutes keep the source text for validation previews.
	RawDate    string `json:"-"`
	RawMinutes string `json:"-"`
}

// HasDate reports whether the match date parsed.
func (m Match) HasDate() bool {
	return m.Date != nil
}

// Count dereferences a count field, treating a missing marker as 0.
func Count(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// --------------------------------------------------------------------------
// Raw input
// --------------------------------------------------------------------------

// RawRow is one scraped row keyed by column header. Absent columns read as "".
type RawRow map[string]string

// RawTable is a raw snapshot as read from disk: a header plus rows.
type RawTable struct {
	Header []string
	Rows   []RawRow
}

// HasColumn reports whether the header contains name.
func (t RawTable) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}
