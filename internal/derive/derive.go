// Package derive computes the season label and the player's age from a
// match date. Both are pure functions of the date (and birthdate), so
// applying them again to an already-derived table changes nothing.
package derive

import (
	"fmt"
	"math"
	"time"

	"github.com/albapepper/matchlogs/internal/provider"
)

const daysPerYear = 365.25

// The 2019-2020 season ran late because of the suspension, so it is pinned
// to an explicit window instead of the August cutover.
var (
	extendedSeasonStart = time.Date(2019, time.August, 15, 0, 0, 0, 0, time.UTC)
	extendedSeasonEnd   = time.Date(2020, time.August, 14, 0, 0, 0, 0, time.UTC)
)

// Season returns the "YYYY-YYYY" label of the season containing t.
func Season(t time.Time) string {
	d := dateOnly(t)
	if !d.Before(extendedSeasonStart) && !d.After(extendedSeasonEnd) {
		return "2019-2020"
	}
	y := d.Year()
	if d.Month() >= time.August {
		return fmt.Sprintf("%d-%d", y, y+1)
	}
	return fmt.Sprintf("%d-%d", y-1, y)
}

// SeasonOf is Season for an optional date; a missing date has no season.
func SeasonOf(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Season(*t)
}

// Age returns whole days between birth and t divided by 365.25, rounded to
// two decimals. A missing date yields nil.
func Age(birth time.Time, t *time.Time) *float64 {
	if t == nil {
		return nil
	}
	days := math.Round(dateOnly(*t).Sub(dateOnly(birth)).Hours() / 24)
	age := math.Round(days/daysPerYear*100) / 100
	return &age
}

// Apply sets Season and Age on every match from its Date.
func Apply(matches []provider.Match, birth time.Time) {
	for i := range matches {
		matches[i].Season = SeasonOf(matches[i].Date)
		matches[i].Age = Age(birth, matches[i].Date)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
