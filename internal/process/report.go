package process

import (
	"fmt"
	"io"
	"sort"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/resolve"
)

// MaxPreviews caps the example rows kept per validation category.
const MaxPreviews = 5

// suggestThreshold is the minimum Jaro-Winkler similarity for a name hint.
const suggestThreshold = 0.8

// Preview identifies a row in the raw snapshot for the validation report.
type Preview struct {
	RawDate    string
	HomeTeam   string
	AwayTeam   string
	RawMinutes string
}

// UnmappedName is a distinct free-text value missing from an alias table.
type UnmappedName struct {
	Kind       string
	Value      string
	Count      int
	Suggestion string // closest canonical name, "" when nothing is close
}

// Report tracks validation counts for one processing run. Every count is
// taken before missing markers are filled with zeros.
type Report struct {
	Player   string
	Provider provider.Provider

	Rows    int // canonical rows produced
	Skipped int // header-echo rows dropped

	BadDates          int
	BadDatePreviews   []Preview
	BadMinutes        int
	BadMinutePreviews []Preview
	BadNumeric        map[string]int // per canonical column

	Unmapped []UnmappedName

	Gaps        int
	GapPreviews []resolve.Gap

	Errors []string

	unmappedIdx map[provider.Unmapped]int
}

// NewReport creates an empty report.
func NewReport(playerName string, p provider.Provider) *Report {
	return &Report{
		Player:      playerName,
		Provider:    p,
		BadNumeric:  make(map[string]int),
		unmappedIdx: make(map[provider.Unmapped]int),
	}
}

// AddErrorf records a formatted error message.
func (r *Report) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddRow folds the issues of one normalized row into the report. A row is
// counted at most once per category however many of its fields failed.
func (r *Report) AddRow(m provider.Match, issues provider.RowIssues) {
	preview := Preview{
		RawDate:    m.RawDate,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		RawMinutes: m.RawMinutes,
	}

	if issues.BadDate {
		r.BadDates++
		if len(r.BadDatePreviews) < MaxPreviews {
			r.BadDatePreviews = append(r.BadDatePreviews, preview)
		}
	}

	badMinutes := false
	for _, col := range issues.BadNumeric {
		r.BadNumeric[col]++
		if col == "minutes" {
			badMinutes = true
		}
	}
	if badMinutes {
		r.BadMinutes++
		if len(r.BadMinutePreviews) < MaxPreviews {
			r.BadMinutePreviews = append(r.BadMinutePreviews, preview)
		}
	}

	for _, u := range issues.Unmapped {
		if i, ok := r.unmappedIdx[u]; ok {
			r.Unmapped[i].Count++
			continue
		}
		r.unmappedIdx[u] = len(r.Unmapped)
		r.Unmapped = append(r.Unmapped, UnmappedName{Kind: u.Kind, Value: u.Value, Count: 1})
	}
}

// AddGap records a match whose opponent could not be reconciled.
func (r *Report) AddGap(g resolve.Gap) {
	r.Gaps++
	if len(r.GapPreviews) < MaxPreviews {
		r.GapPreviews = append(r.GapPreviews, g)
	}
}

// Suggest fills the closest canonical name for every unmapped value of kind.
func (r *Report) Suggest(kind string, canonical []string) {
	for i := range r.Unmapped {
		u := &r.Unmapped[i]
		if u.Kind != kind {
			continue
		}
		u.Suggestion = Closest(u.Value, canonical)
	}
}

// Closest returns the candidate most similar to name by Jaro-Winkler
// similarity, or "" when none reaches the suggestion threshold.
func Closest(name string, candidates []string) string {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if c == name {
			continue
		}
		score := matchr.JaroWinkler(name, c, false)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}

// BadNumericTotal returns the number of numeric cells that failed to parse.
func (r *Report) BadNumericTotal() int {
	total := 0
	for _, n := range r.BadNumeric {
		total += n
	}
	return total
}

// Summary returns a human-readable one-line summary of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf(
		"rows=%d skipped=%d bad_dates=%d bad_minutes=%d bad_numeric=%d unmapped=%d gaps=%d errors=%d",
		r.Rows, r.Skipped, r.BadDates, r.BadMinutes, r.BadNumericTotal(),
		len(r.Unmapped), r.Gaps, len(r.Errors),
	)
}

// Render prints the report's detail tables to w.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "%s (%s): %s\n", r.Player, r.Provider, r.Summary())

	if len(r.BadDatePreviews) > 0 {
		renderPreviews(w, fmt.Sprintf("Rows with missing or invalid date (%d)", r.BadDates), r.BadDatePreviews)
	}
	if len(r.BadMinutePreviews) > 0 {
		renderPreviews(w, fmt.Sprintf("Rows with invalid minutes (%d)", r.BadMinutes), r.BadMinutePreviews)
	}

	if len(r.BadNumeric) > 0 {
		t := newTable(w, "Unparseable numeric cells")
		t.AppendHeader(table.Row{"Column", "Rows"})
		cols := make([]string, 0, len(r.BadNumeric))
		for c := range r.BadNumeric {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for _, c := range cols {
			t.AppendRow(table.Row{c, r.BadNumeric[c]})
		}
		t.Render()
	}

	if len(r.Unmapped) > 0 {
		t := newTable(w, "Names not in alias tables")
		t.AppendHeader(table.Row{"Kind", "Value", "Rows", "Closest known"})
		for _, u := range r.Unmapped {
			t.AppendRow(table.Row{u.Kind, u.Value, u.Count, u.Suggestion})
		}
		t.Render()
	}

	if len(r.GapPreviews) > 0 {
		t := newTable(w, fmt.Sprintf("Unreconciled opponents (%d)", r.Gaps))
		t.AppendHeader(table.Row{"Date", "Player team", "Home", "Away"})
		for _, g := range r.GapPreviews {
			t.AppendRow(table.Row{g.RawDate, g.PlayerTeam, g.HomeTeam, g.AwayTeam})
		}
		t.Render()
	}

	for _, e := range r.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
}

func renderPreviews(w io.Writer, title string, rows []Preview) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Date", "Home", "Away", "Minutes"})
	for _, p := range rows {
		t.AppendRow(table.Row{p.RawDate, p.HomeTeam, p.AwayTeam, p.RawMinutes})
	}
	t.Render()
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.SetTitle(title)
	return t
}
