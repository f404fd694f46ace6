package analysis

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table is one titled statistics table, ready for rendering.
type Table struct {
	Name   string // file-name stem for exports
	Title  string
	Header table.Row
	Rows   []table.Row
}

// Tables lays the summary out as the tables the report prints.
func Tables(s Summary) []Table {
	mpg := "n/a"
	if s.MinutesPerGoal != nil {
		mpg = fmt.Sprintf("%.2f", *s.MinutesPerGoal)
	}

	tables := []Table{
		{
			Name:   "overview",
			Title:  s.Player,
			Header: table.Row{"Metric", "Value"},
			Rows: []table.Row{
				{"Matches", s.Matches},
				{"Goals", s.Goals},
				{"Assists", s.Assists},
				{"Minutes", s.Minutes},
				{"Goals per match", fmt.Sprintf("%.2f", s.GoalsPerMatch)},
				{"Average minutes", fmt.Sprintf("%.1f", s.AverageMinutes)},
				{"Minutes per goal", mpg},
			},
		},
		keyCountTable("goals_by_year", "Goals by year", "Year", "Goals", s.GoalsByYear),
		keyCountTable("goals_by_season", "Goals by season", "Season", "Goals", s.GoalsBySeason),
		keyCountTable("goals_by_month", "Goals by month", "Month", "Goals", s.GoalsByMonth),
		keyCountTable("top_competitions", "Top competitions by goals", "Competition", "Goals", s.TopCompetitions),
		keyCountTable("assists_by_season", "Assists by season", "Season", "Assists", s.AssistsBySeason),
		keyCountTable("minutes_by_season", "Minutes by season", "Season", "Minutes", s.MinutesBySeason),
		keyCountTable("lineups", "Starter vs substitute", "Lineup", "Matches", s.Lineups),
		splitTable("home_away", "Home vs away", "Venue", s.ByVenue),
		splitTable("by_age", "Goals and assists by age", "Age", s.ByAge),
	}
	return tables
}

func keyCountTable(name, title, keyCol, valueCol string, rows []KeyCount) Table {
	t := Table{Name: name, Title: title, Header: table.Row{keyCol, valueCol}}
	for _, r := range rows {
		t.Rows = append(t.Rows, table.Row{r.Key, r.Value})
	}
	return t
}

func splitTable(name, title, keyCol string, rows []Split) Table {
	t := Table{Name: name, Title: title, Header: table.Row{keyCol, "Matches", "Goals", "Assists"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, table.Row{r.Key, r.Matches, r.Goals, r.Assists})
	}
	return t
}

func (t Table) writer(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(t.Title)
	tw.AppendHeader(t.Header)
	tw.AppendRows(t.Rows)
	return tw
}

// Render prints every table to w.
func Render(w io.Writer, s Summary) {
	for _, t := range Tables(s) {
		if len(t.Rows) == 0 {
			continue
		}
		tw := t.writer(w)
		tw.SetStyle(table.StyleRounded)
		tw.Render()
	}
}

// WriteMarkdown writes each non-empty table to dir as <prefix>_<name>.md and
// returns the written paths.
func WriteMarkdown(dir, prefix string, s Summary) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	var paths []string
	for _, t := range Tables(s) {
		if len(t.Rows) == 0 {
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "## %s\n\n", t.Title)
		tw := t.writer(&sb)
		tw.SetTitle("")
		tw.RenderMarkdown()

		path := filepath.Join(dir, prefix+"_"+t.Name+".md")
		if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
