// Package process assembles the canonical match table for one player:
// raw snapshot -> normalize -> derive -> resolve -> validate -> fill -> write.
package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/matchlogs/internal/derive"
	"github.com/albapepper/matchlogs/internal/player"
	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/provider/fbref"
	"github.com/albapepper/matchlogs/internal/provider/messistats"
	"github.com/albapepper/matchlogs/internal/resolve"
	"github.com/albapepper/matchlogs/internal/table"
)

// Fatal errors. Either one means no output was written.
var (
	ErrInputUnreadable = errors.New("input unreadable")
	ErrNoRecordShape   = errors.New("no record shape")
)

// Options configures one processing run.
type Options struct {
	Profile   player.Profile
	InputPath string
	// OutputPath is where the canonical table is written. Empty skips
	// persistence; the table is still returned.
	OutputPath string
	Format     table.Format
	Logger     *slog.Logger
}

// Result is the outcome of a successful run.
type Result struct {
	Matches []provider.Match
	Report  *Report
	Written bool
}

// teamLister is implemented by normalizers that expose their team aliases.
type teamLister interface {
	Teams() *provider.AliasTable
}

// NormalizerFor returns the normalizer for a provider tag.
func NormalizerFor(p provider.Provider) (provider.Normalizer, error) {
	switch p {
	case provider.MessiStats:
		return messistats.NewNormalizer(), nil
	case provider.FBref:
		return fbref.NewNormalizer(), nil
	}
	return nil, fmt.Errorf("no normalizer for provider %q", p)
}

// Run processes one player's raw snapshot into the canonical table.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("player", opts.Profile.Key)

	norm, err := NormalizerFor(opts.Profile.Provider)
	if err != nil {
		return nil, err
	}

	raw, err := table.ReadRaw(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, opts.InputPath, err)
	}
	logger.Debug("Raw snapshot loaded", "path", opts.InputPath, "rows", len(raw.Rows))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := NewReport(opts.Profile.Name, norm.Provider())
	matches, err := Normalize(norm, raw, report)
	if err != nil {
		return nil, err
	}

	derive.Apply(matches, opts.Profile.Birthdate)

	for _, g := range resolve.Apply(matches, opts.Profile) {
		report.AddGap(g)
		logger.Warn("Opponent not reconciled",
			"date", g.RawDate, "player_team", g.PlayerTeam,
			"home", g.HomeTeam, "away", g.AwayTeam,
			"hint", gapHint(g))
	}

	if tl, ok := norm.(teamLister); ok {
		report.Suggest("team", tl.Teams().Names())
	}

	FillMissing(matches)
	report.Rows = len(matches)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Matches: matches, Report: report}
	if opts.OutputPath != "" {
		if err := table.WriteMatches(opts.OutputPath, matches, opts.Format); err != nil {
			return nil, fmt.Errorf("write canonical table: %w", err)
		}
		res.Written = true
		logger.Info("Canonical table written", "path", opts.OutputPath, "rows", len(matches))
	}
	return res, nil
}

// Normalize maps every raw row through n, recording row issues in report.
// A table that carries none of the normalizer's required columns has no
// usable record shape.
func Normalize(n provider.Normalizer, raw provider.RawTable, report *Report) ([]provider.Match, error) {
	raw = n.Prepare(raw)

	required := n.RequiredColumns()
	present := 0
	for _, col := range required {
		if raw.HasColumn(col) {
			present++
		}
	}
	if present == 0 {
		return nil, fmt.Errorf("%w: none of %v in header %v", ErrNoRecordShape, required, raw.Header)
	}
	if present < len(required) {
		report.AddErrorf("header is missing some of %v", required)
	}

	matches := make([]provider.Match, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		m, issues, skip := n.Normalize(row)
		if skip {
			report.Skipped++
			continue
		}
		report.AddRow(m, issues)
		matches = append(matches, m)
	}
	return matches, nil
}

// FillMissing replaces missing count markers with zero. It must run after
// the report has been built, so that the zeros are not mistaken for data.
func FillMissing(matches []provider.Match) {
	for i := range matches {
		m := &matches[i]
		for _, p := range []**int{&m.Minutes, &m.Goals, &m.Assists, &m.Cards} {
			if *p == nil {
				*p = provider.IntPtr(0)
			}
		}
	}
}

// gapHint names the side that looks most like the player's team, which
// usually points at a missing alias.
func gapHint(g resolve.Gap) string {
	if g.PlayerTeam == "" || g.PlayerTeam == provider.UnknownTeam {
		return ""
	}
	if c := Closest(g.PlayerTeam, []string{g.HomeTeam, g.AwayTeam}); c != "" {
		return fmt.Sprintf("%q may be an alias of %q", c, g.PlayerTeam)
	}
	return ""
}
