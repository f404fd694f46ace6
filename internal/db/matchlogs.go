package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/matchlogs/internal/config"
	"github.com/albapepper/matchlogs/internal/provider"
)

const createMatchLogs = `
CREATE TABLE IF NOT EXISTS ` + config.MatchLogsTable + ` (
	player_key   TEXT NOT NULL,
	row_num      INTEGER NOT NULL,
	match_date   DATE,
	season       TEXT,
	age          NUMERIC(5,2),
	player       TEXT NOT NULL,
	player_team  TEXT NOT NULL,
	home_away    TEXT NOT NULL,
	competition  TEXT,
	home_team    TEXT,
	result       TEXT,
	away_team    TEXT,
	opponent     TEXT,
	lineup       TEXT,
	minutes      INTEGER,
	goals        INTEGER,
	assists      INTEGER,
	cards        INTEGER,
	loaded_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (player_key, row_num)
);
CREATE INDEX IF NOT EXISTS idx_match_logs_player_season ON ` + config.MatchLogsTable + ` (player_key, season);
`

// copyColumns is the COPY column list, in matchRows order.
var copyColumns = []string{
	"player_key", "row_num", "match_date", "season", "age", "player",
	"player_team", "home_away", "competition", "home_team", "result",
	"away_team", "opponent", "lineup", "minutes", "goals", "assists", "cards",
}

// EnsureSchema creates the match_logs table if it does not exist.
func (p *Pool) EnsureSchema(ctx context.Context) error {
	if _, err := p.Exec(ctx, createMatchLogs); err != nil {
		return fmt.Errorf("create %s: %w", config.MatchLogsTable, err)
	}
	return nil
}

// TableExists reports whether match_logs has been created.
func (p *Pool) TableExists(ctx context.Context) (bool, error) {
	var ok bool
	err := p.QueryRow(ctx, "match_logs_exists").Scan(&ok)
	return ok, err
}

// ReplaceMatches swaps a player's rows for matches in one transaction, so
// readers see either the old table or the new one.
func (p *Pool) ReplaceMatches(ctx context.Context, playerKey string, matches []provider.Match) (int64, error) {
	tx, err := p.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, "DELETE FROM "+config.MatchLogsTable+" WHERE player_key = $1", playerKey); err != nil {
		return 0, fmt.Errorf("delete %s rows: %w", playerKey, err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.MatchLogsTable},
		copyColumns,
		pgx.CopyFromRows(matchRows(playerKey, matches)),
	)
	if err != nil {
		return 0, fmt.Errorf("copy %s rows: %w", playerKey, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// matchRows converts matches to COPY rows. Missing values become NULL.
func matchRows(playerKey string, matches []provider.Match) [][]any {
	rows := make([][]any, len(matches))
	for i, m := range matches {
		rows[i] = []any{
			playerKey,
			int32(i + 1),
			m.Date,
			nilEmpty(m.Season),
			m.Age,
			m.Player,
			m.PlayerTeam,
			string(m.Venue),
			nilEmpty(m.Competition),
			nilEmpty(m.HomeTeam),
			nilEmpty(m.Result),
			nilEmpty(m.AwayTeam),
			nilEmpty(m.Opponent),
			nilEmpty(string(m.Lineup)),
			m.Minutes,
			m.Goals,
			m.Assists,
			m.Cards,
		}
	}
	return rows
}

// nilEmpty returns nil for empty strings so they are stored as NULL.
func nilEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
