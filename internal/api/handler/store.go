package handler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/albapepper/matchlogs/internal/player"
	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/table"
)

// ErrNotProcessed means the player's canonical table has not been written yet.
var ErrNotProcessed = errors.New("table not processed")

// Store gives handlers read access to canonical tables. Version changes
// whenever the underlying table is rewritten and is used in cache keys.
type Store interface {
	Matches(ctx context.Context, p player.Profile) (matches []provider.Match, version string, err error)
}

// FileStore serves the processed CSV files written by the ingest CLI.
type FileStore struct {
	Dir    string
	Format table.Format
}

// Matches reads the player's processed table.
func (s FileStore) Matches(ctx context.Context, p player.Profile) ([]provider.Match, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	path := filepath.Join(s.Dir, p.ProcessedFile())
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("%s: %w", p.Key, ErrNotProcessed)
	}
	if err != nil {
		return nil, "", err
	}

	matches, err := table.ReadMatches(path, s.Format)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	version := fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size())
	return matches, version, nil
}
