// Command ingest is the match-log pipeline CLI.
//
// Usage:
//
//	matchlogs-ingest scrape messi
//	matchlogs-ingest process messi lamine
//	matchlogs-ingest process lamine --decimal , --delimiter ";"
//	matchlogs-ingest report messi --out reports
//	matchlogs-ingest load lamine
//	matchlogs-ingest run
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/matchlogs/internal/analysis"
	"github.com/albapepper/matchlogs/internal/config"
	"github.com/albapepper/matchlogs/internal/db"
	"github.com/albapepper/matchlogs/internal/player"
	"github.com/albapepper/matchlogs/internal/process"
	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/provider/fbref"
	"github.com/albapepper/matchlogs/internal/provider/fetch"
	"github.com/albapepper/matchlogs/internal/provider/messistats"
	"github.com/albapepper/matchlogs/internal/table"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Separator overrides shared by every subcommand. Empty keeps the config value.
var (
	flagDelimiter string
	flagDecimal   string
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "matchlogs-ingest",
		Short:        "Scrape, clean and summarize per-player match logs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "Field delimiter of the canonical table (\"tab\" for TSV)")
	root.PersistentFlags().StringVar(&flagDecimal, "decimal", "", "Decimal separator of the canonical table (. or ,)")

	root.AddCommand(scrapeCmd())
	root.AddCommand(processCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(loadCmd())
	root.AddCommand(runCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// scrape command
// --------------------------------------------------------------------------

func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape [player...]",
		Short: "Download raw match tables from the player's source site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayers(args, scrapePlayer)
		},
	}
}

func scrapePlayer(ctx context.Context, cfg *config.Config, p player.Profile) error {
	client := fetch.NewClient(cfg.ScrapeUserAgent, cfg.ScrapeRequestsPerMinute, logger)
	path := cfg.RawPath(p.RawFile())
	start := time.Now()

	var (
		raw provider.RawTable
		err error
	)
	switch p.Provider {
	case provider.MessiStats:
		raw, err = messistats.NewScraper(client, cfg.ScrapeDelay, logger).Scrape(ctx, p.SourceURLs)
		if err != nil {
			return err
		}
		// Pages overlap across competition groups and runs; keep one row per match.
		if existing, rerr := table.ReadRaw(path); rerr == nil {
			raw = table.MergeRaw(existing, raw, messistats.DedupKey)
		} else if !errors.Is(rerr, os.ErrNotExist) {
			logger.Warn("Existing raw snapshot ignored", "path", path, "error", rerr)
		}
	case provider.FBref:
		raw, err = fbref.NewScraper(client, cfg.ScrapeDelay, logger).Scrape(ctx, p.SourceURLs)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("no scraper for provider %q", p.Provider)
	}

	if err := table.WriteRaw(path, raw); err != nil {
		return fmt.Errorf("write raw snapshot: %w", err)
	}
	logger.Info("Scrape finished",
		"player", p.Key, "rows", len(raw.Rows), "path", path,
		"duration", time.Since(start).Round(time.Second))
	return nil
}

// --------------------------------------------------------------------------
// process command
// --------------------------------------------------------------------------

func processCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "process [player...]",
		Short: "Build the canonical match table and print the validation report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (input != "" || output != "") && len(args) != 1 {
				return fmt.Errorf("--input and --output need exactly one player")
			}
			return runPlayers(args, func(ctx context.Context, cfg *config.Config, p player.Profile) error {
				return processPlayer(ctx, cmd, cfg, p, input, output)
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Raw snapshot path (default: RAW_DIR/<player>_raw_data.csv)")
	cmd.Flags().StringVar(&output, "output", "", "Canonical table path (default: PROCESSED_DIR/<player>_cleaned_data.csv)")
	return cmd
}

func processPlayer(ctx context.Context, cmd *cobra.Command, cfg *config.Config, p player.Profile, input, output string) error {
	if input == "" {
		input = cfg.RawPath(p.RawFile())
	}
	if output == "" {
		output = cfg.ProcessedPath(p.ProcessedFile())
	}

	res, err := process.Run(ctx, process.Options{
		Profile:    p,
		InputPath:  input,
		OutputPath: output,
		Format:     format(cfg),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	res.Report.Render(cmd.OutOrStdout())
	logger.Info("Process finished", "player", p.Key, "summary", res.Report.Summary())
	for _, e := range res.Report.Errors {
		logger.Warn("process issue", "player", p.Key, "error", e)
	}
	return nil
}

// --------------------------------------------------------------------------
// report command
// --------------------------------------------------------------------------

func reportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "report [player...]",
		Short: "Print summary statistics of the canonical match table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayers(args, func(ctx context.Context, cfg *config.Config, p player.Profile) error {
				return reportPlayer(cmd, cfg, p, out)
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Also write Markdown tables to this directory (default: none; REPORT_DIR under run)")
	return cmd
}

func reportPlayer(cmd *cobra.Command, cfg *config.Config, p player.Profile, out string) error {
	path := cfg.ProcessedPath(p.ProcessedFile())
	matches, err := table.ReadMatches(path, format(cfg))
	if err != nil {
		return fmt.Errorf("read canonical table: %w", err)
	}

	summary := analysis.Compute(p.Name, matches)
	analysis.Render(cmd.OutOrStdout(), summary)

	if out == "" {
		return nil
	}
	files, err := analysis.WriteMarkdown(out, p.Key, summary)
	if err != nil {
		return err
	}
	logger.Info("Report written", "player", p.Key, "dir", out, "files", len(files))
	return nil
}

// --------------------------------------------------------------------------
// load command
// --------------------------------------------------------------------------

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [player...]",
		Short: "Copy canonical match tables into Postgres (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := resolvePlayers(args)
			if err != nil {
				return err
			}
			return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
				pool, err := db.New(ctx, cfg)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer pool.Close()

				if err := pool.EnsureSchema(ctx); err != nil {
					return err
				}
				return eachPlayer(ctx, cfg, players, func(ctx context.Context, cfg *config.Config, p player.Profile) error {
					matches, err := table.ReadMatches(cfg.ProcessedPath(p.ProcessedFile()), format(cfg))
					if err != nil {
						return fmt.Errorf("read canonical table: %w", err)
					}
					n, err := pool.ReplaceMatches(ctx, p.Key, matches)
					if err != nil {
						return err
					}
					logger.Info("Load finished", "player", p.Key, "rows", n, "table", config.MatchLogsTable)
					return nil
				})
			})
		},
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var skipScrape bool
	cmd := &cobra.Command{
		Use:   "run [player...]",
		Short: "Scrape, process and report in one go",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayers(args, func(ctx context.Context, cfg *config.Config, p player.Profile) error {
				if !skipScrape {
					if err := scrapePlayer(ctx, cfg, p); err != nil {
						return fmt.Errorf("scrape: %w", err)
					}
				}
				if err := processPlayer(ctx, cmd, cfg, p, "", ""); err != nil {
					return fmt.Errorf("process: %w", err)
				}
				return reportPlayer(cmd, cfg, p, filepath.Join(cfg.ReportDir, p.Key))
			})
		},
	}
	cmd.Flags().BoolVar(&skipScrape, "skip-scrape", false, "Reuse the existing raw snapshots")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

type playerFunc func(ctx context.Context, cfg *config.Config, p player.Profile) error

// runPlayers runs fn for each named player (all players when none are named).
func runPlayers(args []string, fn playerFunc) error {
	players, err := resolvePlayers(args)
	if err != nil {
		return err
	}
	return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
		return eachPlayer(ctx, cfg, players, fn)
	})
}

// eachPlayer runs fn for every player. A failure is logged and the next
// player still runs; the joined error is returned at the end.
func eachPlayer(ctx context.Context, cfg *config.Config, players []player.Profile, fn playerFunc) error {
	var errs []error
	for _, p := range players {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, cfg, p); err != nil {
			logger.Error("Player failed", "player", p.Key, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Key, err))
		}
	}
	return errors.Join(errs...)
}

func resolvePlayers(args []string) ([]player.Profile, error) {
	if len(args) == 0 {
		args = player.Keys()
	}
	out := make([]player.Profile, 0, len(args))
	for _, a := range args {
		p, err := player.Lookup(a)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// runWithConfig handles config loading, flag overrides and context cancellation.
func runWithConfig(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)

	return fn(ctx, cfg)
}

func applyFlags(cfg *config.Config) error {
	if flagDecimal != "" {
		r, err := config.ParseRune(flagDecimal)
		if err != nil {
			return fmt.Errorf("--decimal: %w", err)
		}
		cfg.DecimalSeparator = r
		if flagDelimiter == "" && r == ',' && cfg.Delimiter == ',' {
			cfg.Delimiter = ';'
		}
	}
	if flagDelimiter != "" {
		r, err := config.ParseRune(flagDelimiter)
		if err != nil {
			return fmt.Errorf("--delimiter: %w", err)
		}
		cfg.Delimiter = r
	}
	return cfg.Validate()
}

func format(cfg *config.Config) table.Format {
	return table.Format{Delimiter: cfg.Delimiter, Decimal: cfg.DecimalSeparator}
}
