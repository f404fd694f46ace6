package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/matchlogs/internal/provider"
)

// Columns is the canonical table header, in output order.
var Columns = []string{
	"date", "season", "age", "player", "player_team", "home_away",
	"competition", "home_team", "result", "away_team", "opponent",
	"lineup", "minutes", "goals", "assists", "cards",
}

// Format selects the field delimiter and the decimal separator used for the
// age column.
type Format struct {
	Delimiter rune
	Decimal   rune
}

// DefaultFormat is comma-delimited with a decimal point.
var DefaultFormat = Format{Delimiter: ',', Decimal: '.'}

func (f Format) withDefaults() Format {
	if f.Decimal == 0 {
		f.Decimal = '.'
	}
	if f.Delimiter == 0 {
		f.Delimiter = ','
		if f.Decimal == ',' {
			f.Delimiter = ';'
		}
	}
	return f
}

// WriteMatches atomically replaces path with the canonical table.
func WriteMatches(path string, matches []provider.Match, f Format) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeMatches(w, matches, f)
	})
}

// EncodeMatches writes the canonical table to w. Missing values are empty
// cells. Output is deterministic for a given input.
func EncodeMatches(w io.Writer, matches []provider.Match, f Format) error {
	f = f.withDefaults()
	cw := csv.NewWriter(w)
	cw.Comma = f.Delimiter

	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, m := range matches {
		if err := cw.Write(record(m, f)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(m provider.Match, f Format) []string {
	date := ""
	if m.Date != nil {
		date = m.Date.Format(provider.DateLayout)
	}
	age := ""
	if m.Age != nil {
		age = strconv.FormatFloat(*m.Age, 'f', 2, 64)
		if f.Decimal != '.' {
			age = strings.Replace(age, ".", string(f.Decimal), 1)
		}
	}
	return []string{
		date,
		m.Season,
		age,
		m.Player,
		m.PlayerTeam,
		string(m.Venue),
		m.Competition,
		m.HomeTeam,
		m.Result,
		m.AwayTeam,
		m.Opponent,
		string(m.Lineup),
		formatCount(m.Minutes),
		formatCount(m.Goals),
		formatCount(m.Assists),
		formatCount(m.Cards),
	}
}

func formatCount(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// ReadMatches loads a canonical table written with the same Format.
func ReadMatches(path string, f Format) ([]provider.Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return DecodeMatches(file, f)
}

// DecodeMatches parses a canonical table. Columns are located by header
// name, so extra or reordered columns are tolerated.
func DecodeMatches(r io.Reader, f Format) ([]provider.Match, error) {
	f = f.withDefaults()
	cr := csv.NewReader(r)
	cr.Comma = f.Delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx["date"]; !ok {
		return nil, fmt.Errorf("not a match table: no date column (delimiter %q?)", f.Delimiter)
	}

	var out []provider.Match
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		get := func(col string) string {
			if i, ok := idx[col]; ok && i < len(rec) {
				return rec[i]
			}
			return ""
		}

		m := provider.Match{
			Season:      get("season"),
			Player:      get("player"),
			PlayerTeam:  get("player_team"),
			Venue:       provider.Venue(get("home_away")),
			Competition: get("competition"),
			HomeTeam:    get("home_team"),
			Result:      get("result"),
			AwayTeam:    get("away_team"),
			Opponent:    get("opponent"),
			Lineup:      provider.Lineup(get("lineup")),
		}
		if d := get("date"); d != "" {
			t, err := time.Parse(provider.DateLayout, d)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad date %q: %w", line, d, err)
			}
			m.Date = &t
		}
		if a := get("age"); a != "" {
			v, err := strconv.ParseFloat(strings.Replace(a, string(f.Decimal), ".", 1), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad age %q: %w", line, a, err)
			}
			m.Age = &v
		}
		for col, dst := range map[string]**int{
			"minutes": &m.Minutes,
			"goals":   &m.Goals,
			"assists": &m.Assists,
			"cards":   &m.Cards,
		} {
			s := get(col)
			if s == "" {
				continue
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad %s %q: %w", line, col, s, err)
			}
			*dst = &n
		}
		out = append(out, m)
	}
	return out, nil
}
