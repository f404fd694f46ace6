package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchlogs/internal/provider"
)

func sampleMatches() []provider.Match {
	d := time.Date(2012, time.March, 7, 0, 0, 0, 0, time.UTC)
	age := 24.7
	return []provider.Match{
		{
			Date:        &d,
			Season:      "2011-2012",
			Age:         &age,
			Player:      "Lionel Messi",
			PlayerTeam:  "FC Barcelona",
			Venue:       provider.VenueHome,
			Competition: "UEFA Champions League",
			HomeTeam:    "FC Barcelona",
			Result:      "7-1",
			AwayTeam:    "Bayer Leverkusen",
			Opponent:    "Bayer Leverkusen",
			Lineup:      provider.LineupStarter,
			Minutes:     provider.IntPtr(90),
			Goals:       provider.IntPtr(5),
			Assists:     provider.IntPtr(0),
			Cards:       provider.IntPtr(0),
		},
		{
			Player:      "Lionel Messi",
			PlayerTeam:  provider.UnknownTeam,
			Venue:       provider.VenueUnknown,
			Competition: "Friendly, club",
			HomeTeam:    "Unknown FC",
			AwayTeam:    "Other FC",
			Minutes:     provider.IntPtr(0),
			Goals:       provider.IntPtr(0),
			Assists:     provider.IntPtr(0),
			Cards:       provider.IntPtr(0),
		},
	}
}

func TestMatches_RoundTripDecimalComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "messi_cleaned_data.csv")
	f := Format{Decimal: ','}

	require.NoError(t, WriteMatches(path, sampleMatches(), f))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(raw), "\n")
	assert.Equal(t, strings.Join(Columns, ";"), lines[0])
	assert.Contains(t, lines[1], ";24,70;")

	got, err := ReadMatches(path, f)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleMatches(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMatches_RoundTripDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeMatches(&buf, sampleMatches(), DefaultFormat))
	assert.Contains(t, buf.String(), ",24.70,")
	assert.Contains(t, buf.String(), `"Friendly, club"`)

	got, err := DecodeMatches(&buf, DefaultFormat)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleMatches(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeMatches_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, EncodeMatches(&a, sampleMatches(), DefaultFormat))
	require.NoError(t, EncodeMatches(&b, sampleMatches(), DefaultFormat))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestDecodeMatches_WrongDelimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeMatches(&buf, sampleMatches(), Format{Delimiter: ';', Decimal: ','}))
	_, err := DecodeMatches(&buf, DefaultFormat)
	require.Error(t, err)
}

func TestWriteMatches_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, WriteMatches(path, sampleMatches(), DefaultFormat))
	require.NoError(t, WriteMatches(path, sampleMatches()[:1], DefaultFormat))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "t.csv", entries[0].Name())

	got, err := ReadMatches(path, DefaultFormat)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReadRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	content := "\xef\xbb\xbfDate,Home Team,Away Team\n01-01-2020,Barcelona\n02-01-2020,Getafe,Barcelona,extra\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := ReadRaw(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Home Team", "Away Team"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0]["Away Team"])
	assert.Equal(t, "Barcelona", table.Rows[1]["Away Team"])
}

func TestDecodeRaw_InvalidUTF8(t *testing.T) {
	_, err := DecodeRaw([]byte("Date\n\xff\xfe\n"))
	require.Error(t, err)
}

func TestMergeRaw_KeepsLast(t *testing.T) {
	key := []string{"Date", "Home Team", "Away Team"}
	existing := provider.RawTable{
		Header: []string{"Date", "Home Team", "Away Team", "Goals"},
		Rows: []provider.RawRow{
			{"Date": "01-01-2020", "Home Team": "A", "Away Team": "B", "Goals": "0"},
			{"Date": "05-01-2020", "Home Team": "C", "Away Team": "A", "Goals": "1"},
		},
	}
	fresh := provider.RawTable{
		Header: []string{"Date", "Home Team", "Away Team", "Goals", "Extra"},
		Rows: []provider.RawRow{
			{"Date": "01-01-2020", "Home Team": "A", "Away Team": "B", "Goals": "2"},
			{"Date": "09-01-2020", "Home Team": "A", "Away Team": "D", "Goals": "0"},
		},
	}

	merged := MergeRaw(existing, fresh, key)
	assert.Equal(t, []string{"Date", "Home Team", "Away Team", "Goals", "Extra"}, merged.Header)
	require.Len(t, merged.Rows, 3)
	assert.Equal(t, "05-01-2020", merged.Rows[0]["Date"])
	assert.Equal(t, "2", merged.Rows[1]["Goals"])
	assert.Equal(t, "09-01-2020", merged.Rows[2]["Date"])
}

func TestWriteRaw_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	in := provider.RawTable{
		Header: []string{"Date", "Competition"},
		Rows:   []provider.RawRow{{"Date": "01-01-2020", "Competition": "icon\nLiga"}},
	}
	require.NoError(t, WriteRaw(path, in))

	out, err := ReadRaw(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
