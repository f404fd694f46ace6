package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("DECIMAL_SEPARATOR", "")
	t.Setenv("CSV_DELIMITER", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("data", "raw"), cfg.RawDir)
	require.Equal(t, filepath.Join("data", "processed"), cfg.ProcessedDir)
	require.Equal(t, ',', cfg.Delimiter)
	require.Equal(t, '.', cfg.DecimalSeparator)
}

func TestLoad_DecimalCommaSwitchesDelimiter(t *testing.T) {
	t.Setenv("DECIMAL_SEPARATOR", ",")
	t.Setenv("CSV_DELIMITER", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ';', cfg.Delimiter)
	require.Equal(t, ',', cfg.DecimalSeparator)
}

func TestLoad_RejectsUnknownDecimal(t *testing.T) {
	t.Setenv("DECIMAL_SEPARATOR", "x")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsEqualSeparators(t *testing.T) {
	t.Setenv("DECIMAL_SEPARATOR", ",")
	t.Setenv("CSV_DELIMITER", ",")

	_, err := Load()
	require.ErrorContains(t, err, "must differ")
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())

	t.Setenv("ENVIRONMENT", "")
	cfg, err = Load()
	require.NoError(t, err)
	require.False(t, cfg.IsProduction())
}

func TestParseRune(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: ",", want: ','},
		{in: ";", want: ';'},
		{in: "tab", want: '\t'},
		{in: `\t`, want: '\t'},
		{in: ",,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRune(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
