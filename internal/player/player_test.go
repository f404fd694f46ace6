package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchlogs/internal/provider"
)

func TestLookup(t *testing.T) {
	p, err := Lookup(" Messi ")
	require.NoError(t, err)
	assert.Equal(t, "Lionel Messi", p.Name)
	assert.Equal(t, provider.MessiStats, p.Provider)
	assert.Equal(t, "messi_raw_data.csv", p.RawFile())
	assert.Equal(t, "messi_cleaned_data.csv", p.ProcessedFile())

	_, err = Lookup("pele")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lamine, messi")
}

func TestMessiSourceURLs(t *testing.T) {
	require.Len(t, Messi.SourceURLs, 21)
	assert.Equal(t, "https://www.messistats.com/en/games/0/0/all/0/2/0/t/0/0/0/1", Messi.SourceURLs[0])
	assert.Equal(t, "https://www.messistats.com/en/games/0/0/all/0/24/0/t/0/0/0/1", Messi.SourceURLs[20])
}
