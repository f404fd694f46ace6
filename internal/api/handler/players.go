package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/matchlogs/internal/analysis"
	"github.com/albapepper/matchlogs/internal/api/respond"
	"github.com/albapepper/matchlogs/internal/cache"
	"github.com/albapepper/matchlogs/internal/player"
	"github.com/albapepper/matchlogs/internal/provider"
	"github.com/albapepper/matchlogs/internal/table"
)

// PlayerInfo is the registry entry returned by the players endpoint.
type PlayerInfo struct {
	Key          string             `json:"key"`
	Name         string             `json:"name"`
	Birthdate    string             `json:"birthdate"`
	Provider     provider.Provider  `json:"provider"`
	NationalTeam string             `json:"national_team"`
	Clubs        []player.ClubSpell `json:"clubs"`
}

// MatchRow is one canonical match as served over the API.
type MatchRow struct {
	Date        string   `json:"date"`
	Season      string   `json:"season"`
	Age         *float64 `json:"age"`
	PlayerTeam  string   `json:"player_team"`
	HomeAway    string   `json:"home_away"`
	Competition string   `json:"competition"`
	HomeTeam    string   `json:"home_team"`
	Result      string   `json:"result"`
	AwayTeam    string   `json:"away_team"`
	Opponent    *string  `json:"opponent"`
	Lineup      string   `json:"lineup"`
	Minutes     int      `json:"minutes"`
	Goals       int      `json:"goals"`
	Assists     int      `json:"assists"`
	Cards       int      `json:"cards"`
}

// MatchesResponse wraps a player's match list.
type MatchesResponse struct {
	Player  string     `json:"player"`
	Season  string     `json:"season,omitempty"`
	Count   int        `json:"count"`
	Matches []MatchRow `json:"matches"`
}

func toMatchRow(m provider.Match) MatchRow {
	row := MatchRow{
		Season:      m.Season,
		Age:         m.Age,
		PlayerTeam:  m.PlayerTeam,
		HomeAway:    string(m.Venue),
		Competition: m.Competition,
		HomeTeam:    m.HomeTeam,
		Result:      m.Result,
		AwayTeam:    m.AwayTeam,
		Lineup:      string(m.Lineup),
		Minutes:     provider.Count(m.Minutes),
		Goals:       provider.Count(m.Goals),
		Assists:     provider.Count(m.Assists),
		Cards:       provider.Count(m.Cards),
	}
	if m.Date != nil {
		row.Date = m.Date.Format(provider.DateLayout)
	}
	if m.Opponent != "" {
		opp := m.Opponent
		row.Opponent = &opp
	}
	return row
}

// ListPlayers returns the registered players.
// @Summary List players
// @Description Returns every player the pipeline knows, with club history.
// @Tags players
// @Produce json
// @Success 200 {array} PlayerInfo
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "players", cache.TTLRegistry, func() (interface{}, error) {
		keys := player.Keys()
		out := make([]PlayerInfo, 0, len(keys))
		for _, k := range keys {
			p := player.Registry[k]
			out = append(out, PlayerInfo{
				Key:          p.Key,
				Name:         p.Name,
				Birthdate:    p.Birthdate.Format(provider.DateLayout),
				Provider:     p.Provider,
				NationalTeam: p.NationalTeam,
				Clubs:        p.Clubs,
			})
		}
		return out, nil
	})
}

// GetMatches returns a player's canonical match table.
// @Summary Get player matches
// @Description Returns the processed match log, optionally filtered to one season.
// @Tags players
// @Produce json
// @Param player path string true "Player key" Enums(messi, lamine)
// @Param season query string false "Season label, e.g. 2011-2012"
// @Success 200 {object} MatchesResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{player}/matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	season := r.URL.Query().Get("season")

	matches, version, err := h.store.Matches(r.Context(), p)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	key := fmt.Sprintf("matches:%s:%s:%s", p.Key, version, season)
	h.serveCached(w, r, key, cache.TTLMatches, func() (interface{}, error) {
		resp := MatchesResponse{Player: p.Name, Season: season, Matches: []MatchRow{}}
		for _, m := range matches {
			if season != "" && m.Season != season {
				continue
			}
			resp.Matches = append(resp.Matches, toMatchRow(m))
		}
		resp.Count = len(resp.Matches)
		return resp, nil
	})
}

// GetMatchesCSV returns a player's canonical table as delimited text.
// @Summary Download player matches
// @Description Returns the processed match log in the configured delimited format.
// @Tags players
// @Produce text/csv
// @Param player path string true "Player key" Enums(messi, lamine)
// @Success 200 {string} string
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{player}/matches.csv [get]
func (h *Handler) GetMatchesCSV(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	matches, _, err := h.store.Matches(r.Context(), p)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	format := table.Format{Delimiter: h.cfg.Delimiter, Decimal: h.cfg.DecimalSeparator}
	err = respond.WriteCSV(w, p.ProcessedFile(), cache.TTLMatches, func(out io.Writer) error {
		return table.EncodeMatches(out, matches, format)
	})
	if err != nil {
		h.logger.Warn("CSV response truncated", "player", p.Key, "error", err)
	}
}

// GetSummary returns descriptive statistics for a player.
// @Summary Get player summary
// @Description Returns goals, assists and minutes broken down by year, season, month, competition, venue, age and lineup.
// @Tags players
// @Produce json
// @Param player path string true "Player key" Enums(messi, lamine)
// @Success 200 {object} analysis.Summary
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{player}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	matches, version, err := h.store.Matches(r.Context(), p)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	key := fmt.Sprintf("summary:%s:%s", p.Key, version)
	h.serveCached(w, r, key, cache.TTLSummary, func() (interface{}, error) {
		return analysis.Compute(p.Name, matches), nil
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (player.Profile, bool) {
	p, err := player.Lookup(chi.URLParam(r, "player"))
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusNotFound, "UNKNOWN_PLAYER", "Player not found", err.Error())
		return player.Profile{}, false
	}
	return p, true
}
