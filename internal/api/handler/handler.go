// Package handler provides HTTP handlers for all API endpoints.
// Handlers read the canonical tables through a Store and cache the encoded
// JSON keyed by table version.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/matchlogs/internal/api/respond"
	"github.com/albapepper/matchlogs/internal/cache"
	"github.com/albapepper/matchlogs/internal/config"
	"github.com/albapepper/matchlogs/internal/db"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  Store
	cache  *cache.Cache
	pool   *db.Pool // nil when no database is configured
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies. pool may be nil.
func New(store Store, c *cache.Cache, pool *db.Pool, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  store,
		cache:  c,
		pool:   pool,
		cfg:    cfg,
		logger: logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and docs location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Match Logs API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs/",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity when a database is configured.
// @Summary Database health check
// @Description Verifies Postgres connectivity and whether match_logs has been loaded. Reports "disabled" when DATABASE_URL is unset.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format(time.RFC3339)
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "disabled",
			"timestamp": now,
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": now,
		})
		return
	}
	loaded, err := h.pool.TableExists(r.Context())
	if err != nil {
		h.logger.Warn("Table lookup failed", "error", err)
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"loaded":    loaded,
		"timestamp": now,
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (live and expired payloads, bytes, per-kind counts, hits and misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serveCached answers from the cache when possible, otherwise builds the
// payload, encodes it and caches the bytes under key.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (interface{}, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := build()
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Encode response failed", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotProcessed) {
		respond.WriteErrorDetail(w, http.StatusNotFound, "NOT_PROCESSED",
			"No processed table for this player", "run the ingest process command first")
		return
	}
	h.logger.Error("Read canonical table failed", "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "READ_FAILED", "Failed to read match table")
}
