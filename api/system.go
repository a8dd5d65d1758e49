package api

import (
	"net/http"
	"runtime"

	"log/slog"

	"github.com/garnizeh/skillsnap/internal/db"
)

// SystemHandler serves the liveness and build-info endpoints. Health
// includes a store ping so a wedged database surfaces as unavailable
// instead of failing on the first real request.
type SystemHandler struct {
	db *db.DB
}

func NewSystemHandler(d *db.DB) *SystemHandler {
	return &SystemHandler{db: d}
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			logger.Error("health check", slog.Any("err", err))
			writeJSON(w, map[string]string{
				"status":  "unavailable",
				"service": "skillsnap",
			}, http.StatusServiceUnavailable)
			return
		}
	}

	writeJSON(w, map[string]string{
		"status":  "ok",
		"service": "skillsnap",
	}, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{
			"version":   version,
			"buildTime": buildTime,
			"goVersion": runtime.Version(),
		}, http.StatusOK)
	}
}
