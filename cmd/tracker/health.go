package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rickgao/stock-tracker/internal/tracker"
	"github.com/rickgao/stock-tracker/internal/version"
)

// statusSource is the tracker as seen by the health handler.
type statusSource interface {
	Status() tracker.Status
}

// createHealthHandler serves /health and, when mirror is non-nil, /mirror.
func createHealthHandler(src statusSource, mirror http.Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		st := src.Status()

		health := struct {
			Status     string                 `json:"status"`
			Build      version.Info           `json:"build"`
			Components map[string]interface{} `json:"components"`
		}{
			Status:     "healthy",
			Build:      version.Get(),
			Components: make(map[string]interface{}),
		}

		health.Components["quotes"] = st
		if st.Valid == 0 {
			health.Status = "degraded"
		}
		if st.LastSkipped {
			health.Status = "unhealthy"
			health.Components["network"] = "unavailable"
		} else {
			health.Components["network"] = "available"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(health); err != nil {
			logger.Warn("failed to write health response", "error", err)
		}
	})

	if mirror != nil {
		mux.Handle("/mirror", mirror)
	}

	return mux
}
