package api

import (
	"net/http"

	"menu-planner/internal/metrics"
)

type readyResponse struct {
	Status string            `json:"status"`
	System metrics.SysHealth `json:"system"`
}

// Ready reports process health along with the size of dataDir.
func Ready(dataDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, readyResponse{
			Status: "ok",
			System: metrics.GetSysHealth(dataDir),
		})
	}
}
