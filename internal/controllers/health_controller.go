package controllers

import (
	"fmt"
	"intentd/internal/services"
	"intentd/internal/structures"
	"net/http"
	"time"
)

type HealthController struct {
	conf      *structures.Config
	sessions  services.SessionServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	App           string  `json:"app,omitempty"`
	Storage       string  `json:"storage,omitempty"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Sessions      int     `json:"sessions"`
}

// Health reports liveness and the number of open tracking sessions.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		App:           hc.conf.AppName,
		Storage:       hc.conf.Storage.Driver,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Sessions:      hc.sessions.Count(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, sessions services.SessionServiceInterface) *HealthController {
	return &HealthController{
		conf:      conf,
		sessions:  sessions,
		startTime: time.Now(),
	}
}
