package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/ratelimit"
	"github.com/sevenstarlining/sevenstar-api/internal/utils"
	"github.com/sevenstarlining/sevenstar-api/internal/version"
)

type HealthStatus struct {
	Version         string `json:"version"`
	EmailConfigured bool   `json:"emailConfigured"`
	// RateLimit holds per-layer admit/deny totals when the stats store keeps them locally
	RateLimit map[string]ratelimit.Counters `json:"rateLimit,omitempty"`
}

type HealthHandler struct {
	emailConfigured bool
	stats           ratelimit.Snapshotter
}

// NewHealthHandler creates the health handler. stats may be nil.
func NewHealthHandler(emailConfigured bool, stats ratelimit.Snapshotter) *HealthHandler {
	return &HealthHandler{emailConfigured: emailConfigured, stats: stats}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := HealthStatus{
		Version:         version.Version,
		EmailConfigured: h.emailConfigured,
	}
	if h.stats != nil {
		status.RateLimit = h.stats.Snapshot()
	}
	utils.HandleSuccess(c, "OK", status)
}
