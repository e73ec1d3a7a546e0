package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/mstgnz/payu-console/infra/config"
	"github.com/mstgnz/payu-console/infra/opensearch"
	"github.com/mstgnz/payu-console/infra/response"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	storage   *config.SQLiteStorage
	osClient  *opensearch.Client
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage *config.SQLiteStorage, osClient *opensearch.Client) *HealthHandler {
	return &HealthHandler{
		storage:   storage,
		osClient:  osClient,
		startTime: time.Now(),
	}
}

// HealthStatus represents overall system health
type HealthStatus struct {
	Status    string         `json:"status"`
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	Uptime    string         `json:"uptime"`
	Storage   *StorageHealth `json:"storage"`
	Logging   *LoggingHealth `json:"logging"`
	System    *SystemHealth  `json:"system"`
}

// StorageHealth represents credential storage health
type StorageHealth struct {
	Status   string `json:"status"`
	Profiles any    `json:"profiles,omitempty"`
	DBSize   any    `json:"db_size_bytes,omitempty"`
	Error    string `json:"error,omitempty"`
}

// LoggingHealth represents attempt logging health
type LoggingHealth struct {
	Enabled bool `json:"enabled"`
}

// SystemHealth represents runtime resource usage
type SystemHealth struct {
	Alloc      string `json:"alloc"`
	Sys        string `json:"sys"`
	GCRuns     uint32 `json:"gc_runs"`
	GoRoutines int    `json:"goroutines"`
}

// Health returns the overall service health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := &HealthStatus{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Storage:   h.storageHealth(),
		Logging:   &LoggingHealth{Enabled: h.osClient != nil && h.osClient.IsEnabled()},
		System:    systemHealth(),
	}

	code := http.StatusOK
	if status.Storage.Status == "unhealthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	response.Success(w, code, "Health check", status)
}

func (h *HealthHandler) storageHealth() *StorageHealth {
	if h.storage == nil {
		return &StorageHealth{Status: "disabled"}
	}

	stats, err := h.storage.GetStats()
	if err != nil {
		return &StorageHealth{Status: "unhealthy", Error: err.Error()}
	}

	return &StorageHealth{
		Status:   "healthy",
		Profiles: stats["total_profiles"],
		DBSize:   stats["db_size_bytes"],
	}
}

func systemHealth() *SystemHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemHealth{
		Alloc:      formatBytes(m.Alloc),
		Sys:        formatBytes(m.Sys),
		GCRuns:     m.NumGC,
		GoRoutines: runtime.NumGoroutine(),
	}
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
