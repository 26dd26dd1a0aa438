package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/irfndi/stockpulse-go/internal/models"
)

var startTime = time.Now()

// HealthChecker is satisfied by the Postgres and Redis clients
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DatasetSnapshot reports the in-memory dataset without loading it
type DatasetSnapshot interface {
	Snapshot() (*models.Dataset, bool)
	Source() string
}

type HealthHandler struct {
	dataset DatasetSnapshot
	db      HealthChecker
	redis   HealthChecker
}

type SystemStats struct {
	CPUCount      int     `json:"cpu_count"`
	MemoryUsedPct float64 `json:"memory_used_pct"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Dataset   map[string]int    `json:"dataset"`
	System    *SystemStats      `json:"system,omitempty"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
}

// NewHealthHandler builds a health handler. db and redis may be nil when not configured.
func NewHealthHandler(dataset DatasetSnapshot, db, redis HealthChecker) *HealthHandler {
	return &HealthHandler{dataset: dataset, db: db, redis: redis}
}

// HealthCheck reports dependency status. Optional dependencies that are not
// configured do not make the service unhealthy.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	services := map[string]string{
		"database": checkDependency(ctx, h.db),
		"redis":    checkDependency(ctx, h.redis),
	}

	datasetInfo := map[string]int{"rows": 0, "symbols": 0}
	if ds, ok := h.dataset.Snapshot(); ok {
		services["dataset"] = "loaded from " + h.dataset.Source()
		datasetInfo["rows"] = ds.Len()
		datasetInfo["symbols"] = len(ds.Symbols())
	} else {
		services["dataset"] = "not loaded"
	}

	overallStatus := "healthy"
	for name, status := range services {
		if name == "dataset" {
			continue
		}
		if status != "healthy" && status != "not configured" {
			overallStatus = "unhealthy"
			break
		}
	}

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Services:  services,
		Dataset:   datasetInfo,
		System:    systemStats(ctx),
		Version:   os.Getenv("APP_VERSION"),
		Uptime:    time.Since(startTime).String(),
	}

	if overallStatus == "healthy" {
		c.JSON(http.StatusOK, response)
		return
	}
	c.JSON(http.StatusServiceUnavailable, response)
}

func checkDependency(ctx context.Context, checker HealthChecker) string {
	if checker == nil {
		return "not configured"
	}
	if err := checker.HealthCheck(ctx); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}

func systemStats(ctx context.Context) *SystemStats {
	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil
	}
	cpus, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		cpus = 0
	}
	return &SystemStats{CPUCount: cpus, MemoryUsedPct: memInfo.UsedPercent}
}
