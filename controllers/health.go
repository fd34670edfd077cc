package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/utils"
	"github.com/BerniceZTT/crm_api/worker"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Database is the part of the store the ops endpoints report on.
type Database interface {
	Ping(ctx context.Context) error
	DatabaseStatus(ctx context.Context) (map[string]interface{}, error)
}

type JobStats interface {
	Stats() worker.Stats
}

type HealthController struct {
	db    Database
	cache cache.Backend
	jobs  JobStats
}

func NewHealthController(db Database, backend cache.Backend, jobs JobStats) *HealthController {
	return &HealthController{db: db, cache: backend, jobs: jobs}
}

// Health answers 200 while MongoDB is reachable. A cache outage only
// degrades the status since every cache user falls back to the handler.
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	checks := gin.H{}

	if err := hc.db.Ping(ctx); err != nil {
		utils.LogError(err, nil, "health check: mongodb ping failed")
		checks["mongodb"] = gin.H{"status": "down", "error": err.Error()}
		status, code = "down", http.StatusServiceUnavailable
	} else {
		checks["mongodb"] = gin.H{"status": "up"}
	}

	if err := hc.cache.Ping(ctx); err != nil {
		utils.Logger.Warn().Err(err).Str("backend", hc.cache.Name()).Msg("health check: cache ping failed")
		checks["cache"] = gin.H{"status": "down", "backend": hc.cache.Name(), "error": err.Error()}
		if code == http.StatusOK {
			status = "degraded"
		}
	} else {
		checks["cache"] = gin.H{"status": "up", "backend": hc.cache.Name()}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
		"jobs":      hc.jobs.Stats(),
	})
}

func (hc *HealthController) DatabaseStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, err := hc.db.DatabaseStatus(ctx)
	if err != nil {
		utils.LogError(err, nil, "database status failed")
		utils.ErrorResponse(c, "Failed to read database status: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	utils.SuccessResponse(c, status, "")
}
