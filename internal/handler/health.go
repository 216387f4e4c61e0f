package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/paridu/pos-backend/internal/infra"
	"github.com/paridu/pos-backend/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether the terminal can take sales right now. Postgres and
// Redis are the hard dependencies; the analyst circuit state and the depth of
// the sheet-sync dead letter queue are informational — a tripped circuit or a
// backed-up DLQ degrades features but never blocks checkout, so neither flips
// the status code.
func Health(db *gorm.DB, rdb *redis.Client, analystCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		dlqDepth := int64(-1)
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		} else if n, err := worker.DLQLength(ctx, rdb, worker.QueueSheetSync); err == nil {
			dlqDepth = n
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":              status == http.StatusOK,
			"db":              dbStatus,
			"redis":           redisStatus,
			"analyst_circuit": analystCB.State().String(),
			"sheet_dlq_depth": dlqDepth,
		})
	}
}
