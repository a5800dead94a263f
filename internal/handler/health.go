package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/apierror"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/shipping"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health returns a JSON health check response.
// Checks Redis connectivity, the shipping circuit breaker state and the dead
// job backlog; never exposes credentials or internals.
func Health(rdb *redis.Client, gateway *shipping.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		redisStatus := "connected"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":               status == http.StatusOK,
			"redis":            redisStatus,
			"shipping_breaker": gateway.BreakerState().String(),
			"dead_jobs": gin.H{
				"receipt": worker.DeadCount(ctx, rdb, worker.QueueReceipt),
				"email":   worker.DeadCount(ctx, rdb, worker.QueueEmail),
			},
		})
	}
}

// deadQueues maps the public queue names onto their Redis keys.
var deadQueues = map[string]string{
	"receipt": worker.QueueReceipt,
	"email":   worker.QueueEmail,
}

// ReplayDeadJobs moves parked jobs of one queue back for another attempt,
// capped per call so an operator replays in controlled batches.
func ReplayDeadJobs(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		queue, ok := deadQueues[c.Param("queue")]
		if !ok {
			c.JSON(http.StatusNotFound, apierror.New("Antrean tidak dikenal"))
			return
		}
		moved, err := worker.ReplayDead(c.Request.Context(), rdb, queue, 100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusOK, gin.H{"queue": c.Param("queue"), "replayed": moved})
	}
}
