package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Metrics struct {
	mu              sync.RWMutex
	RequestCount    int64            `json:"request_count"`
	ErrorCount      int64            `json:"error_count"`
	ActiveRequests  int64            `json:"active_requests"`
	RequestDuration time.Duration    `json:"avg_request_duration_ms"`
	StatusCodes     map[string]int64 `json:"status_codes"`
	Endpoints       map[string]int64 `json:"endpoint_calls"`
	StartTime       time.Time        `json:"start_time"`
	LastRequest     time.Time        `json:"last_request"`
	totalDuration   time.Duration
}

var globalMetrics = &Metrics{
	StatusCodes: make(map[string]int64),
	Endpoints:   make(map[string]int64),
	StartTime:   time.Now(),
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		globalMetrics.mu.Lock()
		globalMetrics.ActiveRequests++
		globalMetrics.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		globalMetrics.mu.Lock()
		globalMetrics.RequestCount++
		globalMetrics.ActiveRequests--
		globalMetrics.totalDuration += duration
		globalMetrics.RequestDuration = globalMetrics.totalDuration / time.Duration(globalMetrics.RequestCount)
		globalMetrics.LastRequest = time.Now()
		if statusCode >= 400 {
			globalMetrics.ErrorCount++
		}
		globalMetrics.StatusCodes[http.StatusText(statusCode)]++
		globalMetrics.Endpoints[endpoint]++
		globalMetrics.mu.Unlock()
	}
}

func MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		globalMetrics.mu.RLock()
		defer globalMetrics.mu.RUnlock()
		c.JSON(http.StatusOK, gin.H{
			"request_count":           globalMetrics.RequestCount,
			"error_count":             globalMetrics.ErrorCount,
			"active_requests":         globalMetrics.ActiveRequests,
			"avg_request_duration_ms": globalMetrics.RequestDuration.Milliseconds(),
			"status_codes":            globalMetrics.StatusCodes,
			"endpoint_calls":          globalMetrics.Endpoints,
			"uptime_seconds":          int64(time.Since(globalMetrics.StartTime).Seconds()),
		})
	}
}

// HealthHandler reports liveness plus a database ping.
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		dbStatus := "up"

		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "degraded"
			dbStatus = "down"
		}

		code := http.StatusOK
		if status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":   status,
			"database": dbStatus,
			"time":     time.Now().UTC(),
		})
	}
}
