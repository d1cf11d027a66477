package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"insight-agent/internal/config"
	apperrors "insight-agent/internal/errors"
	"insight-agent/internal/logger"
	"insight-agent/internal/service"
	"insight-agent/pkg/models"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey       = "request_id"
	maxRequestIDLength = 128
)

// StatsProvider exposes analysis counters for the /stats endpoint
type StatsProvider interface {
	GetMetrics() models.StatsResponse
}

func NewHandler(svc service.TextAnalysisService, stats StatsProvider, cfg *config.Config) http.Handler {
	r := gin.New()

	// Add middleware
	r.Use(
		requestID(),
		accessLogger(),
		gin.CustomRecoveryWithWriter(io.Discard, recoverPanic),
		cors.New(corsConfig(cfg)),
		requestSizeLimiter(cfg.MaxRequestBodySize),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeText(svc, cfg))
	r.GET("/stats", getStats(stats))

	return r
}

func analyzeText(svc service.TextAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				respondError(c, apperrors.NewPayloadTooLargeError(
					fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit), err))
				return
			}
			respondError(c, apperrors.NewUnprocessableError(
				"request body must be a JSON object with a string field \"text\"", err))
			return
		}

		resp, err := svc.Analyze(ctx, *req.Text)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: config.ServiceName,
	})
}

func getStats(stats StatsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.GetMetrics())
	}
}

// Middleware and helper functions

// requestID reuses a caller-supplied X-Request-ID or generates a UUID, and
// makes it visible to the service layer through the request context.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(service.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func accessLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"latency_ms":  time.Since(startTime).Milliseconds(),
			"ip":          c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
			"request_id":  c.GetString(requestIDKey),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request completed")
			return
		}
		entry.Info("Request completed")
	}
}

func recoverPanic(c *gin.Context, recovered any) {
	respondError(c, apperrors.NewInternalError("handler panicked", fmt.Errorf("panic: %v", recovered)))
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}

// respondError writes the error body. Internal errors are logged with their
// cause and rendered with a generic message only.
func respondError(c *gin.Context, err error) {
	code := apperrors.GetStatusCode(err)
	detail := apperrors.InternalErrorMessage
	if appErr, ok := apperrors.AsAppError(err); ok {
		detail = appErr.PublicMessage()
	}

	entry := logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
		"request_id":  c.GetString(requestIDKey),
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Detail:    detail,
		RequestID: c.GetString(requestIDKey),
	})
}
