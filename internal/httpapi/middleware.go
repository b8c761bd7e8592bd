package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/cart-service/internal/logging"
	"github.com/nikolayk812/cart-service/internal/telemetry"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID reuses an incoming X-Request-ID or generates one, and echoes it
// in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger puts a request-scoped logger into the request context and
// logs each completed request. Place it after RequestID.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		logger := base.With(
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		if id := c.GetString(requestIDKey); id != "" {
			logger = logger.With(slog.String("request_id", id))
		}

		ctx := logging.WithContext(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		logger.LogAttrs(ctx, level, "request completed",
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// Metrics records request count, latency and in-flight gauge. Paths are
// labelled by route template to keep cardinality bounded.
func Metrics(m *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := m.TrackInFlight()
		defer done()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns a panic into a 500 error response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "panic recovered",
			slog.Any("panic", recovered),
		)
		writeError(c, http.StatusInternalServerError, "internal server error")
	})
}

// NewRouter builds the engine with the middleware chain and the cart routes.
// metrics may be nil.
func NewRouter(logger *slog.Logger, metrics *telemetry.Metrics, h *Handler) *gin.Engine {
	r := gin.New()

	r.Use(RequestID(), RequestLogger(logger))
	if metrics != nil {
		r.Use(Metrics(metrics))
	}
	r.Use(Recovery())

	h.RegisterRoutes(r)

	return r
}
