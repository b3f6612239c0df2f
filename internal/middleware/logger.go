package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"communityportal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func setupLogger(engine *gin.Engine, log *logger.Logger) {
	engine.Use(LoggerMiddleware(log, DefaultMiddlewareConfig()))
}

// MiddlewareConfig configures the access log middleware
type MiddlewareConfig struct {
	LogRequestBody  bool
	LogResponseBody bool
	// Bodies longer than this are replaced by a marker
	MaxBodySize int
	// Headers to exclude from logging (case-insensitive)
	ExcludedHeaders []string
	// Paths to skip logging (exact match)
	SkipPaths []string
	// Whether to log only 4xx and 5xx responses
	ErrorsOnly bool
}

// DefaultMiddlewareConfig returns a default configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		LogRequestBody:  true,
		LogResponseBody: false,
		MaxBodySize:     1024,
		ExcludedHeaders: []string{
			"authorization",
			"cookie",
			"set-cookie",
			"x-api-key",
		},
		SkipPaths: []string{
			"/healthcheck/",
			"/metrics/prometheus",
		},
	}
}

// responseBodyWriter wraps gin.ResponseWriter to capture response body
type responseBodyWriter struct {
	gin.ResponseWriter
	body  *bytes.Buffer
	limit int
}

func (w *responseBodyWriter) Write(data []byte) (int, error) {
	if w.body.Len() <= w.limit {
		w.body.Write(data)
	}
	return w.ResponseWriter.Write(data)
}

func truncateBody(b []byte, limit int) string {
	if len(b) > limit {
		return "[BODY TOO LARGE]"
	}
	return string(b)
}

// LoggerMiddleware writes one structured entry per request.
func LoggerMiddleware(log *logger.Logger, cfg MiddlewareConfig) gin.HandlerFunc {
	excludedHeaders := make(map[string]bool)
	for _, header := range cfg.ExcludedHeaders {
		excludedHeaders[strings.ToLower(header)] = true
	}
	skipPaths := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		if log == nil || skipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()

		var requestBody string
		if cfg.LogRequestBody && c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
				requestBody = truncateBody(bodyBytes, cfg.MaxBodySize)
			}
		}

		var responseBuf *bytes.Buffer
		if cfg.LogResponseBody {
			responseBuf = &bytes.Buffer{}
			c.Writer = &responseBodyWriter{ResponseWriter: c.Writer, body: responseBuf, limit: cfg.MaxBodySize}
		}

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		if cfg.ErrorsOnly && statusCode < 400 {
			return
		}

		headers := make(map[string]string)
		for name, values := range c.Request.Header {
			if !excludedHeaders[strings.ToLower(name)] && len(values) > 0 {
				headers[name] = values[0]
			}
		}

		var responseBody string
		if responseBuf != nil {
			responseBody = truncateBody(responseBuf.Bytes(), cfg.MaxBodySize)
		}

		level := logger.LevelInfo
		message := "HTTP Request"
		switch {
		case statusCode >= 500:
			level, message = logger.LevelError, "HTTP Server Error"
		case statusCode >= 400:
			level, message = logger.LevelWarn, "HTTP Client Error"
		}

		fields := map[string]interface{}{"component": "http_middleware"}
		if custom, exists := c.Get("log_fields"); exists {
			if fieldMap, ok := custom.(map[string]interface{}); ok {
				for k, v := range fieldMap {
					fields[k] = v
				}
			}
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		log.WithContext(level, message, logger.LogContext{
			HTTP: &logger.HTTPContext{
				Method:       c.Request.Method,
				Path:         c.Request.URL.Path,
				Route:        c.FullPath(),
				Query:        c.Request.URL.RawQuery,
				UserAgent:    c.Request.UserAgent(),
				RemoteIP:     c.ClientIP(),
				Headers:      headers,
				StatusCode:   statusCode,
				ResponseSize: int64(c.Writer.Size()),
				RequestID:    GetRequestID(c),
				RequestBody:  requestBody,
				ResponseBody: responseBody,
			},
			Performance: &logger.PerformanceContext{
				Duration:   duration,
				DurationMs: float64(duration.Microseconds()) / 1000,
			},
			Fields: fields,
		})
	}
}

// AddLogFields adds custom fields to the request's access log entry
func AddLogFields(c *gin.Context, fields map[string]interface{}) {
	existing, exists := c.Get("log_fields")
	if existingMap, ok := existing.(map[string]interface{}); exists && ok {
		for k, v := range fields {
			existingMap[k] = v
		}
		return
	}
	c.Set("log_fields", fields)
}
