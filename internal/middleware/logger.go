package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/kubertodo/internal/pkg/logger"
)

// Logger configuration
type LoggerConfig struct {
	LogRequestBody bool
	MaxBodySize    int64 // Max body size to log (in bytes)
	SkipPaths      []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		LogRequestBody: true,
		MaxBodySize:    2048,
		SkipPaths:      []string{"/health", "/metrics"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig(), nil)
}

// LoggerWithConfig logs one line per finished request. Request bodies are only
// read at debug level. A nil l uses the global logger.
func LoggerWithConfig(config LoggerConfig, l *logger.Logger) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		lg := l
		if lg == nil {
			lg = logger.Default()
		}

		start := time.Now()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
		}
		if id := c.GetString(RequestIDKey); id != "" {
			lg = lg.With("request_id", id)
		}

		if config.LogRequestBody && lg.GetLevel() <= log.DebugLevel {
			if body := readBody(c, config.MaxBodySize); body != "" {
				lg.Debug("request body", append(fields, "body", body)...)
			}
		}

		c.Next()

		status := c.Writer.Status()
		fields = append(fields,
			"status", status,
			"latency", time.Since(start).String(),
			"size", c.Writer.Size(),
		)
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			lg.Error("request", fields...)
		case status >= 400:
			lg.Warn("request", fields...)
		default:
			lg.Info("request", fields...)
		}
	}
}

// readBody reads and restores the request body, returning a loggable form.
func readBody(c *gin.Context, maxSize int64) string {
	// unknown length (chunked) is not read: a partial read would cut the body
	if c.Request.Body == nil || c.Request.ContentLength <= 0 {
		return ""
	}
	if c.Request.ContentLength > maxSize {
		return "[body too large to log]"
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSize))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return sanitizeBody(string(bodyBytes), c.GetHeader("Content-Type"))
}

func sanitizeBody(body, contentType string) string {
	if len(body) == 0 {
		return ""
	}

	if strings.Contains(contentType, "application/json") {
		var jsonData interface{}
		if json.Unmarshal([]byte(body), &jsonData) == nil {
			if formatted, err := json.Marshal(hideSensitiveFields(jsonData)); err == nil {
				return truncateString(string(formatted), 1024)
			}
		}
	}

	return truncateString(body, 200)
}

func hideSensitiveFields(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitiveField(strings.ToLower(key)) {
				result[key] = "********"
			} else {
				result[key] = hideSensitiveFields(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = hideSensitiveFields(item)
		}
		return result
	default:
		return v
	}
}

func isSensitiveField(field string) bool {
	sensitive := []string{"password", "token", "secret", "key", "auth", "credential"}
	for _, s := range sensitive {
		if strings.Contains(field, s) {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
