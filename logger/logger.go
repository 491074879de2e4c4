package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey is where the request-scoped logger lives on a gin.Context
const ContextKey = "logger"

var log *zap.Logger

// Init builds the global logger: JSON in production, colored console otherwise
func Init(env, level string) *zap.Logger {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(lvl)

	l, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log = l
	return log
}

// Get returns the global logger, falling back to a no-op logger before Init
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// FromContext returns the request-scoped logger set by Middleware
func FromContext(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(ContextKey); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return Get()
}

// Middleware attaches a logger carrying the request id and writes one access
// line per request
func Middleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLog := base.With(zap.String("request_id", c.GetString("request_id")))
		c.Set(ContextKey, reqLog)

		c.Next()

		fields := []zapcore.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLog.Error("HTTP request failed", fields...)
		case status >= 400:
			reqLog.Warn("HTTP request rejected", fields...)
		default:
			reqLog.Info("HTTP request completed", fields...)
		}
	}
}
