package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// StandardLogger wraps a logrus logger with the field conventions used across
// the service: service, component, operation, request_id, symbol.
type StandardLogger struct {
	logger *logrus.Logger
}

// NewLogger builds a logrus logger for the given level and environment.
// Development gets the text formatter; every other environment logs JSON.
func NewLogger(logLevel string, environment string) *logrus.Logger {
	return newLogger(os.Stdout, logLevel, environment)
}

func newLogger(out io.Writer, logLevel string, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(ParseLogrusLevel(logLevel))

	if strings.ToLower(environment) == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// NewStandardLogger creates a new standardized logger based on configuration
func NewStandardLogger(logLevel string, environment string) *StandardLogger {
	return &StandardLogger{logger: NewLogger(logLevel, environment)}
}

// Wrap adapts an existing logrus logger
func Wrap(logger *logrus.Logger) *StandardLogger {
	return &StandardLogger{logger: logger}
}

// WithService creates a logger with service context
func (l *StandardLogger) WithService(serviceName string) *logrus.Entry {
	return l.logger.WithField("service", serviceName)
}

// WithComponent creates a logger with component context
func (l *StandardLogger) WithComponent(componentName string) *logrus.Entry {
	return l.logger.WithField("component", componentName)
}

// WithOperation creates a logger with operation context
func (l *StandardLogger) WithOperation(operationName string) *logrus.Entry {
	return l.logger.WithField("operation", operationName)
}

// WithRequestID creates a logger with request ID context
func (l *StandardLogger) WithRequestID(requestID string) *logrus.Entry {
	return l.logger.WithField("request_id", requestID)
}

// WithSymbol creates a logger with symbol context
func (l *StandardLogger) WithSymbol(symbol string) *logrus.Entry {
	return l.logger.WithField("symbol", symbol)
}

// WithError creates a logger with error context
func (l *StandardLogger) WithError(err error) *logrus.Entry {
	return l.logger.WithError(err)
}

// LogStartup logs application startup information
func (l *StandardLogger) LogStartup(serviceName string, version string, port int) {
	l.logger.WithFields(logrus.Fields{
		"service": serviceName,
		"version": version,
		"port":    port,
		"event":   "startup",
	}).Info("Application startup")
}

// LogShutdown logs application shutdown information
func (l *StandardLogger) LogShutdown(serviceName string, reason string) {
	l.logger.WithFields(logrus.Fields{
		"service": serviceName,
		"reason":  reason,
		"event":   "shutdown",
	}).Info("Application shutdown")
}

// LogCacheOperation logs cache operations in a standardized format
func (l *StandardLogger) LogCacheOperation(operation string, key string, hit bool, duration int64) {
	l.logger.WithFields(logrus.Fields{
		"operation":   operation,
		"key":         key,
		"hit":         hit,
		"duration_ms": duration,
		"event":       "cache",
	}).Debug("Cache operation")
}

// LogDatasetLoad logs a completed dataset load
func (l *StandardLogger) LogDatasetLoad(source string, rows int, symbols int, duration int64) {
	l.logger.WithFields(logrus.Fields{
		"source":      source,
		"rows":        rows,
		"symbols":     symbols,
		"duration_ms": duration,
		"event":       "dataset",
	}).Info("Dataset loaded")
}

// LogAPIRequest logs API requests in a standardized format
func (l *StandardLogger) LogAPIRequest(method string, path string, statusCode int, duration int64, requestID string) {
	entry := l.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      statusCode,
		"duration_ms": duration,
		"request_id":  requestID,
		"event":       "api",
	})
	switch {
	case statusCode >= 500:
		entry.Error("API request")
	case statusCode >= 400:
		entry.Warn("API request")
	default:
		entry.Info("API request")
	}
}

// Logger returns the underlying *logrus.Logger
func (l *StandardLogger) Logger() *logrus.Logger {
	return l.logger
}

// ParseLogrusLevel converts string level to logrus.Level
func ParseLogrusLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
