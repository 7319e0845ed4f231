package logger

import (
	"github.com/aleister1102/companywatch/internal/config"
	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// FilePath returns where file output is written, empty when file logging is off
func (l *Logger) FilePath() string {
	if !l.config.EnableFile {
		return ""
	}
	return BuildLogPath(l.config)
}

// New creates a new logger instance
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}

// NewWithEntityID creates a logger whose file output is kept per tracked company
func NewWithEntityID(cfg config.LogConfig, entityID string) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().
		WithConfig(cfg).
		WithEntityID(entityID).
		Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
