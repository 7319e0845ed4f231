package logger

import (
	"github.com/aleister1102/companywatch/internal/config"
	"github.com/rs/zerolog"
)

// ConfigConverter converts config.LogConfig to LoggerConfig
type ConfigConverter struct {
	levelParser  *LogLevelParser
	formatParser *LogFormatParser
}

// NewConfigConverter creates a new config converter
func NewConfigConverter() *ConfigConverter {
	return &ConfigConverter{
		levelParser:  NewLogLevelParser(),
		formatParser: NewLogFormatParser(),
	}
}

// ConvertConfig converts application config to logger config.
// An unparsable level falls back to info and is reported alongside the result.
func (cc *ConfigConverter) ConvertConfig(cfg config.LogConfig) (LoggerConfig, error) {
	out := DefaultLoggerConfig()
	out.Format = cc.formatParser.ParseFormat(cfg.LogFormat)
	out.EnableFile = cfg.LogFile != ""
	out.FilePath = cfg.LogFile
	out.MaxSizeMB = positiveOr(cfg.MaxLogSizeMB, config.DefaultMaxLogSizeMB)
	out.MaxBackups = positiveOr(cfg.MaxLogBackups, config.DefaultMaxLogBackups)

	level, err := cc.levelParser.ParseLevel(cfg.LogLevel)
	if err != nil {
		out.Level = zerolog.InfoLevel
		return out, err
	}
	out.Level = level
	return out, nil
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
