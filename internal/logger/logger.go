// Package logger builds the zap logger used by the CLI.
package logger

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sentinel errors for logger construction.
var (
	ErrInvalidLevel    = errors.New("invalid log level")
	ErrInvalidEncoding = errors.New("invalid log encoding")
)

// Config holds logger settings. Zero values select the defaults.
type Config struct {
	Level      string // debug, info, warn, error (default info)
	Encoding   string // console or json (default console)
	OutputPath string // file path, "stdout" or "stderr" (default stderr)
}

// Levels lists the accepted level names.
var Levels = []string{"debug", "info", "warn", "error"}

// New creates a zap.Logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(cfg.Encoding)
	switch encoding {
	case "":
		encoding = "console"
	case "console", "json":
	default:
		return nil, fmt.Errorf("%w: %q (expected console or json)", ErrInvalidEncoding, cfg.Encoding)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	output := cfg.OutputPath
	if output == "" {
		output = "stderr"
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
	}

	l, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// ParseLevel maps a level name to its zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	for _, l := range Levels {
		if l == name {
			var level zapcore.Level
			if err := level.UnmarshalText([]byte(name)); err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
			}
			return level, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected %s)", ErrInvalidLevel, s, strings.Join(Levels, ", "))
}
