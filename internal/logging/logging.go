// Package logging builds the zap logger used for diagnostics on stderr.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Config contains the logger inputs.
type Config struct {
	Level  string
	Format Format
}

// New creates a stderr logger and returns it with a runtime-adjustable level handle.
func New(cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := resolveLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	base := zap.NewProductionConfig()
	base.Level = level
	base.DisableStacktrace = true
	base.DisableCaller = true
	base.Sampling = nil
	base.OutputPaths = []string{"stderr"}
	base.ErrorOutputPaths = []string{"stderr"}
	base.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch cfg.Format {
	case FormatJSON:
		base.Encoding = string(FormatJSON)
	case FormatConsole, "":
		base.Encoding = string(FormatConsole)
		base.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		base.EncoderConfig.TimeKey = ""
	default:
		return nil, zap.AtomicLevel{}, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	built, err := base.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("building logger: %w", err)
	}

	return built, level, nil
}

func resolveLevel(name string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(name) == "" {
		return zap.NewAtomicLevelAt(zapcore.WarnLevel), nil
	}

	var parsed zapcore.Level
	if err := parsed.Set(name); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", name, err)
	}

	return zap.NewAtomicLevelAt(parsed), nil
}
