// Package logging builds the zap logger shared by a session and its
// binaries.
package logging

import (
	"fmt"

	"github.com/plus3/arscene/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger from cfg. Encoding is "json" or "console".
func New(cfg config.Log) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoding := cfg.Encoding
	switch encoding {
	case "", "console":
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	case "json":
	default:
		return nil, fmt.Errorf("logging: unknown encoding %q", cfg.Encoding)
	}

	output := cfg.Output
	if len(output) == 0 {
		output = []string{"stderr"}
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      output,
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	return zapConfig.Build()
}

// Must is New for binaries that cannot run without a logger.
func Must(cfg config.Log) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return logger
}
