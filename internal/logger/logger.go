// Package logger builds the zap logger from the logging section of the
// solrkit config and carries it through contexts.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/solrkit/internal/config"
)

// New builds the logger for env. prod starts from zap's production preset,
// local/dev/docker from the development preset with colored levels. The
// format and level in cfg override the preset; every entry carries the
// configured service name and env. opts are applied before those fields.
func New(env string, cfg config.LoggingConfig, opts ...zap.Option) (*zap.Logger, error) {
	var zc zap.Config
	switch env {
	case "prod":
		zc = zap.NewProductionConfig()
	case "local", "dev", "docker":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	switch cfg.Format {
	case "":
	case config.LogFormatJSON:
		zc.Encoding = cfg.Format
		zc.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case config.LogFormatConsole:
		zc.Encoding = cfg.Format
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	service := cfg.Service
	if service == "" {
		service = config.DefaultService
	}
	all := make([]zap.Option, 0, len(opts)+2)
	all = append(all, opts...)
	all = append(all,
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", service), zap.String("env", env)),
	)

	l, err := zc.Build(all...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
