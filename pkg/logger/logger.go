package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NOOPLogger discards everything. Used as the default and in tests.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a sugared logger. APP_ENV=local gets a human readable console
// encoder, every other environment logs JSON.
func New(env, level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	l, err := newConfig(env, lvl).Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Bootstrap installs a JSON info logger as the zap global and returns it.
// Commands use it for failures that happen before the configured logger
// exists.
func Bootstrap() *zap.SugaredLogger {
	l := zap.Must(newConfig("", zap.NewAtomicLevelAt(zapcore.InfoLevel)).Build())
	zap.ReplaceGlobals(l)
	return l.Sugar()
}

func newConfig(env string, lvl zap.AtomicLevel) zap.Config {
	cfg := zap.NewProductionConfig()
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}
