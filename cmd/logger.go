package cmd

import (
	"go.uber.org/zap"
)

func newLogger(level string) (*zap.Logger, error) {
	switch level {
	case "debug":
		return zap.NewDevelopment()
	default:
		cfg := zap.NewProductionConfig()
		if lvl, err := zap.ParseAtomicLevel(level); err == nil {
			cfg.Level = lvl
		}
		return cfg.Build()
	}
}
