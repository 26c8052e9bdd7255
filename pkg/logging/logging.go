// Package logging builds the zap loggers used across path2md.
package logging

import (
	"go.uber.org/zap"
)

// Setup builds a logger for the run. Debug mode switches to the development
// config with human-readable output; otherwise the production config is used.
// The logger is returned rather than installed globally so that the pipeline
// can receive it explicitly.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}
	return logger, nil
}
