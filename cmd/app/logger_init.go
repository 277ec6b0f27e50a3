package main

import (
	"github.com/inventoria-app/inventoria/internal/config"
	"github.com/inventoria-app/inventoria/internal/handler"
	"github.com/inventoria-app/inventoria/internal/logger"
)

const serviceName = "inventoria"

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Only include source info in dev
	addSource := cfg.Env == "dev" || cfg.Env == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		serviceName,
		handler.Version,
		cfg.Env,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
