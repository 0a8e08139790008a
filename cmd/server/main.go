package main

import (
	app "ads-rule-builder/internal/app/server"
	"ads-rule-builder/internal/config"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.Server.LogLevel)
	app.Run(cfg)
}
