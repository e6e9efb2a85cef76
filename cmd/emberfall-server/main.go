package main

import (
	"github.com/joho/godotenv"

	"github.com/torchlight-games/emberfall/internal/api"
	"github.com/torchlight-games/emberfall/internal/config"
	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/logging"
	"github.com/torchlight-games/emberfall/internal/service"
)

func main() {
	// Local development convenience; the file is optional.
	_ = godotenv.Load()

	settings, err := config.LoadSettings()
	if err != nil {
		logging.Fatal("Invalid server settings", err, nil)
	}
	content := loadContentOrExit(settings.ContentPath)
	repo := createRepositoryOrExit(settings.DBPath, content)

	mgr := service.NewManager(service.ManagerConfig{
		Repo:          repo,
		Spells:        content.Spells,
		Items:         content.Items,
		ActionTimeout: settings.ActionTimeout,
	})

	stop := make(chan struct{})
	defer close(stop)
	go mgr.RunIdleScanner(settings.IdleTimeout, stop)

	router := api.NewRouter(api.NewHandler(mgr))

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: settings.Addr})
	if err := router.Run(settings.Addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
