package main

import (
	"github.com/torchlight-games/emberfall/internal/config"
	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/logging"
	"github.com/torchlight-games/emberfall/internal/storage"
)

func loadContentOrExit(path string) *config.Content {
	content, err := config.LoadContent(path)
	if err != nil {
		logging.Fatal("Missing or invalid content file", err, logging.Fields{
			constants.LogFieldConfigPath: path,
			"hint":                       "provide a yaml file with a 'bestiary' list (name, max_hp, attack, defense, agility, intelligence, experience_value, gold_value) and optional 'spells' and 'items' lists",
		})
	}
	return content
}

func createRepositoryOrExit(dbPath string, content *config.Content) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, content.Bestiary)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, content.Bestiary)
}
