package storage

import (
	"github.com/torchlight-games/emberfall/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string, bestiaryFromContent []game.Monster) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Party{},
		&game.Character{},
		&game.ItemStack{},
		&game.Monster{},
		&game.EncounterRecord{},
	)
	if err != nil {
		return nil, err
	}

	seedBestiary(db, bestiaryFromContent)
	return db, nil
}

// seedBestiary inserts the configured monster templates on first run. Stats
// are still overridden from the content file on every read, so reseeding is
// only needed when entirely new monsters appear.
func seedBestiary(db *gorm.DB, bestiary []game.Monster) {
	var count int64
	db.Model(&game.Monster{}).Count(&count)
	if count > 0 {
		return
	}
	if len(bestiary) == 0 {
		return
	}
	monsters := make([]game.Monster, len(bestiary))
	copy(monsters, bestiary)
	db.Create(&monsters)
}
