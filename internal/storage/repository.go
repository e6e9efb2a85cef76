package storage

import (
	"time"

	"github.com/torchlight-games/emberfall/internal/game"
)

type Repository interface {
	// GetMonsterTemplates returns the bestiary, with stats overridden from
	// the content file (the content file is the source of truth).
	GetMonsterTemplates() ([]game.Monster, error)
	// GetMonsterTemplatesByNames resolves templates by name
	// (case-insensitive). Unknown names are simply absent from the result.
	GetMonsterTemplatesByNames(names []string) ([]game.Monster, error)

	CreateParty(p *game.Party) error
	GetParties() ([]game.Party, error)
	GetPartyByID(id uint) (*game.Party, error)
	UpdateParty(p *game.Party) error

	CreateEncounterRecord(rec *game.EncounterRecord) error
	GetEncounterRecordByCode(code string) (*game.EncounterRecord, error)
	UpdateEncounterRecord(rec *game.EncounterRecord) error
	// FindIdleEncounters returns active encounters whose action deadline is
	// at or before the provided time. The caller decides how to resolve
	// them (for example, aborting them due to inactivity).
	FindIdleEncounters(now time.Time) ([]game.EncounterRecord, error)
}
