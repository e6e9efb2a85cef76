package storage

import (
	"strings"
	"time"

	"github.com/torchlight-games/emberfall/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// contentByName maps lowercase monster name -> content definition.
	contentByName map[string]game.Monster
}

func NewSQLiteRepository(db *gorm.DB, bestiary []game.Monster) Repository {
	m := make(map[string]game.Monster, len(bestiary))
	for _, t := range bestiary {
		m[strings.ToLower(t.Name)] = t
	}
	return &sqliteRepository{db: db, contentByName: m}
}

// overrideFromContent copies stats from the content definition onto the
// stored row. The content file is the single source of truth for monster
// stats; the database only pins identity.
func (r *sqliteRepository) overrideFromContent(m *game.Monster) {
	if r.contentByName == nil {
		return
	}
	conf, ok := r.contentByName[strings.ToLower(m.Name)]
	if !ok {
		return
	}
	m.MaxHP = conf.MaxHP
	m.MaxMP = conf.MaxMP
	m.Attack = conf.Attack
	m.Defense = conf.Defense
	m.AgilityV = conf.AgilityV
	m.Intellect = conf.Intellect
	m.ExperienceReward = conf.ExperienceReward
	m.GoldReward = conf.GoldReward
}

func (r *sqliteRepository) GetMonsterTemplates() ([]game.Monster, error) {
	var monsters []game.Monster
	if err := r.db.Order("name").Find(&monsters).Error; err != nil {
		return nil, err
	}
	for i := range monsters {
		r.overrideFromContent(&monsters[i])
	}
	return monsters, nil
}

func (r *sqliteRepository) GetMonsterTemplatesByNames(names []string) ([]game.Monster, error) {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	var monsters []game.Monster
	if err := r.db.Where("lower(name) IN ?", lowered).Find(&monsters).Error; err != nil {
		return nil, err
	}
	for i := range monsters {
		r.overrideFromContent(&monsters[i])
	}
	return monsters, nil
}

func (r *sqliteRepository) CreateParty(p *game.Party) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetParties() ([]game.Party, error) {
	var parties []game.Party
	if err := r.db.Preload("Members.Items").Order("created_at desc").Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

func (r *sqliteRepository) GetPartyByID(id uint) (*game.Party, error) {
	var p game.Party
	if err := r.db.Preload("Members.Items").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) UpdateParty(p *game.Party) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *sqliteRepository) CreateEncounterRecord(rec *game.EncounterRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetEncounterRecordByCode(code string) (*game.EncounterRecord, error) {
	var rec game.EncounterRecord
	if err := r.db.Where("code = ?", code).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) UpdateEncounterRecord(rec *game.EncounterRecord) error {
	return r.db.Save(rec).Error
}

func (r *sqliteRepository) FindIdleEncounters(now time.Time) ([]game.EncounterRecord, error) {
	var recs []game.EncounterRecord
	err := r.db.Where("status = ? AND action_deadline <= ?", game.EncounterStatusActive, now).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
