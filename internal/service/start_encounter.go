package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/engine"
	"github.com/torchlight-games/emberfall/internal/game"
	"github.com/torchlight-games/emberfall/internal/logging"
)

// StartEncounter assembles a combat encounter between the stored party and
// the named monsters, validates the roster and runs the machine up to the
// first player decision. A roster that cannot start is a hard error and
// nothing is persisted.
func (m *Manager) StartEncounter(partyID uint, monsterNames []string) (*EncounterView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	party, err := m.repo.GetPartyByID(partyID)
	if err != nil {
		return nil, ErrPartyNotFound
	}
	if len(party.LivingMembers()) == 0 {
		return nil, ErrPartyDefeated
	}

	monsters, err := m.spawnMonsters(monsterNames)
	if err != nil {
		return nil, err
	}

	members := make([]game.Combatant, 0, len(party.Members))
	for i := range party.Members {
		ch := &party.Members[i]
		if ch.CharacterUUID == "" {
			ch.CharacterUUID = uuid.NewString()
		}
		ch.RefreshCondition()
		m.observeLedger(ch)
		members = append(members, ch)
	}
	enemies := make([]game.Combatant, 0, len(monsters))
	for _, mo := range monsters {
		m.observeLedger(mo)
		enemies = append(enemies, mo)
	}

	rng := m.newSource()
	enc := engine.NewEncounter(engine.EncounterConfig{
		Members:  members,
		Monsters: enemies,
		Purse:    party,
		Table:    m.table,
		Registry: engine.NewStrategyRegistry(rng, m.spells, m.items),
		Rng:      rng,
	})
	if err := enc.Start(); err != nil {
		return nil, fmt.Errorf("encounter setup: %w", err)
	}
	pump(enc)

	s := &session{
		code:     newEncounterCode(),
		party:    party,
		monsters: monsters,
		enc:      enc,
		record: &game.EncounterRecord{
			Code:    "",
			PartyID: party.ID,
			Status:  game.EncounterStatusActive,
		},
	}
	s.record.Code = s.code
	m.syncRecord(s)
	s.record.ActionDeadline = time.Now().Add(m.actionTimeout)
	if err := m.repo.CreateEncounterRecord(s.record); err != nil {
		return nil, err
	}
	m.active[s.code] = s
	m.closeIfFinished(s)

	logging.Info("encounter started", logging.Fields{
		constants.LogFieldEncounterCode: s.code,
		constants.LogFieldPartyID:       party.ID,
		constants.LogFieldPhase:         string(enc.Phase()),
	})
	return liveView(s), nil
}

// spawnMonsters instantiates live monsters from the named bestiary
// templates. Every name must resolve; duplicates spawn independent
// instances.
func (m *Manager) spawnMonsters(names []string) ([]*game.Monster, error) {
	if len(names) == 0 {
		return nil, ErrUnknownMonster
	}
	templates, err := m.repo.GetMonsterTemplatesByNames(names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]game.Monster, len(templates))
	for _, t := range templates {
		byName[strings.ToLower(t.Name)] = t
	}

	monsters := make([]*game.Monster, 0, len(names))
	for _, name := range names {
		t, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMonster, name)
		}
		inst := t
		inst.MonsterUUID = uuid.NewString()
		inst.CurrentHP = inst.MaxHP
		inst.CurrentMP = inst.MaxMP
		inst.RefreshCondition()
		monsters = append(monsters, &inst)
	}
	return monsters, nil
}
