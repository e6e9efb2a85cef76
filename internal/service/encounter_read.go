package service

import (
	"github.com/torchlight-games/emberfall/internal/dedupe"
	"github.com/torchlight-games/emberfall/internal/game"
)

// GetEncounter returns the current snapshot for code: the live machine when
// the encounter is active, the durable record otherwise. Record lookups are
// deduplicated so a burst of polls produces one database read.
func (m *Manager) GetEncounter(code string) (*EncounterView, error) {
	m.mu.Lock()
	if s, ok := m.active[code]; ok {
		view := liveView(s)
		m.mu.Unlock()
		return view, nil
	}
	m.mu.Unlock()

	v, err, _ := dedupe.EncounterGroup.Do(code, func() (interface{}, error) {
		rec, err := m.repo.GetEncounterRecordByCode(code)
		if err != nil || rec == nil {
			return nil, ErrEncounterNotFound
		}
		return recordView(rec), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*EncounterView), nil
}

// AbortEncounter force-ends an active encounter as fled, without rewards.
func (m *Manager) AbortEncounter(code string) (*EncounterView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookupActive(code)
	if err != nil {
		return nil, err
	}
	s.enc.Abort()
	m.syncRecord(s)
	if err := m.persist(s); err != nil {
		return nil, err
	}
	view := liveView(s)
	m.closeIfFinished(s)
	return view, nil
}

// GetBestiary returns the monster templates available for encounters.
func (m *Manager) GetBestiary() ([]game.Monster, error) {
	return m.repo.GetMonsterTemplates()
}

// CreateParty persists a new party.
func (m *Manager) CreateParty(p *game.Party) error {
	return m.repo.CreateParty(p)
}

// GetParties lists stored parties.
func (m *Manager) GetParties() ([]game.Party, error) {
	return m.repo.GetParties()
}

// GetParty returns one party by id.
func (m *Manager) GetParty(id uint) (*game.Party, error) {
	p, err := m.repo.GetPartyByID(id)
	if err != nil {
		return nil, ErrPartyNotFound
	}
	return p, nil
}
