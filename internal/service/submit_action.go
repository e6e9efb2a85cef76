package service

import (
	"errors"

	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/engine"
	"github.com/torchlight-games/emberfall/internal/logging"
)

// SubmitAction routes a player decision into the encounter machine, pumps it
// until the next suspension point and persists the result. Illegal actions
// resolve as failed results inside the machine; only protocol-level problems
// (unknown encounter, wrong phase, unknown action kind) surface as errors.
func (m *Manager) SubmitAction(code string, req ActionRequest) (*EncounterView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookupActive(code)
	if err != nil {
		return nil, err
	}
	if !s.enc.AwaitingPlayerAction() {
		return nil, ErrNotAwaitingAction
	}

	// Escape attempts are recorded by the machine after resolution, so an
	// illegal submission (a paralyzed runner, a confused negotiator) leaves
	// no attempt flag behind.
	if err := s.enc.SubmitPlayerAction(req.decision()); err != nil {
		if errors.Is(err, engine.ErrUnknownAction) {
			return nil, ErrUnknownActionKind
		}
		if errors.Is(err, engine.ErrNotAwaiting) {
			return nil, ErrNotAwaitingAction
		}
		return nil, err
	}

	pump(s.enc)
	m.syncRecord(s)
	if err := m.persist(s); err != nil {
		logging.Error("failed to persist encounter", err, logging.Fields{
			constants.LogFieldEncounterCode: code,
		})
		return nil, err
	}

	logging.Debug("action resolved", logging.Fields{
		constants.LogFieldEncounterCode: code,
		constants.LogFieldActionKind:    req.Kind,
		constants.LogFieldPhase:         string(s.enc.Phase()),
	})
	view := liveView(s)
	m.closeIfFinished(s)
	return view, nil
}

// lookupActive finds the live session for code, distinguishing finished
// encounters from unknown ones.
func (m *Manager) lookupActive(code string) (*session, error) {
	if s, ok := m.active[code]; ok {
		return s, nil
	}
	rec, err := m.repo.GetEncounterRecordByCode(code)
	if err != nil || rec == nil {
		return nil, ErrEncounterNotFound
	}
	return nil, ErrEncounterFinished
}
