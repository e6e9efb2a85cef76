package service

import (
	"time"

	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/engine"
	"github.com/torchlight-games/emberfall/internal/game"
	"github.com/torchlight-games/emberfall/internal/logging"
)

// HandleIdleEncounters aborts every active encounter whose action deadline
// passed without a player decision. Live sessions are aborted through the
// machine; orphaned records (for example after a restart) are closed
// directly.
func (m *Manager) HandleIdleEncounters(now time.Time) error {
	recs, err := m.repo.FindIdleEncounters(now)
	if err != nil {
		return err
	}
	for i := range recs {
		m.handleIdleEncounter(&recs[i])
	}
	return nil
}

func (m *Manager) handleIdleEncounter(rec *game.EncounterRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logging.Info("aborting idle encounter", logging.Fields{
		constants.LogFieldEncounterCode: rec.Code,
		constants.LogFieldPhase:         rec.Phase,
	})

	if s, ok := m.active[rec.Code]; ok {
		s.enc.Abort()
		m.syncRecord(s)
		if err := m.persist(s); err != nil {
			logging.Error("failed to persist idle-aborted encounter", err, logging.Fields{
				constants.LogFieldEncounterCode: rec.Code,
			})
		}
		m.closeIfFinished(s)
		return
	}

	// No live machine; close the record as an abandoned flight.
	rec.Status = game.EncounterStatusFinished
	rec.Outcome = string(engine.PhaseFled)
	rec.Aborted = true
	rec.ActionDeadline = time.Time{}
	if err := m.repo.UpdateEncounterRecord(rec); err != nil {
		logging.Error("failed to close idle encounter record", err, logging.Fields{
			constants.LogFieldEncounterCode: rec.Code,
		})
	}
}

// RunIdleScanner aborts idle encounters on every tick until stop is closed.
func (m *Manager) RunIdleScanner(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if err := m.HandleIdleEncounters(now); err != nil {
				logging.Error("idle encounter scan failed", err, nil)
			}
		}
	}
}
