package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/torchlight-games/emberfall/internal/engine"
	"github.com/torchlight-games/emberfall/internal/events"
	"github.com/torchlight-games/emberfall/internal/game"
	"github.com/torchlight-games/emberfall/internal/storage"
)

var (
	ErrPartyNotFound     = errors.New("party not found")
	ErrPartyDefeated     = errors.New("party has no living members")
	ErrUnknownMonster    = errors.New("unknown monster template")
	ErrEncounterNotFound = errors.New("encounter not found")
	ErrEncounterFinished = errors.New("encounter already finished")
	ErrNotAwaitingAction = errors.New("encounter is not awaiting a player action")
	ErrUnknownActionKind = errors.New("unknown action kind")
)

// session is one live encounter: the in-memory machine plus the durable
// record refreshed after every resolved turn.
type session struct {
	code     string
	party    *game.Party
	monsters []*game.Monster
	enc      *engine.Encounter
	record   *game.EncounterRecord
}

// Manager owns every active encounter. All encounter mutation goes through
// its mutex; the engine itself is single-threaded by contract.
type Manager struct {
	mu sync.Mutex

	repo          storage.Repository
	spells        game.SpellBook
	items         game.ItemCatalog
	table         *game.AdvancementTable
	notifier      events.Notifier
	actionTimeout time.Duration

	// newSource is swapped in tests for a deterministic random source.
	newSource func() engine.Source

	active map[string]*session
}

// ManagerConfig assembles a Manager.
type ManagerConfig struct {
	Repo          storage.Repository
	Spells        game.SpellBook
	Items         game.ItemCatalog
	Table         *game.AdvancementTable
	Notifier      events.Notifier
	ActionTimeout time.Duration
	// NewSource overrides the random source factory; nil means wall-clock
	// seeded randomness.
	NewSource func() engine.Source
}

func NewManager(cfg ManagerConfig) *Manager {
	spells := cfg.Spells
	if spells == nil {
		spells = game.DefaultSpellBook()
	}
	items := cfg.Items
	if items == nil {
		items = game.DefaultItemCatalog()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = events.LogNotifier{}
	}
	timeout := cfg.ActionTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	newSource := cfg.NewSource
	if newSource == nil {
		newSource = engine.SystemSource
	}
	return &Manager{
		repo:          cfg.Repo,
		spells:        spells,
		items:         items,
		table:         cfg.Table,
		notifier:      notifier,
		actionTimeout: timeout,
		newSource:     newSource,
		active:        make(map[string]*session),
	}
}

// newEncounterCode returns a short join code for a new encounter.
func newEncounterCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// pump drives the machine until it suspends on player input or terminates.
func pump(enc *engine.Encounter) {
	for enc.IsCombatActive() && !enc.AwaitingPlayerAction() {
		enc.Update()
	}
}

// syncRecord refreshes the durable record from the live machine.
func (m *Manager) syncRecord(s *session) {
	enc := s.enc
	rec := s.record
	rec.Phase = string(enc.Phase())
	rec.TurnNumber = enc.Turn()
	rec.CombatLog = strings.Join(enc.Log(), "\n")
	rec.ExperienceAwarded = enc.ExperienceAwarded()
	rec.GoldAwarded = enc.GoldAwarded()
	rec.Aborted = enc.Aborted()
	rec.FleeAttempted = enc.FleeAttempted()
	rec.NegotiateAttempted = enc.NegotiateAttempted()
	if enc.IsCombatActive() {
		rec.Status = game.EncounterStatusActive
		rec.ActionDeadline = time.Now().Add(m.actionTimeout)
	} else {
		rec.Status = game.EncounterStatusFinished
		rec.Outcome = string(enc.Phase())
		rec.ActionDeadline = time.Time{}
	}
}

// persist writes the record and party back. Persistence failures are
// returned to the caller but the in-memory session already moved on; the
// next successful persist catches it up.
func (m *Manager) persist(s *session) error {
	if err := m.repo.UpdateEncounterRecord(s.record); err != nil {
		return err
	}
	return m.repo.UpdateParty(s.party)
}

// closeIfFinished drops a terminal session from the active map.
func (m *Manager) closeIfFinished(s *session) {
	if !s.enc.IsCombatActive() {
		delete(m.active, s.code)
	}
}

// observeLedger wires a combatant's ledger into the notification bus so
// every apply/remove/expiry is published with the freshly derived condition.
func (m *Manager) observeLedger(c game.Combatant) {
	c.Ledger().SetObserver(func(kind game.EffectKind, applied bool) {
		events.Publish(m.notifier, events.StatusChange{
			CombatantID: c.CombatantID(),
			Kind:        kind,
			Applied:     applied,
			Condition:   c.RefreshCondition(),
		})
	})
}
