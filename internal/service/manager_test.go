package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/torchlight-games/emberfall/internal/engine"
	"github.com/torchlight-games/emberfall/internal/game"
)

// stubSource makes combat deterministic: every check lands on the midpoint
// (hit, no crit) and every range rolls its minimum.
type stubSource struct{}

func (stubSource) Float64() float64       { return 0.5 }
func (stubSource) Between(min, _ int) int { return min }

type fakeRepo struct {
	templates []game.Monster
	parties   map[uint]*game.Party
	records   map[string]*game.EncounterRecord

	partyUpdates  int
	recordUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		parties: make(map[uint]*game.Party),
		records: make(map[string]*game.EncounterRecord),
	}
}

func (r *fakeRepo) GetMonsterTemplates() ([]game.Monster, error) {
	return r.templates, nil
}

func (r *fakeRepo) GetMonsterTemplatesByNames(names []string) ([]game.Monster, error) {
	var out []game.Monster
	for _, t := range r.templates {
		for _, n := range names {
			if strings.EqualFold(t.Name, n) {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateParty(p *game.Party) error {
	r.parties[p.ID] = p
	return nil
}

func (r *fakeRepo) GetParties() ([]game.Party, error) {
	var out []game.Party
	for _, p := range r.parties {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) GetPartyByID(id uint) (*game.Party, error) {
	p, ok := r.parties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepo) UpdateParty(p *game.Party) error {
	r.partyUpdates++
	r.parties[p.ID] = p
	return nil
}

func (r *fakeRepo) CreateEncounterRecord(rec *game.EncounterRecord) error {
	r.records[rec.Code] = rec
	return nil
}

func (r *fakeRepo) GetEncounterRecordByCode(code string) (*game.EncounterRecord, error) {
	rec, ok := r.records[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeRepo) UpdateEncounterRecord(rec *game.EncounterRecord) error {
	r.recordUpdates++
	r.records[rec.Code] = rec
	return nil
}

func (r *fakeRepo) FindIdleEncounters(now time.Time) ([]game.EncounterRecord, error) {
	var out []game.EncounterRecord
	for _, rec := range r.records {
		if rec.Status == game.EncounterStatusActive && !rec.ActionDeadline.After(now) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func testParty(id uint) *game.Party {
	return &game.Party{
		Model: gorm.Model{ID: id},
		Name:  "The Lanterns",
		Members: []game.Character{
			{
				Name:             "Aldric",
				CurrentHP:        30,
				MaxHP:            30,
				BaseStrength:     15,
				BaseAgility:      12,
				BaseIntelligence: 8,
				BaseVitality:     10,
			},
		},
	}
}

func goblinTemplate(hp int) game.Monster {
	return game.Monster{Name: "Goblin", MaxHP: hp, Attack: 8, Defense: 5, AgilityV: 8, Intellect: 4}
}

func newTestManager(repo *fakeRepo) *Manager {
	return NewManager(ManagerConfig{
		Repo:      repo,
		NewSource: func() engine.Source { return stubSource{} },
	})
}

func TestStartEncounterRunsToFirstDecision(t *testing.T) {
	repo := newFakeRepo()
	repo.parties[1] = testParty(1)
	repo.templates = []game.Monster{goblinTemplate(30)}
	m := newTestManager(repo)

	view, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}
	if view.Code == "" || len(view.Code) != 8 {
		t.Fatalf("expected an 8-character code, got %q", view.Code)
	}
	if view.Phase != string(engine.PhasePlayerTurn) {
		t.Errorf("expected phase player_turn, got %q", view.Phase)
	}
	if !view.AwaitingAction {
		t.Error("expected the encounter to be awaiting a player action")
	}
	if view.CurrentActorID == "" {
		t.Error("expected a current actor")
	}

	rec, ok := repo.records[view.Code]
	if !ok {
		t.Fatal("expected a persisted encounter record")
	}
	if rec.Status != game.EncounterStatusActive {
		t.Errorf("expected an active record, got %q", rec.Status)
	}
	if rec.ActionDeadline.IsZero() {
		t.Error("expected an action deadline on the active record")
	}
}

func TestStartEncounterErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.templates = []game.Monster{goblinTemplate(30)}
	m := newTestManager(repo)

	if _, err := m.StartEncounter(42, []string{"goblin"}); !errors.Is(err, ErrPartyNotFound) {
		t.Errorf("expected ErrPartyNotFound, got %v", err)
	}

	dead := testParty(2)
	dead.Members[0].CurrentHP = 0
	repo.parties[2] = dead
	if _, err := m.StartEncounter(2, []string{"goblin"}); !errors.Is(err, ErrPartyDefeated) {
		t.Errorf("expected ErrPartyDefeated, got %v", err)
	}

	repo.parties[1] = testParty(1)
	if _, err := m.StartEncounter(1, []string{"dragon"}); !errors.Is(err, ErrUnknownMonster) {
		t.Errorf("expected ErrUnknownMonster, got %v", err)
	}
	if _, err := m.StartEncounter(1, nil); !errors.Is(err, ErrUnknownMonster) {
		t.Errorf("expected ErrUnknownMonster for an empty roster, got %v", err)
	}
}

func TestSubmitActionToVictory(t *testing.T) {
	repo := newFakeRepo()
	party := testParty(1)
	repo.parties[1] = party
	// 10 HP falls to the first hit (15 attack + 1 variance - 5 defense).
	repo.templates = []game.Monster{goblinTemplate(10)}
	m := newTestManager(repo)

	started, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}

	view, err := m.SubmitAction(started.Code, ActionRequest{Kind: "attack"})
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if view.Phase != string(engine.PhaseVictory) {
		t.Fatalf("expected victory, got %q", view.Phase)
	}
	if view.Status != game.EncounterStatusFinished {
		t.Errorf("expected a finished status, got %q", view.Status)
	}
	if view.GoldAwarded != game.DefaultMonsterGold {
		t.Errorf("expected %d gold awarded, got %d", game.DefaultMonsterGold, view.GoldAwarded)
	}
	if party.Gold != game.DefaultMonsterGold {
		t.Errorf("expected the purse to hold %d gold, got %d", game.DefaultMonsterGold, party.Gold)
	}
	if party.Members[0].Experience != game.DefaultMonsterExperience {
		t.Errorf("expected %d experience, got %d", game.DefaultMonsterExperience, party.Members[0].Experience)
	}
	if repo.partyUpdates == 0 {
		t.Error("expected the party to be persisted after the turn")
	}

	rec := repo.records[started.Code]
	if rec.Status != game.EncounterStatusFinished || rec.Outcome != string(engine.PhaseVictory) {
		t.Errorf("expected a finished victory record, got status %q outcome %q", rec.Status, rec.Outcome)
	}

	// The session is gone; a further action hits the durable record.
	if _, err := m.SubmitAction(started.Code, ActionRequest{Kind: "attack"}); !errors.Is(err, ErrEncounterFinished) {
		t.Errorf("expected ErrEncounterFinished, got %v", err)
	}
}

func TestSubmitActionErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.parties[1] = testParty(1)
	repo.templates = []game.Monster{goblinTemplate(30)}
	m := newTestManager(repo)

	if _, err := m.SubmitAction("NOPE1234", ActionRequest{Kind: "attack"}); !errors.Is(err, ErrEncounterNotFound) {
		t.Errorf("expected ErrEncounterNotFound, got %v", err)
	}

	started, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}
	if _, err := m.SubmitAction(started.Code, ActionRequest{Kind: "dance"}); !errors.Is(err, ErrUnknownActionKind) {
		t.Errorf("expected ErrUnknownActionKind, got %v", err)
	}

	// The rejected decision must leave the turn open.
	view, err := m.GetEncounter(started.Code)
	if err != nil {
		t.Fatalf("GetEncounter: %v", err)
	}
	if !view.AwaitingAction {
		t.Error("expected the encounter to still be awaiting an action")
	}
}

func TestSubmitActionTracksEscapeAttempts(t *testing.T) {
	repo := newFakeRepo()
	repo.parties[1] = testParty(1)
	repo.templates = []game.Monster{goblinTemplate(30)}
	m := newTestManager(repo)

	started, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}

	// Aldric (agility 12) against a goblin: 0.56 flee chance, and the stub
	// source rolls 0.5, so the escape lands.
	view, err := m.SubmitAction(started.Code, ActionRequest{Kind: "flee"})
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if view.Phase != string(engine.PhaseFled) {
		t.Fatalf("expected fled, got %q", view.Phase)
	}
	if !view.FleeAttempted {
		t.Error("expected the flee attempt to be recorded")
	}
	if view.GoldAwarded != 0 || view.ExperienceAwarded != 0 {
		t.Error("fleeing must not pay rewards")
	}
}

func TestIllegalFleeLeavesAttemptUnrecorded(t *testing.T) {
	repo := newFakeRepo()
	party := testParty(1)
	party.Members[0].Ledger().Apply(game.EffectParalyzed, 3, 1, "shock")
	repo.parties[1] = party
	repo.templates = []game.Monster{goblinTemplate(30)}
	m := newTestManager(repo)

	started, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}

	// Paralysis makes the escape attempt illegal; the turn is wasted but no
	// attempt is counted against the party.
	view, err := m.SubmitAction(started.Code, ActionRequest{Kind: "flee"})
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if view.FleeAttempted {
		t.Error("an illegal flee must not set the attempt flag")
	}
	if !view.AwaitingAction {
		t.Error("expected the fight to continue after the wasted turn")
	}
	if rec := repo.records[started.Code]; rec.FleeAttempted {
		t.Error("the persisted record must not carry the attempt either")
	}
}

func TestGetEncounterFinishedFallsBackToRecord(t *testing.T) {
	repo := newFakeRepo()
	repo.parties[1] = testParty(1)
	repo.templates = []game.Monster{goblinTemplate(10)}
	m := newTestManager(repo)

	started, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}
	if _, err := m.SubmitAction(started.Code, ActionRequest{Kind: "attack"}); err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}

	view, err := m.GetEncounter(started.Code)
	if err != nil {
		t.Fatalf("GetEncounter: %v", err)
	}
	if view.Outcome != string(engine.PhaseVictory) {
		t.Errorf("expected a victory outcome from the record, got %q", view.Outcome)
	}
	if len(view.Log) == 0 {
		t.Error("expected the combat log to survive in the record")
	}

	if _, err := m.GetEncounter("MISSING1"); !errors.Is(err, ErrEncounterNotFound) {
		t.Errorf("expected ErrEncounterNotFound, got %v", err)
	}
}

func TestAbortEncounter(t *testing.T) {
	repo := newFakeRepo()
	party := testParty(1)
	party.Gold = 40
	repo.parties[1] = party
	repo.templates = []game.Monster{goblinTemplate(30)}
	m := newTestManager(repo)

	started, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}

	view, err := m.AbortEncounter(started.Code)
	if err != nil {
		t.Fatalf("AbortEncounter: %v", err)
	}
	if view.Phase != string(engine.PhaseFled) || !view.Aborted {
		t.Errorf("expected an aborted fled encounter, got phase %q aborted %v", view.Phase, view.Aborted)
	}
	if party.Gold != 40 {
		t.Errorf("aborting must not touch the purse, got %d gold", party.Gold)
	}

	if _, err := m.AbortEncounter(started.Code); !errors.Is(err, ErrEncounterFinished) {
		t.Errorf("expected ErrEncounterFinished, got %v", err)
	}
}

func TestIdleEncountersAreAborted(t *testing.T) {
	repo := newFakeRepo()
	repo.parties[1] = testParty(1)
	repo.templates = []game.Monster{goblinTemplate(30)}
	m := newTestManager(repo)

	started, err := m.StartEncounter(1, []string{"goblin"})
	if err != nil {
		t.Fatalf("StartEncounter: %v", err)
	}

	// Before the deadline nothing happens.
	if err := m.HandleIdleEncounters(time.Now()); err != nil {
		t.Fatalf("HandleIdleEncounters: %v", err)
	}
	if repo.records[started.Code].Status != game.EncounterStatusActive {
		t.Fatal("an encounter within its deadline must stay active")
	}

	if err := m.HandleIdleEncounters(time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("HandleIdleEncounters: %v", err)
	}
	rec := repo.records[started.Code]
	if rec.Status != game.EncounterStatusFinished || !rec.Aborted {
		t.Errorf("expected an aborted record, got status %q aborted %v", rec.Status, rec.Aborted)
	}
	if _, err := m.SubmitAction(started.Code, ActionRequest{Kind: "attack"}); !errors.Is(err, ErrEncounterFinished) {
		t.Errorf("expected ErrEncounterFinished after the idle abort, got %v", err)
	}
}

func TestIdleOrphanedRecordIsClosed(t *testing.T) {
	repo := newFakeRepo()
	repo.records["ORPHAN01"] = &game.EncounterRecord{
		Code:           "ORPHAN01",
		Status:         game.EncounterStatusActive,
		Phase:          string(engine.PhasePlayerTurn),
		ActionDeadline: time.Now().Add(-time.Minute),
	}
	m := newTestManager(repo)

	if err := m.HandleIdleEncounters(time.Now()); err != nil {
		t.Fatalf("HandleIdleEncounters: %v", err)
	}

	rec := repo.records["ORPHAN01"]
	if rec.Status != game.EncounterStatusFinished {
		t.Errorf("expected the orphaned record to be closed, got %q", rec.Status)
	}
	if rec.Outcome != string(engine.PhaseFled) || !rec.Aborted {
		t.Errorf("expected a fled aborted outcome, got outcome %q aborted %v", rec.Outcome, rec.Aborted)
	}
}
