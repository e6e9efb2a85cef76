package service

import (
	"strings"

	"github.com/torchlight-games/emberfall/internal/engine"
	"github.com/torchlight-games/emberfall/internal/game"
)

// CombatantView is the wire snapshot of one combatant.
type CombatantView struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	CurrentHP int                  `json:"current_hp"`
	MaxHP     int                  `json:"max_hp"`
	CurrentMP int                  `json:"current_mp"`
	MaxMP     int                  `json:"max_mp"`
	Condition game.CoarseCondition `json:"condition"`
	Effects   []game.StatusEffect  `json:"effects"`
	Alive     bool                 `json:"alive"`
}

// EncounterView is the wire snapshot of an encounter, either live (from the
// in-memory machine) or historical (from the durable record).
type EncounterView struct {
	Code               string          `json:"code"`
	PartyID            uint            `json:"party_id"`
	Status             string          `json:"status"`
	Phase              string          `json:"phase"`
	Outcome            string          `json:"outcome,omitempty"`
	Turn               int             `json:"turn"`
	AwaitingAction     bool            `json:"awaiting_action"`
	CurrentActorID     string          `json:"current_actor_id,omitempty"`
	Members            []CombatantView `json:"members,omitempty"`
	Monsters           []CombatantView `json:"monsters,omitempty"`
	Log                []string        `json:"log,omitempty"`
	ExperienceAwarded  int             `json:"experience_awarded"`
	GoldAwarded        int             `json:"gold_awarded"`
	Aborted            bool            `json:"aborted"`
	FleeAttempted      bool            `json:"flee_attempted"`
	NegotiateAttempted bool            `json:"negotiate_attempted"`
}

func combatantView(c game.Combatant) CombatantView {
	hp, maxHP := c.HitPoints()
	mp, maxMP := c.ManaPoints()
	return CombatantView{
		ID:        c.CombatantID(),
		Name:      c.DisplayName(),
		CurrentHP: hp,
		MaxHP:     maxHP,
		CurrentMP: mp,
		MaxMP:     maxMP,
		Condition: c.RefreshCondition(),
		Effects:   c.Ledger().All(),
		Alive:     c.IsAlive(),
	}
}

// liveView snapshots a running session.
func liveView(s *session) *EncounterView {
	enc := s.enc
	view := &EncounterView{
		Code:               s.code,
		PartyID:            s.record.PartyID,
		Status:             s.record.Status,
		Phase:              string(enc.Phase()),
		Outcome:            s.record.Outcome,
		Turn:               enc.Turn(),
		AwaitingAction:     enc.AwaitingPlayerAction(),
		Log:                enc.Log(),
		ExperienceAwarded:  enc.ExperienceAwarded(),
		GoldAwarded:        enc.GoldAwarded(),
		Aborted:            enc.Aborted(),
		FleeAttempted:      s.record.FleeAttempted,
		NegotiateAttempted: s.record.NegotiateAttempted,
	}
	if actor := enc.CurrentActor(); actor != nil {
		view.CurrentActorID = actor.CombatantID()
	}
	for _, c := range enc.Members() {
		view.Members = append(view.Members, combatantView(c))
	}
	for _, c := range enc.Monsters() {
		view.Monsters = append(view.Monsters, combatantView(c))
	}
	return view
}

// recordView snapshots a finished encounter from its durable record.
func recordView(rec *game.EncounterRecord) *EncounterView {
	return &EncounterView{
		Code:               rec.Code,
		PartyID:            rec.PartyID,
		Status:             rec.Status,
		Phase:              rec.Phase,
		Outcome:            rec.Outcome,
		Turn:               rec.TurnNumber,
		ExperienceAwarded:  rec.ExperienceAwarded,
		GoldAwarded:        rec.GoldAwarded,
		Aborted:            rec.Aborted,
		FleeAttempted:      rec.FleeAttempted,
		NegotiateAttempted: rec.NegotiateAttempted,
		Log:                splitLog(rec.CombatLog),
	}
}

func splitLog(log string) []string {
	if log == "" {
		return nil
	}
	return strings.Split(log, "\n")
}

// ActionRequest is a player decision submitted for the current turn.
type ActionRequest struct {
	Kind     string            `json:"kind"`
	TargetID string            `json:"target_id"`
	Params   map[string]string `json:"params"`
}

func (r ActionRequest) decision() engine.PlayerDecision {
	return engine.PlayerDecision{
		Kind:     engine.ActionKind(r.Kind),
		TargetID: r.TargetID,
		Params:   r.Params,
	}
}
