package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/torchlight-games/emberfall/internal/game"
)

// Phase identifies where an encounter is in its lifecycle.
type Phase string

const (
	PhasePreparation Phase = "preparation"
	PhaseTurnOrder   Phase = "turn_order"
	PhasePlayerTurn  Phase = "player_turn"
	PhaseMonsterTurn Phase = "monster_turn"
	PhaseVictory     Phase = "victory"
	PhaseDefeat      Phase = "defeat"
	PhaseFled        Phase = "fled"
	PhaseNegotiated  Phase = "negotiated"
)

// Terminal reports whether the phase ends the encounter.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseVictory, PhaseDefeat, PhaseFled, PhaseNegotiated:
		return true
	}
	return false
}

var (
	ErrNoLivingMembers  = errors.New("encounter requires at least one living party member")
	ErrNoLivingMonsters = errors.New("encounter requires at least one living monster")
	ErrNotAwaiting      = errors.New("encounter is not awaiting a player action")
	ErrUnknownAction    = errors.New("unknown action kind")
)

// ExperienceGainer is satisfied by combatants that accumulate experience.
type ExperienceGainer interface {
	GainExperience(amount int, table *game.AdvancementTable)
}

// GoldPurse is the shared reward sink combat pays gold into.
type GoldPurse interface {
	GoldAmount() int
	AddGold(delta int)
}

// Bounty exposes the rewards a defeated enemy yields.
type Bounty interface {
	ExperienceValue() int
	GoldValue() int
}

// Narrator receives every combat message as it happens. The encounter also
// accumulates the full log itself, so a nil narrator loses nothing.
type Narrator interface {
	Narrate(message string)
}

// Transition is one recorded phase change.
type Transition struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
	Turn int   `json:"turn"`
}

// PlayerDecision is a player's chosen action for the current turn. TargetID
// selects a combatant by id; when empty, attacks default to the first living
// monster and everything else resolves against the actor.
type PlayerDecision struct {
	Kind     ActionKind
	TargetID string
	Params   map[string]string
}

// EncounterConfig assembles an encounter. Members and Monsters are the two
// sides; Purse receives gold rewards; Table is forwarded to experience grants.
type EncounterConfig struct {
	Members  []game.Combatant
	Monsters []game.Combatant
	Purse    GoldPurse
	Table    *game.AdvancementTable
	Registry *StrategyRegistry
	Rng      Source
	Narrator Narrator
}

// Encounter is the combat phase machine. It is single-threaded by contract:
// the owner serializes Update, SubmitPlayerAction and Abort. Update executes
// exactly one phase step; the owner pumps it until the encounter is awaiting
// a player action or has reached a terminal phase.
type Encounter struct {
	members  []game.Combatant
	monsters []game.Combatant
	purse    GoldPurse
	table    *game.AdvancementTable
	registry *StrategyRegistry
	rng      Source
	narrator Narrator

	phase  Phase
	states map[Phase]State

	queue   []game.Combatant
	turnIdx int
	turn    int

	awaiting bool
	pending  *PlayerDecision

	fled               bool
	negotiated         bool
	fleeAttempted      bool
	negotiateAttempted bool
	aborted            bool

	expAwarded  int
	goldAwarded int

	history []Transition
	log     []string
}

// NewEncounter builds an encounter in the preparation phase. Call Start to
// validate the roster and begin.
func NewEncounter(cfg EncounterConfig) *Encounter {
	rng := cfg.Rng
	if rng == nil {
		rng = SystemSource()
	}
	e := &Encounter{
		members:  cfg.Members,
		monsters: cfg.Monsters,
		purse:    cfg.Purse,
		table:    cfg.Table,
		registry: cfg.Registry,
		rng:      rng,
		narrator: cfg.Narrator,
		phase:    PhasePreparation,
		states:   defaultStates(),
	}
	return e
}

// OverrideState replaces the handler for the state's phase. This is the hook
// for customizing enter behavior or transition vetoes.
func (e *Encounter) OverrideState(s State) {
	e.states[s.StatePhase()] = s
}

// Start validates the roster and moves to turn-order resolution. A roster
// without a living combatant on each side is a setup error and the encounter
// never begins.
func (e *Encounter) Start() error {
	if e.phase != PhasePreparation {
		return fmt.Errorf("encounter already started (phase %s)", e.phase)
	}
	if !anyAlive(e.members) {
		return ErrNoLivingMembers
	}
	if !anyAlive(e.monsters) {
		return ErrNoLivingMonsters
	}
	e.narrate("The encounter begins!")
	e.transitionTo(PhaseTurnOrder)
	return nil
}

// Update executes one step of the current phase. It is a no-op while the
// encounter is awaiting a player action or after a terminal phase.
func (e *Encounter) Update() {
	if st, ok := e.states[e.phase]; ok {
		st.Execute(e)
	}
}

// IsCombatActive reports whether the encounter can still advance.
func (e *Encounter) IsCombatActive() bool { return !e.phase.Terminal() }

// AwaitingPlayerAction reports whether Update is suspended on player input.
func (e *Encounter) AwaitingPlayerAction() bool { return e.awaiting }

// SubmitPlayerAction records the player's decision for the current turn. The
// next Update resolves it.
func (e *Encounter) SubmitPlayerAction(d PlayerDecision) error {
	if !e.awaiting {
		return ErrNotAwaiting
	}
	if _, ok := e.registry.Get(d.Kind); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, d.Kind)
	}
	e.pending = &d
	e.awaiting = false
	return nil
}

// Abort force-ends an active encounter as fled, without rewards.
func (e *Encounter) Abort() {
	if !e.IsCombatActive() {
		return
	}
	e.aborted = true
	e.awaiting = false
	e.pending = nil
	from := e.phase
	e.history = append(e.history, Transition{From: from, To: PhaseFled, Turn: e.turn})
	e.phase = PhaseFled
	e.narrate("The party withdraws from the encounter.")
}

// Accessors for observers (service layer, tests).

func (e *Encounter) Phase() Phase               { return e.phase }
func (e *Encounter) Turn() int                  { return e.turn }
func (e *Encounter) Fled() bool                 { return e.fled }
func (e *Encounter) Negotiated() bool           { return e.negotiated }
func (e *Encounter) FleeAttempted() bool        { return e.fleeAttempted }
func (e *Encounter) NegotiateAttempted() bool   { return e.negotiateAttempted }
func (e *Encounter) Aborted() bool              { return e.aborted }
func (e *Encounter) ExperienceAwarded() int     { return e.expAwarded }
func (e *Encounter) GoldAwarded() int           { return e.goldAwarded }
func (e *Encounter) Members() []game.Combatant  { return e.members }
func (e *Encounter) Monsters() []game.Combatant { return e.monsters }

// CurrentActor returns the combatant whose turn it is, or nil outside the
// turn phases.
func (e *Encounter) CurrentActor() game.Combatant {
	if e.phase != PhasePlayerTurn && e.phase != PhaseMonsterTurn {
		return nil
	}
	if e.turnIdx < 0 || e.turnIdx >= len(e.queue) {
		return nil
	}
	return e.queue[e.turnIdx]
}

// History returns the recorded phase transitions.
func (e *Encounter) History() []Transition {
	out := make([]Transition, len(e.history))
	copy(out, e.history)
	return out
}

// Log returns the accumulated combat narration.
func (e *Encounter) Log() []string {
	out := make([]string, len(e.log))
	copy(out, e.log)
	return out
}

func (e *Encounter) narrate(msg string) {
	e.log = append(e.log, msg)
	if e.narrator != nil {
		e.narrator.Narrate(msg)
	}
}

// transitionTo asks the current state's veto hook, records the transition and
// enters the next state. A vetoed transition leaves the machine unchanged.
func (e *Encounter) transitionTo(next Phase) bool {
	if st, ok := e.states[e.phase]; ok && !st.CanTransitionTo(next) {
		e.narrate(fmt.Sprintf("transition from %s to %s refused", e.phase, next))
		return false
	}
	e.history = append(e.history, Transition{From: e.phase, To: next, Turn: e.turn})
	e.phase = next
	if st, ok := e.states[next]; ok {
		st.Enter(e)
	}
	return true
}

// rollTurnOrder fixes the initiative queue for the whole encounter: living
// combatants sorted by agility + 1d10, descending, ties keeping roster order.
func (e *Encounter) rollTurnOrder() {
	type entry struct {
		c     game.Combatant
		score int
	}
	entries := make([]entry, 0, len(e.members)+len(e.monsters))
	for _, c := range e.members {
		if c.IsAlive() {
			entries = append(entries, entry{c: c, score: c.Agility() + e.rng.Between(1, 10)})
		}
	}
	for _, c := range e.monsters {
		if c.IsAlive() {
			entries = append(entries, entry{c: c, score: c.Agility() + e.rng.Between(1, 10)})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score > entries[j].score })

	e.queue = make([]game.Combatant, len(entries))
	for i, en := range entries {
		e.queue[i] = en.c
	}
	e.turnIdx = 0
	e.turn = 1
}

// advanceTurn moves to the next living combatant in the fixed queue, wrapping
// and incrementing the turn counter at the top of the order.
func (e *Encounter) advanceTurn() {
	n := len(e.queue)
	for i := 0; i < n; i++ {
		e.turnIdx = (e.turnIdx + 1) % n
		if e.turnIdx == 0 {
			e.turn++
		}
		if e.queue[e.turnIdx].IsAlive() {
			e.enterTurnFor(e.queue[e.turnIdx])
			return
		}
	}
}

func (e *Encounter) enterTurnFor(actor game.Combatant) {
	if e.isMember(actor) {
		e.transitionTo(PhasePlayerTurn)
	} else {
		e.transitionTo(PhaseMonsterTurn)
	}
}

func (e *Encounter) isMember(c game.Combatant) bool {
	for _, m := range e.members {
		if m == c {
			return true
		}
	}
	return false
}

// tickActorLedger advances the actor's status effects by one turn and
// narrates anything that wore off.
func (e *Encounter) tickActorLedger(actor game.Combatant) {
	for _, expired := range actor.Ledger().Tick() {
		e.narrate(fmt.Sprintf("%s is no longer %s", actor.DisplayName(), expired.Kind.DisplayName()))
	}
	actor.RefreshCondition()
}

// resolveAction runs one action through the registry and applies the shared
// aftermath: narration, condition refresh, flee/negotiate bookkeeping. An
// illegal attempt carries no tags, so it records neither an outcome nor an
// attempt.
func (e *Encounter) resolveAction(kind ActionKind, ctx *CombatContext) ActionResult {
	strategy, ok := e.registry.Get(kind)
	if !ok {
		return failure(fmt.Sprintf("no strategy for action %q", kind))
	}
	result := strategy.Execute(ctx)
	e.narrate(result.Message)
	if ctx.Actor != nil {
		ctx.Actor.RefreshCondition()
	}
	if ctx.Target != nil {
		ctx.Target.RefreshCondition()
	}
	if result.HasTag(TagFleeSuccess) || result.HasTag(TagFleeFailed) {
		e.fleeAttempted = true
	}
	if result.HasTag(TagFleeSuccess) {
		e.fled = true
	}
	if result.HasTag(TagNegotiateSuccess) || result.HasTag(TagNegotiateFailed) {
		e.negotiateAttempted = true
	}
	if result.HasTag(TagNegotiateSuccess) {
		e.negotiated = true
	}
	return result
}

// finishTurn checks terminal conditions in priority order and otherwise hands
// the turn to the next combatant. Party wipeout outranks escape: dying while
// the killing blow lands still ends in defeat.
func (e *Encounter) finishTurn(result ActionResult) {
	switch {
	case !anyAlive(e.monsters):
		e.transitionTo(PhaseVictory)
	case !anyAlive(e.members):
		e.transitionTo(PhaseDefeat)
	case result.HasTag(TagFleeSuccess):
		e.transitionTo(PhaseFled)
	case result.HasTag(TagNegotiateSuccess):
		e.transitionTo(PhaseNegotiated)
	default:
		e.advanceTurn()
	}
}

// totalBounty sums the rewards of every monster in the encounter.
func (e *Encounter) totalBounty() (exp, gold int) {
	for _, m := range e.monsters {
		if b, ok := m.(Bounty); ok {
			exp += b.ExperienceValue()
			gold += b.GoldValue()
		}
	}
	return exp, gold
}

// grantExperience credits each living member with the full amount.
func (e *Encounter) grantExperience(amount int) {
	if amount <= 0 {
		return
	}
	for _, m := range e.members {
		if !m.IsAlive() {
			continue
		}
		if g, ok := m.(ExperienceGainer); ok {
			g.GainExperience(amount, e.table)
		}
	}
	e.expAwarded = amount
}

func (e *Encounter) findCombatant(id string) game.Combatant {
	if id == "" {
		return nil
	}
	for _, c := range e.members {
		if c.CombatantID() == id {
			return c
		}
	}
	for _, c := range e.monsters {
		if c.CombatantID() == id {
			return c
		}
	}
	return nil
}

func anyAlive(cs []game.Combatant) bool {
	for _, c := range cs {
		if c.IsAlive() {
			return true
		}
	}
	return false
}

func firstLiving(cs []game.Combatant) game.Combatant {
	for _, c := range cs {
		if c.IsAlive() {
			return c
		}
	}
	return nil
}
