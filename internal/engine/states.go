package engine

import (
	"fmt"
	"strings"

	"github.com/torchlight-games/emberfall/internal/game"
)

// State handles one phase of the encounter machine. Enter runs once on
// transition, Execute once per Update while the phase is current, and
// CanTransitionTo lets a state veto leaving for the proposed next phase.
type State interface {
	StatePhase() Phase
	Enter(e *Encounter)
	Execute(e *Encounter)
	CanTransitionTo(next Phase) bool
}

func defaultStates() map[Phase]State {
	states := map[Phase]State{}
	for _, s := range []State{
		&preparationState{},
		&turnOrderState{},
		&playerTurnState{},
		&monsterTurnState{},
		&victoryState{},
		&defeatState{},
		&fledState{},
		&negotiatedState{},
	} {
		states[s.StatePhase()] = s
	}
	return states
}

type preparationState struct{}

func (s *preparationState) StatePhase() Phase    { return PhasePreparation }
func (s *preparationState) Enter(e *Encounter)   {}
func (s *preparationState) Execute(e *Encounter) {}

// Preparation only ever yields to turn-order resolution.
func (s *preparationState) CanTransitionTo(next Phase) bool { return next == PhaseTurnOrder }

type turnOrderState struct{}

func (s *turnOrderState) StatePhase() Phase  { return PhaseTurnOrder }
func (s *turnOrderState) Enter(e *Encounter) {}

func (s *turnOrderState) Execute(e *Encounter) {
	e.rollTurnOrder()
	names := make([]string, len(e.queue))
	for i, c := range e.queue {
		names[i] = c.DisplayName()
	}
	e.narrate(fmt.Sprintf("Turn order: %s", strings.Join(names, ", ")))
	e.enterTurnFor(e.queue[e.turnIdx])
}

func (s *turnOrderState) CanTransitionTo(next Phase) bool {
	return next == PhasePlayerTurn || next == PhaseMonsterTurn
}

type playerTurnState struct{}

func (s *playerTurnState) StatePhase() Phase { return PhasePlayerTurn }

func (s *playerTurnState) Enter(e *Encounter) {
	e.tickActorLedger(e.CurrentActor())
	e.pending = nil
	e.awaiting = true
}

func (s *playerTurnState) Execute(e *Encounter) {
	if e.pending == nil {
		// Still waiting on the player.
		return
	}
	d := *e.pending
	e.pending = nil

	actor := e.CurrentActor()
	target := e.findCombatant(d.TargetID)
	if target == nil && d.Kind == ActionAttack {
		target = firstLiving(e.monsters)
	}
	ctx := &CombatContext{
		Actor:   actor,
		Target:  target,
		Allies:  e.members,
		Enemies: e.monsters,
		Turn:    e.turn,
		Params:  d.Params,
	}
	result := e.resolveAction(d.Kind, ctx)
	e.finishTurn(result)
}

func (s *playerTurnState) CanTransitionTo(next Phase) bool { return true }

type monsterTurnState struct{}

func (s *monsterTurnState) StatePhase() Phase { return PhaseMonsterTurn }

func (s *monsterTurnState) Enter(e *Encounter) {
	e.tickActorLedger(e.CurrentActor())
}

// Monster turns auto-resolve: the actor strikes a random living party member.
func (s *monsterTurnState) Execute(e *Encounter) {
	actor := e.CurrentActor()
	living := make([]game.Combatant, 0, len(e.members))
	for _, m := range e.members {
		if m.IsAlive() {
			living = append(living, m)
		}
	}
	var target game.Combatant
	if len(living) > 0 {
		target = living[e.rng.Between(0, len(living)-1)]
	}
	ctx := &CombatContext{
		Actor:   actor,
		Target:  target,
		Allies:  e.monsters,
		Enemies: e.members,
		Turn:    e.turn,
	}
	result := e.resolveAction(ActionAttack, ctx)
	e.finishTurn(result)
}

func (s *monsterTurnState) CanTransitionTo(next Phase) bool { return true }

type victoryState struct{}

func (s *victoryState) StatePhase() Phase { return PhaseVictory }

func (s *victoryState) Enter(e *Encounter) {
	exp, gold := e.totalBounty()
	e.grantExperience(exp)
	if e.purse != nil && gold > 0 {
		e.purse.AddGold(gold)
	}
	e.goldAwarded = gold
	e.narrate(fmt.Sprintf("Victory! The party gains %d experience and %d gold.", exp, gold))
}

func (s *victoryState) Execute(e *Encounter)            {}
func (s *victoryState) CanTransitionTo(next Phase) bool { return false }

type defeatState struct{}

func (s *defeatState) StatePhase() Phase { return PhaseDefeat }

func (s *defeatState) Enter(e *Encounter) {
	if e.purse != nil {
		loss := e.purse.GoldAmount() / 2
		if loss > 0 {
			e.purse.AddGold(-loss)
			e.narrate(fmt.Sprintf("The party has fallen, losing %d gold.", loss))
			return
		}
	}
	e.narrate("The party has fallen.")
}

func (s *defeatState) Execute(e *Encounter)            {}
func (s *defeatState) CanTransitionTo(next Phase) bool { return false }

type fledState struct{}

func (s *fledState) StatePhase() Phase { return PhaseFled }

func (s *fledState) Enter(e *Encounter) {
	e.narrate("The party escapes the encounter.")
}

func (s *fledState) Execute(e *Encounter)            {}
func (s *fledState) CanTransitionTo(next Phase) bool { return false }

type negotiatedState struct{}

func (s *negotiatedState) StatePhase() Phase { return PhaseNegotiated }

// A negotiated peace pays half the victory experience but the full gold: the
// enemy buys its way out of the fight.
func (s *negotiatedState) Enter(e *Encounter) {
	exp, gold := e.totalBounty()
	e.grantExperience(exp / 2)
	if e.purse != nil && gold > 0 {
		e.purse.AddGold(gold)
	}
	e.goldAwarded = gold
	e.narrate(fmt.Sprintf("The encounter ends peacefully. The party gains %d experience and %d gold.", exp/2, gold))
}

func (s *negotiatedState) Execute(e *Encounter)            {}
func (s *negotiatedState) CanTransitionTo(next Phase) bool { return false }
