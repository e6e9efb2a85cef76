package engine

import (
	"fmt"

	"github.com/torchlight-games/emberfall/internal/game"
)

// Flee tuning.
const (
	fleeBaseChance  = 0.5
	fleeChanceFloor = 0.1
	fleeChanceCeil  = 0.9
)

// FleeStrategy attempts to escape the encounter. Success or failure is
// reported through tags; the phase machine decides what escape means.
type FleeStrategy struct {
	rng Source
}

func (s *FleeStrategy) Kind() ActionKind { return ActionFlee }

func (s *FleeStrategy) CanExecute(ctx *CombatContext) bool {
	if ctx.Actor == nil {
		return false
	}
	return !ctx.Actor.Ledger().Has(game.EffectParalyzed)
}

func (s *FleeStrategy) Execute(ctx *CombatContext) ActionResult {
	if !s.CanExecute(ctx) {
		return failure(fmt.Sprintf("%s cannot move!", actorName(ctx)))
	}

	chance := fleeBaseChance + float64(ctx.Actor.Agility()-10)*0.02
	if enemies := ctx.LivingEnemies(); len(enemies) > 0 {
		total := 0
		for _, e := range enemies {
			total += e.Agility()
		}
		avg := float64(total) / float64(len(enemies))
		chance -= (avg - 10) * 0.01
	}
	chance = clamp(fleeChanceFloor, fleeChanceCeil, chance)

	if s.rng.Float64() < chance {
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s breaks away from the fight!", ctx.Actor.DisplayName()),
			Tags:    []string{TagFleeSuccess},
		}
	}
	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("%s tries to flee, but the way is blocked", ctx.Actor.DisplayName()),
		Tags:    []string{TagFleeFailed},
	}
}
