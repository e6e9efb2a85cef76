package engine

import (
	"fmt"

	"github.com/torchlight-games/emberfall/internal/game"
)

// Negotiate tuning. The ceiling is deliberately low: talking your way out
// should stay a long shot even for a brilliant envoy.
const (
	negotiateBaseChance  = 0.2
	negotiateChanceFloor = 0.05
	negotiateChanceCeil  = 0.6
)

// NegotiateStrategy attempts to end the encounter through parley.
type NegotiateStrategy struct {
	rng Source
}

func (s *NegotiateStrategy) Kind() ActionKind { return ActionNegotiate }

func (s *NegotiateStrategy) CanExecute(ctx *CombatContext) bool {
	if ctx.Actor == nil {
		return false
	}
	return !ctx.Actor.Ledger().Has(game.EffectConfused)
}

func (s *NegotiateStrategy) Execute(ctx *CombatContext) ActionResult {
	if !s.CanExecute(ctx) {
		return failure(fmt.Sprintf("%s is babbling nonsense", actorName(ctx)))
	}

	// Smarter opponents can actually be reasoned with. With no one left to
	// talk to, a flat 0.05 stands in for the opponent term.
	enemyTerm := 0.05
	if enemies := ctx.LivingEnemies(); len(enemies) > 0 {
		total := 0
		for _, e := range enemies {
			total += e.Intelligence()
		}
		enemyTerm = float64(total) / float64(len(enemies)) * 0.01
	}
	chance := negotiateBaseChance + float64(ctx.Actor.Intelligence()-10)*0.02 + enemyTerm
	chance = clamp(negotiateChanceFloor, negotiateChanceCeil, chance)

	if s.rng.Float64() < chance {
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s finds the right words, and the hostilities end", ctx.Actor.DisplayName()),
			Tags:    []string{TagNegotiateSuccess},
		}
	}
	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("%s tries to parley, but the enemy is unmoved", ctx.Actor.DisplayName()),
		Tags:    []string{TagNegotiateFailed},
	}
}
