package engine

import (
	"fmt"

	"github.com/torchlight-games/emberfall/internal/game"
)

// defendEffectSource tags the protection effect so the ledger audit trail
// shows where it came from.
const defendEffectSource = "defend_action"

// DefendStrategy puts the actor into a guarding stance for one turn.
type DefendStrategy struct{}

func (s *DefendStrategy) Kind() ActionKind { return ActionDefend }

// Defending is always legal.
func (s *DefendStrategy) CanExecute(ctx *CombatContext) bool {
	return ctx.Actor != nil
}

func (s *DefendStrategy) Execute(ctx *CombatContext) ActionResult {
	if !s.CanExecute(ctx) {
		return failure("no one to defend")
	}
	ctx.Actor.Ledger().Apply(game.EffectProtection, 1, 1, defendEffectSource)
	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("%s takes a defensive stance", ctx.Actor.DisplayName()),
		Tags:    []string{TagDefend},
	}
}
