package engine

import (
	"fmt"

	"github.com/torchlight-games/emberfall/internal/game"
)

// Attack tuning. Specific values are default policy, not balance-tuned.
const (
	attackBaseHitChance  = 0.7
	attackHitChanceFloor = 0.05
	attackHitChanceCeil  = 0.95
	attackCritChance     = 0.05
)

// AttackStrategy resolves a basic weapon strike.
type AttackStrategy struct {
	rng Source
}

func (s *AttackStrategy) Kind() ActionKind { return ActionAttack }

func (s *AttackStrategy) CanExecute(ctx *CombatContext) bool {
	if ctx.Actor == nil || ctx.Target == nil || !ctx.Target.IsAlive() {
		return false
	}
	ledger := ctx.Actor.Ledger()
	return !ledger.Has(game.EffectParalyzed) && !ledger.Has(game.EffectUnconscious)
}

func (s *AttackStrategy) Execute(ctx *CombatContext) ActionResult {
	if !s.CanExecute(ctx) {
		return failure(fmt.Sprintf("%s cannot attack right now", actorName(ctx)))
	}
	attacker := ctx.Actor
	target := ctx.Target

	chance := clamp(attackHitChanceFloor, attackHitChanceCeil,
		attackBaseHitChance+float64(attacker.Agility())*0.02-float64(target.Agility())*0.01)
	if s.rng.Float64() >= chance {
		// The action succeeded; the strike did not.
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s attacks %s but misses!", attacker.DisplayName(), target.DisplayName()),
			Tags:    []string{TagMiss},
		}
	}

	dmg := attacker.AttackPower() + s.rng.Between(1, 6) - target.DefenseRating()
	if dmg < 1 {
		dmg = 1
	}
	tags := []string{TagDamage}
	crit := s.rng.Float64() < attackCritChance
	if crit {
		dmg = dmg * 3 / 2
		tags = append(tags, TagCritical)
	}

	cur, _ := target.HitPoints()
	target.SetHitPoints(cur - dmg)

	msg := fmt.Sprintf("%s attacks %s for %d damage", attacker.DisplayName(), target.DisplayName(), dmg)
	if crit {
		msg += ", a critical hit!"
	}
	return ActionResult{
		Success:     true,
		Message:     msg,
		DamageDealt: dmg,
		Tags:        tags,
	}
}

func actorName(ctx *CombatContext) string {
	if ctx.Actor == nil {
		return "nobody"
	}
	return ctx.Actor.DisplayName()
}
