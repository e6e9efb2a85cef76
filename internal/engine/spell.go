package engine

import (
	"fmt"

	"github.com/torchlight-games/emberfall/internal/game"
)

// CastSpellStrategy resolves spell casting against the configured spellbook.
type CastSpellStrategy struct {
	rng    Source
	spells game.SpellBook
}

func (s *CastSpellStrategy) Kind() ActionKind { return ActionCastSpell }

func (s *CastSpellStrategy) CanExecute(ctx *CombatContext) bool {
	if ctx.Actor == nil {
		return false
	}
	key := ctx.Param(ParamSpellKey)
	if key == "" {
		return false
	}
	if _, ok := s.spells.Lookup(key); !ok {
		return false
	}
	mp, _ := ctx.Actor.ManaPoints()
	if mp < s.spells.CostOf(key) {
		return false
	}
	return !ctx.Actor.Ledger().Has(game.EffectConfused)
}

func (s *CastSpellStrategy) Execute(ctx *CombatContext) ActionResult {
	if ctx.Actor == nil {
		return failure("no caster")
	}
	key := ctx.Param(ParamSpellKey)
	if key == "" {
		return failure(fmt.Sprintf("%s has no spell prepared", ctx.Actor.DisplayName()))
	}
	if ctx.Actor.Ledger().Has(game.EffectConfused) {
		return failure(fmt.Sprintf("%s is too confused to form the words", ctx.Actor.DisplayName()))
	}
	spell, known := s.spells.Lookup(key)
	if !known {
		return failure(fmt.Sprintf("%s does not know the spell %q", ctx.Actor.DisplayName(), key))
	}
	cost := s.spells.CostOf(key)
	mp, _ := ctx.Actor.ManaPoints()
	if mp < cost {
		return failure(fmt.Sprintf("%s lacks the mana to cast %s", ctx.Actor.DisplayName(), spell.Name))
	}

	// MP is committed before the effect resolves; a later targeting failure
	// does not refund it.
	ctx.Actor.SetManaPoints(mp - cost)

	switch spell.Kind {
	case game.SpellKindHeal:
		return s.resolveHeal(ctx, spell)
	case game.SpellKindDamage:
		return s.resolveDamage(ctx, spell)
	case game.SpellKindCure:
		return s.resolveCure(ctx, spell)
	case game.SpellKindBuff:
		return s.resolveBuff(ctx, spell)
	default:
		// Defensive path: the legality check passed but the definition is
		// not resolvable.
		return failure(fmt.Sprintf("the spell %q fizzles", key))
	}
}

func (s *CastSpellStrategy) resolveHeal(ctx *CombatContext, spell game.Spell) ActionResult {
	target := ctx.Target
	if target == nil {
		target = ctx.Actor
	}
	amount := s.rng.Between(spell.Power-spell.Variance, spell.Power+spell.Variance)
	cur, max := target.HitPoints()
	healed := amount
	if cur+healed > max {
		healed = max - cur
	}
	target.SetHitPoints(cur + healed)
	return ActionResult{
		Success:    true,
		Message:    fmt.Sprintf("%s casts %s on %s, restoring %d HP", ctx.Actor.DisplayName(), spell.Name, target.DisplayName(), healed),
		HealAmount: healed,
		Tags:       []string{TagSpellCast, TagHeal},
	}
}

func (s *CastSpellStrategy) resolveDamage(ctx *CombatContext, spell game.Spell) ActionResult {
	if ctx.Target == nil {
		return failure(fmt.Sprintf("%s has no target for %s", ctx.Actor.DisplayName(), spell.Name))
	}
	dmg := s.rng.Between(spell.Power-spell.Variance, spell.Power+spell.Variance)
	cur, _ := ctx.Target.HitPoints()
	ctx.Target.SetHitPoints(cur - dmg)
	return ActionResult{
		Success:     true,
		Message:     fmt.Sprintf("%s casts %s at %s for %d damage", ctx.Actor.DisplayName(), spell.Name, ctx.Target.DisplayName(), dmg),
		DamageDealt: dmg,
		Tags:        []string{TagSpellCast, TagDamage},
	}
}

func (s *CastSpellStrategy) resolveCure(ctx *CombatContext, spell game.Spell) ActionResult {
	target := ctx.Target
	if target == nil {
		target = ctx.Actor
	}
	kind := spell.Effect
	if kind == "" {
		kind = game.EffectPoisoned
	}
	if target.Ledger().Remove(kind) {
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s casts %s and purges %s from %s", ctx.Actor.DisplayName(), spell.Name, kind.DisplayName(), target.DisplayName()),
			Tags:    []string{TagSpellCast, TagCurePoison},
		}
	}
	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("%s casts %s on %s, but there is nothing to cure", ctx.Actor.DisplayName(), spell.Name, target.DisplayName()),
		Tags:    []string{TagSpellCast},
	}
}

func (s *CastSpellStrategy) resolveBuff(ctx *CombatContext, spell game.Spell) ActionResult {
	target := ctx.Target
	if target == nil {
		target = ctx.Actor
	}
	duration := spell.Duration
	if duration == 0 {
		duration = 3
	}
	target.Ledger().Apply(spell.Effect, duration, 1, "spell:"+spell.Key)
	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("%s casts %s on %s", ctx.Actor.DisplayName(), spell.Name, target.DisplayName()),
		Tags:    []string{TagSpellCast},
	}
}
