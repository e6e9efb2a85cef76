package engine

import (
	"fmt"

	"github.com/torchlight-games/emberfall/internal/game"
)

// ItemBearer is implemented by combatants that carry a usable inventory.
// Monsters do not, which is what makes item use illegal for them.
type ItemBearer interface {
	ItemCount(key string) int
	ConsumeItem(key string) bool
}

// UseItemStrategy resolves consumable item use against the configured catalog.
type UseItemStrategy struct {
	rng   Source
	items game.ItemCatalog
}

func (s *UseItemStrategy) Kind() ActionKind { return ActionUseItem }

func (s *UseItemStrategy) CanExecute(ctx *CombatContext) bool {
	if ctx.Actor == nil {
		return false
	}
	bearer, ok := ctx.Actor.(ItemBearer)
	if !ok {
		return false
	}
	key := ctx.Param(ParamItemKey)
	return key != "" && bearer.ItemCount(key) > 0
}

func (s *UseItemStrategy) Execute(ctx *CombatContext) ActionResult {
	if ctx.Actor == nil {
		return failure("no one to use the item")
	}
	bearer, ok := ctx.Actor.(ItemBearer)
	if !ok {
		return failure(fmt.Sprintf("%s cannot use items", ctx.Actor.DisplayName()))
	}
	key := ctx.Param(ParamItemKey)
	if key == "" || bearer.ItemCount(key) == 0 {
		return failure(fmt.Sprintf("%s does not have that item", ctx.Actor.DisplayName()))
	}

	// The item is spent the moment it is used, whether or not it helps.
	if !bearer.ConsumeItem(key) {
		return failure(fmt.Sprintf("%s does not have that item", ctx.Actor.DisplayName()))
	}

	item, known := s.items.Lookup(key)
	if !known {
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s uses %s, but nothing happens", ctx.Actor.DisplayName(), key),
			Tags:    []string{TagItemUsed},
		}
	}

	target := ctx.Target
	if target == nil {
		target = ctx.Actor
	}

	switch item.Kind {
	case game.ItemKindHeal:
		amount := s.rng.Between(item.Power-item.Variance, item.Power+item.Variance)
		cur, max := target.HitPoints()
		healed := amount
		if cur+healed > max {
			healed = max - cur
		}
		target.SetHitPoints(cur + healed)
		return ActionResult{
			Success:    true,
			Message:    fmt.Sprintf("%s uses %s on %s, restoring %d HP", ctx.Actor.DisplayName(), item.Name, target.DisplayName(), healed),
			HealAmount: healed,
			Tags:       []string{TagItemUsed, TagHeal},
		}
	case game.ItemKindCure:
		kind := item.Effect
		if kind == "" {
			kind = game.EffectPoisoned
		}
		if target.Ledger().Remove(kind) {
			return ActionResult{
				Success: true,
				Message: fmt.Sprintf("%s uses %s and purges %s from %s", ctx.Actor.DisplayName(), item.Name, kind.DisplayName(), target.DisplayName()),
				Tags:    []string{TagItemUsed, TagCurePoison},
			}
		}
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s uses %s on %s, but there is nothing to cure", ctx.Actor.DisplayName(), item.Name, target.DisplayName()),
			Tags:    []string{TagItemUsed},
		}
	case game.ItemKindBomb:
		if ctx.Target == nil {
			return ActionResult{
				Success: true,
				Message: fmt.Sprintf("%s hurls %s into the dark, hitting nothing", ctx.Actor.DisplayName(), item.Name),
				Tags:    []string{TagItemUsed},
			}
		}
		dmg := s.rng.Between(item.Power-item.Variance, item.Power+item.Variance)
		cur, _ := ctx.Target.HitPoints()
		ctx.Target.SetHitPoints(cur - dmg)
		return ActionResult{
			Success:     true,
			Message:     fmt.Sprintf("%s hurls %s at %s for %d damage", ctx.Actor.DisplayName(), item.Name, ctx.Target.DisplayName(), dmg),
			DamageDealt: dmg,
			Tags:        []string{TagItemUsed, TagDamage},
		}
	default:
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("%s uses %s", ctx.Actor.DisplayName(), item.Name),
			Tags:    []string{TagItemUsed},
		}
	}
}
