package engine

import (
	"github.com/torchlight-games/emberfall/internal/game"
)

// Param keys recognized in the CombatContext parameter bag.
const (
	ParamSpellKey = "spell"
	ParamItemKey  = "item"
)

// CombatContext carries everything a strategy needs to resolve one action.
// It is built fresh per action and discarded afterwards.
type CombatContext struct {
	Actor   game.Combatant
	Target  game.Combatant
	Allies  []game.Combatant
	Enemies []game.Combatant
	Turn    int
	Params  map[string]string
}

// Param returns the named parameter or "".
func (c *CombatContext) Param(key string) string {
	if c.Params == nil {
		return ""
	}
	return c.Params[key]
}

// LivingEnemies returns the enemies still standing.
func (c *CombatContext) LivingEnemies() []game.Combatant {
	out := make([]game.Combatant, 0, len(c.Enemies))
	for _, e := range c.Enemies {
		if e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// Result tags describing what an action did.
const (
	TagCritical         = "critical"
	TagMiss             = "miss"
	TagHeal             = "heal"
	TagDamage           = "damage"
	TagDefend           = "defend"
	TagSpellCast        = "spell_cast"
	TagItemUsed         = "item_used"
	TagCurePoison       = "cure_poison"
	TagFleeSuccess      = "flee_success"
	TagFleeFailed       = "flee_failed"
	TagNegotiateSuccess = "negotiate_success"
	TagNegotiateFailed  = "negotiate_failed"
)

// ActionResult is the uniform outcome every strategy produces. Success means
// the action itself went through (a missed strike is still a successful
// attack action); failures carry the reason in Message. Results are narrated
// and applied, never persisted.
type ActionResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DamageDealt int    `json:"damage_dealt"`
	// DamageTaken is damage the actor itself suffered while acting (recoil,
	// thorns). None of the built-in strategies hurt their own actor, so it
	// stays zero unless a registered custom strategy sets it.
	DamageTaken int      `json:"damage_taken"`
	HealAmount  int      `json:"heal_amount"`
	Tags        []string `json:"tags"`
}

// HasTag reports whether the result carries the tag.
func (r ActionResult) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func failure(msg string) ActionResult {
	return ActionResult{Success: false, Message: msg}
}
