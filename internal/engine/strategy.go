package engine

import "github.com/torchlight-games/emberfall/internal/game"

// ActionKind identifies a combat action. Using a dedicated type instead of
// plain string makes dispatch safer and self-documenting.
type ActionKind string

const (
	ActionNone      ActionKind = ""
	ActionAttack    ActionKind = "attack"
	ActionDefend    ActionKind = "defend"
	ActionCastSpell ActionKind = "cast_spell"
	ActionUseItem   ActionKind = "use_item"
	ActionFlee      ActionKind = "flee"
	ActionNegotiate ActionKind = "negotiate"
)

// ActionStrategy resolves one kind of combat action. CanExecute is a pure
// legality check; Execute re-checks legality itself and reports an illegal
// attempt as a failure result rather than an error, since legality can shift
// between check and execution.
type ActionStrategy interface {
	Kind() ActionKind
	CanExecute(ctx *CombatContext) bool
	Execute(ctx *CombatContext) ActionResult
}

// StrategyRegistry maps action kinds to strategies. It is pure dispatch:
// no legality or execution logic lives here. Registries are constructed by
// whoever assembles the combat session; there is no global instance.
type StrategyRegistry struct {
	strategies map[ActionKind]ActionStrategy
	kinds      []ActionKind
}

// NewStrategyRegistry returns a registry pre-seeded with the six built-in
// strategies, all sharing the given random source and content definitions.
func NewStrategyRegistry(rng Source, spells game.SpellBook, items game.ItemCatalog) *StrategyRegistry {
	r := &StrategyRegistry{strategies: make(map[ActionKind]ActionStrategy)}
	r.Register(&AttackStrategy{rng: rng})
	r.Register(&DefendStrategy{})
	r.Register(&CastSpellStrategy{rng: rng, spells: spells})
	r.Register(&UseItemStrategy{rng: rng, items: items})
	r.Register(&FleeStrategy{rng: rng})
	r.Register(&NegotiateStrategy{rng: rng})
	return r
}

// Register adds or overwrites the strategy for its kind.
func (r *StrategyRegistry) Register(s ActionStrategy) {
	kind := s.Kind()
	if _, exists := r.strategies[kind]; !exists {
		r.kinds = append(r.kinds, kind)
	}
	r.strategies[kind] = s
}

// Get returns the strategy for kind.
func (r *StrategyRegistry) Get(kind ActionKind) (ActionStrategy, bool) {
	s, ok := r.strategies[kind]
	return s, ok
}

// Kinds returns the registered kinds in registration order.
func (r *StrategyRegistry) Kinds() []ActionKind {
	out := make([]ActionKind, len(r.kinds))
	copy(out, r.kinds)
	return out
}
