package game

// SpellKind selects how a spell resolves.
type SpellKind string

const (
	SpellKindHeal   SpellKind = "heal"
	SpellKindDamage SpellKind = "damage"
	SpellKindCure   SpellKind = "cure"
	SpellKindBuff   SpellKind = "buff"
)

// DefaultSpellCost applies to spells whose definition omits a cost.
const DefaultSpellCost = 5

// Spell is a castable spell definition. Power and Variance describe the
// effect magnitude as Power±Variance (inclusive).
type Spell struct {
	Key         string     `json:"key" yaml:"key"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Cost        int        `json:"cost" yaml:"cost"`
	Kind        SpellKind  `json:"kind" yaml:"kind"`
	Power       int        `json:"power" yaml:"power"`
	Variance    int        `json:"variance" yaml:"variance"`
	// Effect is applied to the target for buff spells, or removed for
	// cure spells.
	Effect   EffectKind `json:"effect" yaml:"effect"`
	Duration int        `json:"duration" yaml:"duration"`
}

// SpellBook maps spell keys to definitions.
type SpellBook map[string]Spell

// Lookup returns the spell definition for key.
func (b SpellBook) Lookup(key string) (Spell, bool) {
	s, ok := b[key]
	return s, ok
}

// CostOf returns the MP cost for key, applying the default for definitions
// without an explicit cost. Unknown keys also get the default; legality is
// the caller's concern.
func (b SpellBook) CostOf(key string) int {
	if s, ok := b[key]; ok && s.Cost > 0 {
		return s.Cost
	}
	return DefaultSpellCost
}

// DefaultSpellBook returns the built-in spell set used when the content file
// provides none.
func DefaultSpellBook() SpellBook {
	return SpellBook{
		"heal": {
			Key: "heal", Name: "Heal", Cost: 5, Kind: SpellKindHeal,
			Power: 15, Variance: 5,
			Description: "Mends wounds on a single ally.",
		},
		"cure": {
			Key: "cure", Name: "Cure", Cost: 3, Kind: SpellKindCure,
			Effect:      EffectPoisoned,
			Description: "Purges poison from the target.",
		},
		"fireball": {
			Key: "fireball", Name: "Fireball", Cost: 8, Kind: SpellKindDamage,
			Power: 15, Variance: 5,
			Description: "Hurls a sphere of flame.",
		},
		"lightning": {
			Key: "lightning", Name: "Lightning", Cost: 10, Kind: SpellKindDamage,
			Power: 20, Variance: 5,
			Description: "Calls a bolt from the sky.",
		},
		"blessing": {
			Key: "blessing", Name: "Blessing", Cost: 6, Kind: SpellKindBuff,
			Effect: EffectBlessed, Duration: 3,
			Description: "Wraps the target in protective light.",
		},
	}
}

// ItemKind selects how a consumable resolves.
type ItemKind string

const (
	ItemKindHeal ItemKind = "heal"
	ItemKindCure ItemKind = "cure"
	ItemKindBomb ItemKind = "bomb"
	// ItemKindGeneric items are consumable but have no combat effect.
	ItemKindGeneric ItemKind = "generic"
)

// Item is a consumable item definition.
type Item struct {
	Key         string     `json:"key" yaml:"key"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Kind        ItemKind   `json:"kind" yaml:"kind"`
	Power       int        `json:"power" yaml:"power"`
	Variance    int        `json:"variance" yaml:"variance"`
	Effect      EffectKind `json:"effect" yaml:"effect"`
}

// ItemCatalog maps item keys to definitions. Items missing from the catalog
// are still usable; they consume a unit and do nothing.
type ItemCatalog map[string]Item

// Lookup returns the item definition for key.
func (c ItemCatalog) Lookup(key string) (Item, bool) {
	it, ok := c[key]
	return it, ok
}

// DefaultItemCatalog returns the built-in consumables used when the content
// file provides none.
func DefaultItemCatalog() ItemCatalog {
	return ItemCatalog{
		"healing_potion": {
			Key: "healing_potion", Name: "Healing Potion", Kind: ItemKindHeal,
			Power: 20, Variance: 5,
			Description: "A bitter red draught that closes wounds.",
		},
		"antidote": {
			Key: "antidote", Name: "Antidote", Kind: ItemKindCure,
			Effect:      EffectPoisoned,
			Description: "Neutralizes most common venoms.",
		},
		"bomb": {
			Key: "bomb", Name: "Bomb", Kind: ItemKindBomb,
			Power: 25, Variance: 5,
			Description: "A clay sphere packed with blasting powder.",
		},
	}
}
