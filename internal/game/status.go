package game

import (
	"time"

	"github.com/google/uuid"
)

// EffectKind identifies a status effect category. At most one effect of a
// given kind is active on a combatant at any time.
type EffectKind string

const (
	// Beneficial effects
	EffectBlessed      EffectKind = "blessed"
	EffectProtection   EffectKind = "protection"
	EffectHaste        EffectKind = "haste"
	EffectRegeneration EffectKind = "regeneration"
	EffectStrengthened EffectKind = "strengthened"
	EffectBarrier      EffectKind = "barrier"
	EffectFocused      EffectKind = "focused"

	// Harmful effects
	EffectPoisoned    EffectKind = "poisoned"
	EffectParalyzed   EffectKind = "paralyzed"
	EffectConfused    EffectKind = "confused"
	EffectUnconscious EffectKind = "unconscious"
	EffectPetrified   EffectKind = "petrified"
	EffectSlowed      EffectKind = "slowed"
	EffectWeakened    EffectKind = "weakened"
	EffectCursed      EffectKind = "cursed"
)

// DurationPermanent marks an effect that never decays on its own.
const DurationPermanent = -1

type effectInfo struct {
	name        string
	description string
	beneficial  bool
}

var effectCatalog = map[EffectKind]effectInfo{
	EffectBlessed:      {"Blessed", "Favored by the light; fortune leans their way.", true},
	EffectProtection:   {"Protection", "Guarding stance reduces incoming harm.", true},
	EffectHaste:        {"Haste", "Moves with unnatural speed.", true},
	EffectRegeneration: {"Regeneration", "Wounds slowly knit themselves closed.", true},
	EffectStrengthened: {"Strengthened", "Muscles surge with borrowed power.", true},
	EffectBarrier:      {"Barrier", "A shimmering shell absorbs blows.", true},
	EffectFocused:      {"Focused", "Mind sharpened to a single point.", true},
	EffectPoisoned:     {"Poisoned", "Venom courses through their veins.", false},
	EffectParalyzed:    {"Paralyzed", "Limbs locked; cannot act freely.", false},
	EffectConfused:     {"Confused", "Thoughts scattered; words fail.", false},
	EffectUnconscious:  {"Unconscious", "Out cold and helpless.", false},
	EffectPetrified:    {"Petrified", "Flesh turned to stone.", false},
	EffectSlowed:       {"Slowed", "Every motion drags as if underwater.", false},
	EffectWeakened:     {"Weakened", "Strength drains away.", false},
	EffectCursed:       {"Cursed", "A dark mark invites misfortune.", false},
}

// Known reports whether k is one of the catalogued effect kinds.
func (k EffectKind) Known() bool {
	_, ok := effectCatalog[k]
	return ok
}

// Beneficial reports whether the effect kind helps its bearer. Unknown kinds
// are treated as harmful.
func (k EffectKind) Beneficial() bool {
	return effectCatalog[k].beneficial
}

// DisplayName returns the human-readable name for the effect kind.
func (k EffectKind) DisplayName() string {
	if info, ok := effectCatalog[k]; ok {
		return info.name
	}
	return string(k)
}

// EffectKinds returns every catalogued kind, beneficial first. The order is
// fixed so narration and tests are deterministic.
func EffectKinds() []EffectKind {
	return []EffectKind{
		EffectBlessed, EffectProtection, EffectHaste, EffectRegeneration,
		EffectStrengthened, EffectBarrier, EffectFocused,
		EffectPoisoned, EffectParalyzed, EffectConfused, EffectUnconscious,
		EffectPetrified, EffectSlowed, EffectWeakened, EffectCursed,
	}
}

// StatusEffect is a single active effect on a combatant. Duration counts down
// once per bearer turn; DurationPermanent never decays and 0 means the effect
// expired on the current tick and must be removed before the next turn.
type StatusEffect struct {
	ID          string     `json:"id"`
	Kind        EffectKind `json:"kind"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
	Intensity   int        `json:"intensity"`
	Source      string     `json:"source"`
	AppliedAt   time.Time  `json:"applied_at"`
}

// NewStatusEffect builds an effect instance for the given kind, filling
// display metadata from the catalog.
func NewStatusEffect(kind EffectKind, duration, intensity int, source string) *StatusEffect {
	info := effectCatalog[kind]
	name := info.name
	if name == "" {
		name = string(kind)
	}
	return &StatusEffect{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        name,
		Description: info.description,
		Duration:    duration,
		Intensity:   intensity,
		Source:      source,
		AppliedAt:   time.Now().UTC(),
	}
}

// Permanent reports whether the effect never decays.
func (e *StatusEffect) Permanent() bool { return e.Duration == DurationPermanent }
