package game

// EffectObserver receives ledger change notifications. Implementations must
// not assume delivery succeeds; the ledger fires and forgets.
type EffectObserver func(kind EffectKind, applied bool)

// StatusEffectLedger tracks the active effects of a single combatant. Entries
// are keyed by a synthetic effect id and indexed by kind so that at most one
// effect per kind is ever active. Snapshot order is insertion order.
type StatusEffectLedger struct {
	byID     map[string]*StatusEffect
	byKind   map[EffectKind]string
	order    []string
	observer EffectObserver
}

// NewStatusEffectLedger returns an empty ledger.
func NewStatusEffectLedger() *StatusEffectLedger {
	return &StatusEffectLedger{
		byID:   make(map[string]*StatusEffect),
		byKind: make(map[EffectKind]string),
	}
}

// SetObserver installs a change listener. Passing nil removes it.
func (l *StatusEffectLedger) SetObserver(obs EffectObserver) { l.observer = obs }

func (l *StatusEffectLedger) notify(kind EffectKind, applied bool) {
	if l.observer != nil {
		l.observer(kind, applied)
	}
}

// Apply inserts or refreshes an effect of the given kind and reports whether
// the ledger changed. When an effect of the same kind is already active the
// new application wins only if it is permanent or strictly outlasts the
// remaining duration; on a win the intensity becomes the max of both and the
// entry keeps its position in the snapshot order. A weaker reapplication is a
// no-op, not an error.
func (l *StatusEffectLedger) Apply(kind EffectKind, duration, intensity int, source string) bool {
	if id, ok := l.byKind[kind]; ok {
		existing := l.byID[id]
		replace := duration == DurationPermanent ||
			(!existing.Permanent() && duration > existing.Duration)
		if !replace {
			return false
		}
		fresh := NewStatusEffect(kind, duration, intensity, source)
		if existing.Intensity > fresh.Intensity {
			fresh.Intensity = existing.Intensity
		}
		fresh.ID = existing.ID
		l.byID[existing.ID] = fresh
		l.notify(kind, true)
		return true
	}

	eff := NewStatusEffect(kind, duration, intensity, source)
	l.byID[eff.ID] = eff
	l.byKind[kind] = eff.ID
	l.order = append(l.order, eff.ID)
	l.notify(kind, true)
	return true
}

// Remove deletes the active effect of the given kind if present.
func (l *StatusEffectLedger) Remove(kind EffectKind) bool {
	id, ok := l.byKind[kind]
	if !ok {
		return false
	}
	l.removeID(id)
	l.notify(kind, false)
	return true
}

func (l *StatusEffectLedger) removeID(id string) {
	eff := l.byID[id]
	delete(l.byID, id)
	delete(l.byKind, eff.Kind)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Has reports whether an effect of the given kind is active.
func (l *StatusEffectLedger) Has(kind EffectKind) bool {
	_, ok := l.byKind[kind]
	return ok
}

// Get returns the active effect of the given kind.
func (l *StatusEffectLedger) Get(kind EffectKind) (*StatusEffect, bool) {
	id, ok := l.byKind[kind]
	if !ok {
		return nil, false
	}
	return l.byID[id], true
}

// All returns a snapshot of every active effect in insertion order.
func (l *StatusEffectLedger) All() []StatusEffect {
	out := make([]StatusEffect, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.byID[id])
	}
	return out
}

// Beneficial returns the active beneficial effects in insertion order.
func (l *StatusEffectLedger) Beneficial() []StatusEffect {
	return l.filtered(true)
}

// Harmful returns the active harmful effects in insertion order.
func (l *StatusEffectLedger) Harmful() []StatusEffect {
	return l.filtered(false)
}

func (l *StatusEffectLedger) filtered(beneficial bool) []StatusEffect {
	out := make([]StatusEffect, 0, len(l.order))
	for _, id := range l.order {
		if eff := l.byID[id]; eff.Kind.Beneficial() == beneficial {
			out = append(out, *eff)
		}
	}
	return out
}

// Len returns the number of active effects.
func (l *StatusEffectLedger) Len() int { return len(l.order) }

// Tick advances the ledger by one bearer turn: every positive duration is
// decremented once and entries reaching zero are removed and returned.
// Permanent effects are untouched. Call exactly once per combatant per that
// combatant's own turn.
func (l *StatusEffectLedger) Tick() []StatusEffect {
	var expired []StatusEffect
	ids := make([]string, len(l.order))
	copy(ids, l.order)
	for _, id := range ids {
		eff := l.byID[id]
		if eff.Duration <= 0 {
			continue
		}
		eff.Duration--
		if eff.Duration == 0 {
			expired = append(expired, *eff)
			l.removeID(id)
			l.notify(eff.Kind, false)
		}
	}
	return expired
}
