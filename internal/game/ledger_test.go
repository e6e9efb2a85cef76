package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRejectsShorterReapplication(t *testing.T) {
	l := NewStatusEffectLedger()

	require.True(t, l.Apply(EffectPoisoned, 5, 1, "spider_bite"))
	assert.False(t, l.Apply(EffectPoisoned, 3, 1, "dart"), "shorter duration must not replace")
	assert.False(t, l.Apply(EffectPoisoned, 5, 1, "dart"), "equal duration must not replace")

	eff, ok := l.Get(EffectPoisoned)
	require.True(t, ok)
	assert.Equal(t, 5, eff.Duration)
	assert.Equal(t, "spider_bite", eff.Source)
}

func TestApplyLongerReplacesKeepingMaxIntensity(t *testing.T) {
	l := NewStatusEffectLedger()

	require.True(t, l.Apply(EffectPoisoned, 2, 3, "spider_bite"))
	first, _ := l.Get(EffectPoisoned)
	firstID := first.ID

	require.True(t, l.Apply(EffectPoisoned, 6, 1, "venom_cloud"))
	eff, ok := l.Get(EffectPoisoned)
	require.True(t, ok)
	assert.Equal(t, 6, eff.Duration)
	assert.Equal(t, 3, eff.Intensity, "intensity keeps the stronger value")
	assert.Equal(t, firstID, eff.ID, "replacement keeps the entry identity")
	assert.Equal(t, 1, l.Len())
}

func TestApplyPermanentAlwaysWins(t *testing.T) {
	l := NewStatusEffectLedger()

	require.True(t, l.Apply(EffectCursed, 10, 1, "trap"))
	require.True(t, l.Apply(EffectCursed, DurationPermanent, 1, "ancient_curse"))

	eff, _ := l.Get(EffectCursed)
	assert.True(t, eff.Permanent())
	assert.False(t, l.Apply(EffectCursed, 99, 1, "trap"), "finite duration never replaces permanent")
}

func TestTickDecrementsAndExpires(t *testing.T) {
	l := NewStatusEffectLedger()
	l.Apply(EffectPoisoned, 2, 1, "bite")
	l.Apply(EffectBlessed, 1, 1, "prayer")
	l.Apply(EffectCursed, DurationPermanent, 1, "relic")

	expired := l.Tick()
	require.Len(t, expired, 1)
	assert.Equal(t, EffectBlessed, expired[0].Kind)
	assert.False(t, l.Has(EffectBlessed))

	poison, _ := l.Get(EffectPoisoned)
	assert.Equal(t, 1, poison.Duration)

	expired = l.Tick()
	require.Len(t, expired, 1)
	assert.Equal(t, EffectPoisoned, expired[0].Kind)

	// The permanent effect survives any number of ticks.
	for i := 0; i < 10; i++ {
		assert.Empty(t, l.Tick())
	}
	assert.True(t, l.Has(EffectCursed))
	cursed, _ := l.Get(EffectCursed)
	assert.Equal(t, DurationPermanent, cursed.Duration)
}

func TestSnapshotsKeepInsertionOrder(t *testing.T) {
	l := NewStatusEffectLedger()
	l.Apply(EffectPoisoned, 3, 1, "a")
	l.Apply(EffectBlessed, 3, 1, "b")
	l.Apply(EffectSlowed, 3, 1, "c")
	l.Apply(EffectHaste, 3, 1, "d")

	all := l.All()
	require.Len(t, all, 4)
	assert.Equal(t, EffectPoisoned, all[0].Kind)
	assert.Equal(t, EffectBlessed, all[1].Kind)
	assert.Equal(t, EffectSlowed, all[2].Kind)
	assert.Equal(t, EffectHaste, all[3].Kind)

	ben := l.Beneficial()
	require.Len(t, ben, 2)
	assert.Equal(t, EffectBlessed, ben[0].Kind)
	assert.Equal(t, EffectHaste, ben[1].Kind)

	harm := l.Harmful()
	require.Len(t, harm, 2)
	assert.Equal(t, EffectPoisoned, harm[0].Kind)
	assert.Equal(t, EffectSlowed, harm[1].Kind)
}

func TestRemove(t *testing.T) {
	l := NewStatusEffectLedger()
	l.Apply(EffectParalyzed, 3, 1, "shock")

	assert.True(t, l.Remove(EffectParalyzed))
	assert.False(t, l.Has(EffectParalyzed))
	assert.False(t, l.Remove(EffectParalyzed), "removing an absent kind reports false")
	assert.Equal(t, 0, l.Len())
}

func TestObserverSeesEveryChange(t *testing.T) {
	type event struct {
		kind    EffectKind
		applied bool
	}
	var seen []event

	l := NewStatusEffectLedger()
	l.SetObserver(func(kind EffectKind, applied bool) {
		seen = append(seen, event{kind, applied})
	})

	l.Apply(EffectPoisoned, 1, 1, "bite")
	l.Apply(EffectBlessed, 2, 1, "prayer")
	l.Remove(EffectBlessed)
	l.Tick() // poison expires

	require.Len(t, seen, 4)
	assert.Equal(t, event{EffectPoisoned, true}, seen[0])
	assert.Equal(t, event{EffectBlessed, true}, seen[1])
	assert.Equal(t, event{EffectBlessed, false}, seen[2])
	assert.Equal(t, event{EffectPoisoned, false}, seen[3])
}
