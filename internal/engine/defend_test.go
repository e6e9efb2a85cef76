package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchlight-games/emberfall/internal/game"
)

func TestDefendAppliesProtection(t *testing.T) {
	actor := testCharacter("Mira", 30, 10, 8, 10, 12, 8)
	s := &DefendStrategy{}

	ctx := &CombatContext{Actor: actor}
	require.True(t, s.CanExecute(ctx))
	res := s.Execute(ctx)

	require.True(t, res.Success)
	assert.True(t, res.HasTag(TagDefend))

	eff, ok := actor.Ledger().Get(game.EffectProtection)
	require.True(t, ok)
	assert.Equal(t, 1, eff.Duration)
	assert.Equal(t, 1, eff.Intensity)
	assert.Equal(t, "defend_action", eff.Source)
}

func TestDefendLegalWhileParalyzed(t *testing.T) {
	actor := testCharacter("Mira", 30, 10, 8, 10, 12, 8)
	actor.Ledger().Apply(game.EffectParalyzed, 2, 1, "shock")
	s := &DefendStrategy{}

	assert.True(t, s.CanExecute(&CombatContext{Actor: actor}))
}
