package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchlight-games/emberfall/internal/game"
)

func TestAttackHitDamageRange(t *testing.T) {
	// str 15 vs vit 10: attack power 15, defense 5, so damage is 11..16.
	actor := testCharacter("Aldric", 30, 0, 15, 12, 8, 10)
	target := testMonster("Goblin", 30, 8, 5, 8, 4)
	rng := &scriptedSource{floats: []float64{0.5, 0.9}, ints: []int{4}}
	s := &AttackStrategy{rng: rng}

	ctx := &CombatContext{Actor: actor, Target: target}
	require.True(t, s.CanExecute(ctx))
	res := s.Execute(ctx)

	require.True(t, res.Success)
	assert.Equal(t, 14, res.DamageDealt) // 15 + 4 - 5
	assert.Equal(t, 16, target.CurrentHP)
	assert.True(t, res.HasTag(TagDamage))
	assert.False(t, res.HasTag(TagCritical))
}

func TestAttackMissIsSuccessfulAction(t *testing.T) {
	actor := testCharacter("Aldric", 30, 0, 15, 12, 8, 10)
	target := testMonster("Goblin", 30, 8, 5, 8, 4)
	// hit chance = clamp(0.05, 0.95, 0.7 + 12*0.02 - 8*0.01) = 0.86
	rng := &scriptedSource{floats: []float64{0.9}}
	s := &AttackStrategy{rng: rng}

	res := s.Execute(&CombatContext{Actor: actor, Target: target})

	require.True(t, res.Success, "a miss is still a successful attack action")
	assert.True(t, res.HasTag(TagMiss))
	assert.Equal(t, 0, res.DamageDealt)
	assert.Equal(t, 30, target.CurrentHP)
}

func TestAttackCriticalMultiplier(t *testing.T) {
	actor := testCharacter("Aldric", 30, 0, 15, 12, 8, 10)
	target := testMonster("Goblin", 60, 8, 5, 8, 4)
	rng := &scriptedSource{floats: []float64{0.0, 0.01}, ints: []int{4}}
	s := &AttackStrategy{rng: rng}

	res := s.Execute(&CombatContext{Actor: actor, Target: target})

	require.True(t, res.Success)
	assert.True(t, res.HasTag(TagCritical))
	assert.Equal(t, 21, res.DamageDealt) // floor(14 * 1.5)
	assert.Equal(t, 39, target.CurrentHP)
}

func TestAttackMinimumDamage(t *testing.T) {
	actor := testCharacter("Pip", 30, 0, 1, 10, 8, 4)
	target := testMonster("IronShell", 30, 8, 50, 8, 4)
	rng := &scriptedSource{floats: []float64{0.0, 0.9}, ints: []int{6}}
	s := &AttackStrategy{rng: rng}

	res := s.Execute(&CombatContext{Actor: actor, Target: target})

	require.True(t, res.Success)
	assert.Equal(t, 1, res.DamageDealt)
	assert.Equal(t, 29, target.CurrentHP)
}

func TestAttackBlockedByParalysis(t *testing.T) {
	actor := testCharacter("Aldric", 30, 0, 15, 12, 8, 10)
	target := testMonster("Goblin", 30, 8, 5, 8, 4)
	actor.Ledger().Apply(game.EffectParalyzed, 2, 1, "shock")
	s := &AttackStrategy{rng: &scriptedSource{}}

	ctx := &CombatContext{Actor: actor, Target: target}
	assert.False(t, s.CanExecute(ctx))

	res := s.Execute(ctx)
	assert.False(t, res.Success)
	assert.Equal(t, 30, target.CurrentHP)
}

func TestAttackRequiresLivingTarget(t *testing.T) {
	actor := testCharacter("Aldric", 30, 0, 15, 12, 8, 10)
	target := testMonster("Goblin", 30, 8, 5, 8, 4)
	target.CurrentHP = 0
	s := &AttackStrategy{rng: &scriptedSource{}}

	assert.False(t, s.CanExecute(&CombatContext{Actor: actor, Target: target}))
}
