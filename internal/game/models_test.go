package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCondition(t *testing.T) {
	cases := []struct {
		name    string
		current int
		max     int
		setup   func(l *StatusEffectLedger)
		want    CoarseCondition
	}{
		{"full health", 30, 30, nil, ConditionFine},
		{"above three quarters", 23, 30, nil, ConditionFine},
		{"below three quarters", 22, 30, nil, ConditionInjured},
		{"below one quarter", 7, 30, nil, ConditionCritical},
		{"zero hp", 0, 30, nil, ConditionDead},
		{"negative hp", -5, 30, nil, ConditionDead},
		{"unconscious effect", 30, 30, func(l *StatusEffectLedger) {
			l.Apply(EffectUnconscious, 3, 1, "blow")
		}, ConditionUnconscious},
		{"petrified effect", 30, 30, func(l *StatusEffectLedger) {
			l.Apply(EffectPetrified, DurationPermanent, 1, "gaze")
		}, ConditionUnconscious},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewStatusEffectLedger()
			if tc.setup != nil {
				tc.setup(l)
			}
			assert.Equal(t, tc.want, DeriveCondition(tc.current, tc.max, l))
		})
	}
}

func TestCharacterDerivedCombatValues(t *testing.T) {
	c := &Character{BaseStrength: 15, BaseVitality: 10}
	assert.Equal(t, 15, c.AttackPower())
	assert.Equal(t, 5, c.DefenseRating())

	c.ArmorEquipped = true
	assert.Equal(t, 8, c.DefenseRating())
}

func TestCharacterHitPointClamping(t *testing.T) {
	c := &Character{CurrentHP: 10, MaxHP: 30}
	c.SetHitPoints(-5)
	assert.Equal(t, 0, c.CurrentHP)
	c.SetHitPoints(99)
	assert.Equal(t, 30, c.CurrentHP)
	assert.False(t, (&Character{MaxHP: 30}).IsAlive())
}

func TestCharacterInventory(t *testing.T) {
	c := &Character{}
	assert.Equal(t, 0, c.ItemCount("antidote"))
	assert.False(t, c.ConsumeItem("antidote"))

	c.AddItem("antidote", 2)
	c.AddItem("antidote", 1)
	assert.Equal(t, 3, c.ItemCount("antidote"))

	assert.True(t, c.ConsumeItem("antidote"))
	assert.Equal(t, 2, c.ItemCount("antidote"))
}

func TestCharacterGainExperience(t *testing.T) {
	c := &Character{Experience: 10}
	c.GainExperience(50, nil)
	c.GainExperience(-5, nil)
	assert.Equal(t, 60, c.Experience)
}

func TestPartyGoldFloorsAtZero(t *testing.T) {
	p := &Party{Gold: 30}
	p.AddGold(-100)
	assert.Equal(t, 0, p.GoldAmount())
	p.AddGold(25)
	assert.Equal(t, 25, p.GoldAmount())
}

func TestMonsterRewardDefaults(t *testing.T) {
	m := &Monster{}
	assert.Equal(t, DefaultMonsterExperience, m.ExperienceValue())
	assert.Equal(t, DefaultMonsterGold, m.GoldValue())

	m.ExperienceReward = 120
	m.GoldReward = 75
	assert.Equal(t, 120, m.ExperienceValue())
	assert.Equal(t, 75, m.GoldValue())
}

func TestMonsterAttributeFallbacks(t *testing.T) {
	m := &Monster{Attack: 12, Defense: 4, AgilityV: 9, Intellect: 3}
	assert.Equal(t, 12, m.Strength())
	assert.Equal(t, 12, m.AttackPower())
	assert.Equal(t, 4, m.DefenseRating())
	assert.Equal(t, 8, m.Vitality())
	assert.Equal(t, 9, m.Agility())
	assert.Equal(t, 3, m.Intelligence())
}
