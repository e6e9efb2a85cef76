package engine

import (
	"github.com/torchlight-games/emberfall/internal/game"
)

// scriptedSource replays canned rolls. When the script runs out it falls
// back to a midpoint float (hit, no crit) and the low end of integer ranges,
// which keeps multi-turn tests deterministic without scripting every roll.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Between(min, max int) int {
	if len(s.ints) == 0 {
		return min
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func testCharacter(name string, hp, mp, str, agi, intel, vit int) *game.Character {
	return &game.Character{
		CharacterUUID:    "char-" + name,
		Name:             name,
		CurrentHP:        hp,
		MaxHP:            hp,
		CurrentMP:        mp,
		MaxMP:            mp,
		BaseStrength:     str,
		BaseAgility:      agi,
		BaseIntelligence: intel,
		BaseVitality:     vit,
	}
}

func testMonster(name string, hp, atk, def, agi, intel int) *game.Monster {
	return &game.Monster{
		Name:        name,
		MonsterUUID: "mon-" + name,
		CurrentHP:   hp,
		MaxHP:       hp,
		Attack:      atk,
		Defense:     def,
		AgilityV:    agi,
		Intellect:   intel,
	}
}

func testRegistry(rng Source) *StrategyRegistry {
	return NewStrategyRegistry(rng, game.DefaultSpellBook(), game.DefaultItemCatalog())
}
