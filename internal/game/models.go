package game

import (
	"time"

	"gorm.io/gorm"
)

// CoarseCondition is the summarized health state derived from HP and
// blocking status effects. It carries no state of its own and is re-derived
// after every mutation that could change it.
type CoarseCondition string

const (
	ConditionFine        CoarseCondition = "fine"
	ConditionInjured     CoarseCondition = "injured"
	ConditionCritical    CoarseCondition = "critical"
	ConditionUnconscious CoarseCondition = "unconscious"
	ConditionDead        CoarseCondition = "dead"
)

// DeriveCondition computes the coarse condition from the current HP ratio and
// the presence of blocking effects on the ledger.
func DeriveCondition(current, max int, ledger *StatusEffectLedger) CoarseCondition {
	if current <= 0 {
		return ConditionDead
	}
	if ledger != nil && (ledger.Has(EffectUnconscious) || ledger.Has(EffectPetrified)) {
		return ConditionUnconscious
	}
	if max <= 0 {
		return ConditionFine
	}
	ratio := float64(current) / float64(max)
	switch {
	case ratio < 0.25:
		return ConditionCritical
	case ratio < 0.75:
		return ConditionInjured
	default:
		return ConditionFine
	}
}

// Combatant is the single capability surface the combat engine sees. Player
// characters derive attack and defense from attributes; monsters expose flat
// values. Either way the engine never probes for optional fields.
type Combatant interface {
	CombatantID() string
	DisplayName() string
	HitPoints() (current, max int)
	ManaPoints() (current, max int)
	SetHitPoints(v int)
	SetManaPoints(v int)
	Strength() int
	Agility() int
	Intelligence() int
	Vitality() int
	// AttackPower is the flat offensive value fed into damage math.
	AttackPower() int
	// DefenseRating is the flat mitigation subtracted from incoming damage.
	DefenseRating() int
	Ledger() *StatusEffectLedger
	IsAlive() bool
	// RefreshCondition re-derives the coarse condition and returns it.
	RefreshCondition() CoarseCondition
}

// AdvancementTable describes experience thresholds for levels. The engine
// forwards it untouched when granting experience; progression itself lives
// outside combat.
type AdvancementTable struct {
	Thresholds []int
}

// armorDefenseBonus is added to a character's defense rating while the armor
// slot is occupied.
const armorDefenseBonus = 3

// Character is a player-controlled party member. Combat state (the status
// ledger, derived condition) is in-memory only; base stats and inventory are
// persisted.
type Character struct {
	gorm.Model
	PartyID       uint   `json:"-"`
	CharacterUUID string `json:"character_uuid" gorm:"index"`
	Name          string `json:"name" gorm:"size:32"`

	CurrentHP int `json:"current_hp"`
	MaxHP     int `json:"max_hp"`
	CurrentMP int `json:"current_mp"`
	MaxMP     int `json:"max_mp"`

	BaseStrength     int `json:"strength"`
	BaseAgility      int `json:"agility"`
	BaseIntelligence int `json:"intelligence"`
	BaseVitality     int `json:"vitality"`

	// ArmorEquipped mirrors the equipment system's armor slot; the full
	// inventory/equipment model lives outside the combat engine.
	ArmorEquipped bool `json:"armor_equipped"`

	Experience int `json:"experience"`

	Items []ItemStack `json:"items"`

	Condition CoarseCondition     `json:"condition" gorm:"-"`
	ledger    *StatusEffectLedger `gorm:"-"`
}

func (Character) TableName() string { return "party_characters" }

func (c *Character) CombatantID() string { return c.CharacterUUID }
func (c *Character) DisplayName() string { return c.Name }

func (c *Character) HitPoints() (int, int)  { return c.CurrentHP, c.MaxHP }
func (c *Character) ManaPoints() (int, int) { return c.CurrentMP, c.MaxMP }

func (c *Character) SetHitPoints(v int) {
	if v < 0 {
		v = 0
	}
	if v > c.MaxHP {
		v = c.MaxHP
	}
	c.CurrentHP = v
}

func (c *Character) SetManaPoints(v int) {
	if v < 0 {
		v = 0
	}
	if v > c.MaxMP {
		v = c.MaxMP
	}
	c.CurrentMP = v
}

func (c *Character) Strength() int     { return c.BaseStrength }
func (c *Character) Agility() int      { return c.BaseAgility }
func (c *Character) Intelligence() int { return c.BaseIntelligence }
func (c *Character) Vitality() int     { return c.BaseVitality }

// AttackPower for characters derives from strength.
func (c *Character) AttackPower() int { return c.BaseStrength }

// DefenseRating derives from vitality, plus a fixed bonus while armor is worn.
func (c *Character) DefenseRating() int {
	d := c.BaseVitality / 2
	if c.ArmorEquipped {
		d += armorDefenseBonus
	}
	return d
}

// Ledger returns the character's status-effect ledger, creating it on first
// use. The ledger lives for the character's lifetime, not per encounter.
func (c *Character) Ledger() *StatusEffectLedger {
	if c.ledger == nil {
		c.ledger = NewStatusEffectLedger()
	}
	return c.ledger
}

func (c *Character) IsAlive() bool { return c.CurrentHP > 0 }

func (c *Character) RefreshCondition() CoarseCondition {
	c.Condition = DeriveCondition(c.CurrentHP, c.MaxHP, c.Ledger())
	return c.Condition
}

// GainExperience credits combat experience. The advancement table parameter
// is accepted for the progression system's benefit and is not consulted here.
func (c *Character) GainExperience(amount int, _ *AdvancementTable) {
	if amount > 0 {
		c.Experience += amount
	}
}

// ItemCount returns how many units of the item the character carries.
func (c *Character) ItemCount(itemKey string) int {
	for i := range c.Items {
		if c.Items[i].ItemKey == itemKey {
			return c.Items[i].Quantity
		}
	}
	return 0
}

// ConsumeItem removes one unit of the item and reports whether it succeeded.
func (c *Character) ConsumeItem(itemKey string) bool {
	for i := range c.Items {
		if c.Items[i].ItemKey == itemKey && c.Items[i].Quantity > 0 {
			c.Items[i].Quantity--
			return true
		}
	}
	return false
}

// AddItem grants quantity units of the item, merging with an existing stack.
func (c *Character) AddItem(itemKey string, quantity int) {
	for i := range c.Items {
		if c.Items[i].ItemKey == itemKey {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, ItemStack{ItemKey: itemKey, Quantity: quantity})
}

// ItemStack is one inventory slot of a character.
type ItemStack struct {
	gorm.Model
	CharacterID uint   `json:"-"`
	ItemKey     string `json:"item_key" gorm:"size:64"`
	Quantity    int    `json:"quantity"`
}

func (ItemStack) TableName() string { return "character_items" }

// Party groups characters and holds the shared purse the combat engine pays
// rewards into.
type Party struct {
	gorm.Model
	Name    string      `json:"name" gorm:"size:32"`
	Gold    int         `json:"gold"`
	Members []Character `json:"members"`
}

func (Party) TableName() string { return "parties" }

// GoldAmount returns the shared purse balance.
func (p *Party) GoldAmount() int { return p.Gold }

// AddGold adjusts the purse by delta, flooring at zero.
func (p *Party) AddGold(delta int) {
	p.Gold += delta
	if p.Gold < 0 {
		p.Gold = 0
	}
}

// LivingMembers returns the members currently alive.
func (p *Party) LivingMembers() []*Character {
	out := make([]*Character, 0, len(p.Members))
	for i := range p.Members {
		if p.Members[i].IsAlive() {
			out = append(out, &p.Members[i])
		}
	}
	return out
}

// Monster reward defaults applied when a bestiary entry leaves them unset.
const (
	DefaultMonsterExperience = 50
	DefaultMonsterGold       = 20
)

// Monster is both a bestiary template (persisted, seeded from config) and a
// live encounter instance (copied from a template with its own UUID and
// ledger). Instance-only fields are not persisted.
type Monster struct {
	gorm.Model
	Name string `json:"name" gorm:"size:32"`

	MaxHP     int `json:"max_hp"`
	MaxMP     int `json:"max_mp"`
	Attack    int `json:"attack_power"`
	Defense   int `json:"defense"`
	AgilityV  int `json:"agility" gorm:"column:agility"`
	Intellect int `json:"intelligence" gorm:"column:intelligence"`

	ExperienceReward int `json:"experience_value" gorm:"column:experience_value"`
	GoldReward       int `json:"gold_value" gorm:"column:gold_value"`

	MonsterUUID string          `json:"monster_uuid" gorm:"-"`
	CurrentHP   int             `json:"current_hp" gorm:"-"`
	CurrentMP   int             `json:"current_mp" gorm:"-"`
	Condition   CoarseCondition `json:"condition" gorm:"-"`

	ledger *StatusEffectLedger `gorm:"-"`
}

func (Monster) TableName() string { return "monster_templates" }

func (m *Monster) CombatantID() string { return m.MonsterUUID }
func (m *Monster) DisplayName() string { return m.Name }

func (m *Monster) HitPoints() (int, int)  { return m.CurrentHP, m.MaxHP }
func (m *Monster) ManaPoints() (int, int) { return m.CurrentMP, m.MaxMP }

func (m *Monster) SetHitPoints(v int) {
	if v < 0 {
		v = 0
	}
	if v > m.MaxHP {
		v = m.MaxHP
	}
	m.CurrentHP = v
}

func (m *Monster) SetManaPoints(v int) {
	if v < 0 {
		v = 0
	}
	if v > m.MaxMP {
		v = m.MaxMP
	}
	m.CurrentMP = v
}

// Monsters expose flat combat values; attribute accessors fall back to them
// so callers never need presence checks.
func (m *Monster) Strength() int     { return m.Attack }
func (m *Monster) Agility() int      { return m.AgilityV }
func (m *Monster) Intelligence() int { return m.Intellect }
func (m *Monster) Vitality() int     { return m.Defense * 2 }

func (m *Monster) AttackPower() int   { return m.Attack }
func (m *Monster) DefenseRating() int { return m.Defense }

func (m *Monster) Ledger() *StatusEffectLedger {
	if m.ledger == nil {
		m.ledger = NewStatusEffectLedger()
	}
	return m.ledger
}

func (m *Monster) IsAlive() bool { return m.CurrentHP > 0 }

func (m *Monster) RefreshCondition() CoarseCondition {
	m.Condition = DeriveCondition(m.CurrentHP, m.MaxHP, m.Ledger())
	return m.Condition
}

// ExperienceValue returns the experience granted on defeat, defaulting when
// the template leaves it unset.
func (m *Monster) ExperienceValue() int {
	if m.ExperienceReward <= 0 {
		return DefaultMonsterExperience
	}
	return m.ExperienceReward
}

// GoldValue returns the gold granted on defeat, defaulting when unset.
func (m *Monster) GoldValue() int {
	if m.GoldReward <= 0 {
		return DefaultMonsterGold
	}
	return m.GoldReward
}

// Encounter lifecycle values persisted on EncounterRecord.
const (
	EncounterStatusActive   = "active"
	EncounterStatusFinished = "finished"
)

// EncounterRecord is the durable summary of a combat session. The live
// machine is in-memory; the record is refreshed after every resolved turn so
// observers and the idle scanner see current state.
type EncounterRecord struct {
	gorm.Model
	Code    string `json:"code" gorm:"unique"`
	PartyID uint   `json:"party_id"`

	Status     string `json:"status"`
	Phase      string `json:"phase"`
	Outcome    string `json:"outcome"`
	TurnNumber int    `json:"turn_number"`

	FleeAttempted      bool `json:"flee_attempted"`
	NegotiateAttempted bool `json:"negotiate_attempted"`
	Aborted            bool `json:"aborted"`
	ExperienceAwarded  int  `json:"experience_awarded"`
	GoldAwarded        int  `json:"gold_awarded"`

	CombatLog      string    `json:"combat_log" gorm:"type:text"`
	ActionDeadline time.Time `json:"action_deadline"`
}

func (EncounterRecord) TableName() string { return "encounters" }
