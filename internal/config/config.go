package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/torchlight-games/emberfall/internal/constants"
	"github.com/torchlight-games/emberfall/internal/game"
)

// Settings is the server-level configuration: listen address, database
// location, content file and encounter timeouts. ActionTimeout is how long a
// player may sit on a decision before the encounter is abandoned; IdleTimeout
// is how often the scanner sweeps for such encounters. Values come from an
// optional config file plus EMBERFALL_* environment overrides.
type Settings struct {
	Addr          string
	DBPath        string
	ContentPath   string
	ActionTimeout time.Duration
	IdleTimeout   time.Duration
}

// LoadSettings reads server settings. The file named by EMBERFALL_CONFIG is
// read when set; environment variables override it; defaults fill the rest.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("emberfall")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db", "emberfall.db")
	v.SetDefault("content", "emberfall_content.yaml")
	v.SetDefault("action_timeout", 2*time.Minute)
	v.SetDefault("idle_timeout", time.Minute)

	if path := os.Getenv(constants.EnvConfigPath); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	s := &Settings{
		Addr:          v.GetString("addr"),
		DBPath:        v.GetString("db"),
		ContentPath:   v.GetString("content"),
		ActionTimeout: v.GetDuration("action_timeout"),
		IdleTimeout:   v.GetDuration("idle_timeout"),
	}
	if s.ActionTimeout <= 0 {
		return nil, fmt.Errorf("action_timeout must be positive, got %s", s.ActionTimeout)
	}
	if s.IdleTimeout <= 0 {
		return nil, fmt.Errorf("idle_timeout must be positive, got %s", s.IdleTimeout)
	}
	return s, nil
}

type monsterEntry struct {
	Name             string `yaml:"name"`
	MaxHP            int    `yaml:"max_hp"`
	MaxMP            int    `yaml:"max_mp"`
	Attack           int    `yaml:"attack"`
	Defense          int    `yaml:"defense"`
	Agility          int    `yaml:"agility"`
	Intelligence     int    `yaml:"intelligence"`
	ExperienceReward int    `yaml:"experience_value"`
	GoldReward       int    `yaml:"gold_value"`
}

type rawContent struct {
	Bestiary []monsterEntry `yaml:"bestiary"`
	Spells   []game.Spell   `yaml:"spells"`
	Items    []game.Item    `yaml:"items"`
}

// Content is the validated game content: monster templates to seed, the
// spellbook and the item catalog.
type Content struct {
	Bestiary []game.Monster
	Spells   game.SpellBook
	Items    game.ItemCatalog
}

// LoadContent reads the content file at path. It requires a non-empty
// `bestiary` list; `spells` and `items` fall back to the built-in defaults
// when omitted.
func LoadContent(path string) (*Content, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	var rc rawContent
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}

	if len(rc.Bestiary) == 0 {
		return nil, fmt.Errorf("content file %s: bestiary is empty (provide 'bestiary' list)", path)
	}

	monsters := make([]game.Monster, 0, len(rc.Bestiary))
	nameSet := make(map[string]struct{}, len(rc.Bestiary))
	for _, m := range rc.Bestiary {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("content file %s: bestiary entry missing 'name'", path)
		}
		if m.MaxHP <= 0 {
			return nil, fmt.Errorf("content file %s: monster '%s' needs positive 'max_hp'", path, m.Name)
		}
		ln := strings.ToLower(strings.TrimSpace(m.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("content file %s: duplicate monster name '%s'", path, m.Name)
		}
		nameSet[ln] = struct{}{}
		monsters = append(monsters, game.Monster{
			Name:             m.Name,
			MaxHP:            m.MaxHP,
			MaxMP:            m.MaxMP,
			Attack:           m.Attack,
			Defense:          m.Defense,
			AgilityV:         m.Agility,
			Intellect:        m.Intelligence,
			ExperienceReward: m.ExperienceReward,
			GoldReward:       m.GoldReward,
		})
	}

	spells := game.DefaultSpellBook()
	if len(rc.Spells) > 0 {
		spells = make(game.SpellBook, len(rc.Spells))
		for _, sp := range rc.Spells {
			if err := validateSpell(sp); err != nil {
				return nil, fmt.Errorf("content file %s: %w", path, err)
			}
			if _, exists := spells[sp.Key]; exists {
				return nil, fmt.Errorf("content file %s: duplicate spell key '%s'", path, sp.Key)
			}
			spells[sp.Key] = sp
		}
	}

	items := game.DefaultItemCatalog()
	if len(rc.Items) > 0 {
		items = make(game.ItemCatalog, len(rc.Items))
		for _, it := range rc.Items {
			if err := validateItem(it); err != nil {
				return nil, fmt.Errorf("content file %s: %w", path, err)
			}
			if _, exists := items[it.Key]; exists {
				return nil, fmt.Errorf("content file %s: duplicate item key '%s'", path, it.Key)
			}
			items[it.Key] = it
		}
	}

	return &Content{Bestiary: monsters, Spells: spells, Items: items}, nil
}

func validateSpell(sp game.Spell) error {
	if strings.TrimSpace(sp.Key) == "" {
		return fmt.Errorf("spell entry missing 'key'")
	}
	switch sp.Kind {
	case game.SpellKindHeal, game.SpellKindDamage:
		if sp.Power <= 0 {
			return fmt.Errorf("spell '%s' needs positive 'power'", sp.Key)
		}
	case game.SpellKindBuff:
		if !sp.Effect.Known() {
			return fmt.Errorf("spell '%s' has unknown effect '%s'", sp.Key, sp.Effect)
		}
		if sp.Duration <= 0 && sp.Duration != game.DurationPermanent {
			return fmt.Errorf("spell '%s' needs a duration", sp.Key)
		}
	case game.SpellKindCure:
		if sp.Effect != "" && !sp.Effect.Known() {
			return fmt.Errorf("spell '%s' has unknown effect '%s'", sp.Key, sp.Effect)
		}
	default:
		return fmt.Errorf("spell '%s' has unknown kind '%s'", sp.Key, sp.Kind)
	}
	return nil
}

func validateItem(it game.Item) error {
	if strings.TrimSpace(it.Key) == "" {
		return fmt.Errorf("item entry missing 'key'")
	}
	switch it.Kind {
	case game.ItemKindHeal, game.ItemKindBomb:
		if it.Power <= 0 {
			return fmt.Errorf("item '%s' needs positive 'power'", it.Key)
		}
	case game.ItemKindCure:
		if it.Effect != "" && !it.Effect.Known() {
			return fmt.Errorf("item '%s' has unknown effect '%s'", it.Key, it.Effect)
		}
	case game.ItemKindGeneric:
	default:
		return fmt.Errorf("item '%s' has unknown kind '%s'", it.Key, it.Kind)
	}
	return nil
}
