package arena

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StatOverrides lets a battle config tune a single archetype without
// recompiling. Zero-valued fields keep the built-in value.
type StatOverrides struct {
	Speed          float64 `yaml:"speed,omitempty" json:"speed,omitempty" jsonschema:"minimum=0,description=Movement speed in units per second"`
	MaxHealth      float64 `yaml:"maxHealth,omitempty" json:"maxHealth,omitempty" jsonschema:"minimum=0,description=Starting and maximum hit points"`
	Damage         float64 `yaml:"damage,omitempty" json:"damage,omitempty" jsonschema:"minimum=0,description=Damage per melee hit or projectile"`
	EngageRange    float64 `yaml:"engageRange,omitempty" json:"engageRange,omitempty" jsonschema:"minimum=0,description=Maximum distance at which an attack can start"`
	AttackCooldown float64 `yaml:"attackCooldown,omitempty" json:"attackCooldown,omitempty" jsonschema:"minimum=0,description=Seconds between attacks"`
	BodyRadius     float64 `yaml:"bodyRadius,omitempty" json:"bodyRadius,omitempty" jsonschema:"minimum=0,description=Collision radius"`
}

func (o StatOverrides) applyTo(archetype Archetype) Archetype {
	if o.Speed > 0 {
		archetype.Speed = o.Speed
	}
	if o.MaxHealth > 0 {
		archetype.MaxHealth = o.MaxHealth
	}
	if o.Damage > 0 {
		archetype.Damage = o.Damage
	}
	if o.EngageRange > 0 {
		archetype.EngageRange = o.EngageRange
	}
	if o.AttackCooldown > 0 {
		archetype.AttackCooldown = o.AttackCooldown
	}
	if o.BodyRadius > 0 {
		archetype.BodyRadius = o.BodyRadius
	}
	return archetype
}

// BattleConfig describes one battle setup: arena geometry, starting unit
// counts, and optional archetype tuning. It is authored as YAML; the
// jsonschema tags feed cmd/schema, which emits a schema document for
// editor validation.
type BattleConfig struct {
	ArenaRadius float64                       `yaml:"arenaRadius,omitempty" json:"arenaRadius,omitempty" jsonschema:"minimum=50,description=Radius of the circular arena"`
	SpawnMargin float64                       `yaml:"spawnMargin,omitempty" json:"spawnMargin,omitempty" jsonschema:"minimum=0,description=Gap kept between spawns and the arena edge"`
	MinSpacing  float64                       `yaml:"minSpacing,omitempty" json:"minSpacing,omitempty" jsonschema:"minimum=0,description=Best-effort minimum distance between spawn points"`
	Seed        int64                         `yaml:"seed,omitempty" json:"seed,omitempty" jsonschema:"description=Fixed RNG seed; zero seeds from the clock"`
	Counts      map[ArchetypeID]int           `yaml:"counts" json:"counts" jsonschema:"description=Starting unit count per archetype"`
	Overrides   map[ArchetypeID]StatOverrides `yaml:"overrides,omitempty" json:"overrides,omitempty" jsonschema:"description=Per-archetype stat tuning"`
}

// DefaultBattleConfig returns the stock three-way skirmish.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		ArenaRadius: defaultArenaRadius,
		SpawnMargin: defaultSpawnMargin,
		MinSpacing:  defaultMinSpacing,
		Counts: map[ArchetypeID]int{
			ArchetypeStriker: 12,
			ArchetypeBulwark: 8,
			ArchetypeRanger:  10,
		},
	}
}

// LoadBattleConfig reads a YAML battle config, filling unset fields from
// the defaults. A missing path returns the defaults unchanged.
func LoadBattleConfig(path string) (BattleConfig, error) {
	cfg := DefaultBattleConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read battle config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse battle config %s: %w", path, err)
	}
	return cfg.Normalized(), nil
}

// Normalized clamps out-of-range values instead of rejecting them, so a
// malformed config still yields a runnable battle.
func (c BattleConfig) Normalized() BattleConfig {
	if c.ArenaRadius < 50 {
		c.ArenaRadius = defaultArenaRadius
	}
	if c.SpawnMargin < 0 {
		c.SpawnMargin = defaultSpawnMargin
	}
	if c.SpawnMargin > c.ArenaRadius/2 {
		c.SpawnMargin = c.ArenaRadius / 2
	}
	if c.MinSpacing < 0 {
		c.MinSpacing = defaultMinSpacing
	}
	counts := make(map[ArchetypeID]int, len(ArchetypeIDs()))
	for _, id := range ArchetypeIDs() {
		n := c.Counts[id]
		if n < 0 {
			n = 0
		}
		counts[id] = n
	}
	c.Counts = counts
	return c
}
