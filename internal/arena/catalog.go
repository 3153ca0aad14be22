package arena

import "fmt"

// ArchetypeID identifies one of the three fixed unit kinds. The set is
// closed; an unknown ID reaching the catalog is a programmer error.
type ArchetypeID string

const (
	// ArchetypeStriker is the fast melee unit: high speed, light frame,
	// hit-and-run pressure.
	ArchetypeStriker ArchetypeID = "striker"
	// ArchetypeBulwark is the tank melee unit: slow, heavily armored,
	// hardest-hitting in reach.
	ArchetypeBulwark ArchetypeID = "bulwark"
	// ArchetypeRanger is the ranged kiter: holds a distance band and
	// fights with projectiles.
	ArchetypeRanger ArchetypeID = "ranger"
)

// ArchetypeIDs returns the closed enumeration in its canonical order.
// Every roster and counting loop iterates in this order so tie-breaks
// stay reproducible.
func ArchetypeIDs() []ArchetypeID {
	return []ArchetypeID{ArchetypeStriker, ArchetypeBulwark, ArchetypeRanger}
}

// Band is the distance window a ranged unit tries to hold from its target.
type Band struct {
	Min float64
	Max float64
}

// Archetype carries the immutable combat and movement parameters for one
// unit kind. Color is cosmetic and only forwarded to renderers.
type Archetype struct {
	ID             ArchetypeID
	Name           string
	Color          string
	Speed          float64 // units per second
	MaxHealth      float64
	Damage         float64
	EngageRange    float64
	AttackCooldown float64 // seconds
	BodyRadius     float64
	PreferredBand  Band // ranged only; zero for melee
}

// Melee reports whether the archetype resolves attacks in body contact
// rather than with projectiles.
func (a Archetype) Melee() bool {
	return a.ID != ArchetypeRanger
}

var builtinArchetypes = map[ArchetypeID]Archetype{
	ArchetypeStriker: {
		ID:             ArchetypeStriker,
		Name:           "Striker",
		Color:          "#e4574c",
		Speed:          95,
		MaxHealth:      70,
		Damage:         12,
		EngageRange:    6,
		AttackCooldown: 0.7,
		BodyRadius:     9,
	},
	ArchetypeBulwark: {
		ID:             ArchetypeBulwark,
		Name:           "Bulwark",
		Color:          "#4c7be4",
		Speed:          55,
		MaxHealth:      160,
		Damage:         22,
		EngageRange:    8,
		AttackCooldown: 1.2,
		BodyRadius:     13,
	},
	ArchetypeRanger: {
		ID:             ArchetypeRanger,
		Name:           "Ranger",
		Color:          "#57c785",
		Speed:          80,
		MaxHealth:      55,
		Damage:         10,
		EngageRange:    190,
		AttackCooldown: 1.1,
		BodyRadius:     8,
		PreferredBand:  Band{Min: 70, Max: 140},
	},
}

// Catalog is a read-only lookup table of archetype parameters, optionally
// adjusted by battle-config overrides at construction time.
type Catalog struct {
	entries map[ArchetypeID]Archetype
}

// DefaultCatalog returns the built-in archetype table.
func DefaultCatalog() *Catalog {
	return NewCatalog(nil)
}

// NewCatalog builds a catalog from the built-in table with the given
// overrides applied. Zero-valued override fields keep the default.
func NewCatalog(overrides map[ArchetypeID]StatOverrides) *Catalog {
	entries := make(map[ArchetypeID]Archetype, len(builtinArchetypes))
	for id, archetype := range builtinArchetypes {
		if override, ok := overrides[id]; ok {
			archetype = override.applyTo(archetype)
		}
		entries[id] = archetype
	}
	return &Catalog{entries: entries}
}

// Get looks up an archetype by ID.
func (c *Catalog) Get(id ArchetypeID) (Archetype, bool) {
	archetype, ok := c.entries[id]
	return archetype, ok
}

// MustGet looks up an archetype and panics on an unknown ID. The enum is
// fixed at build time, so a miss means a catalog/config mismatch rather
// than a runtime condition to recover from.
func (c *Catalog) MustGet(id ArchetypeID) Archetype {
	archetype, ok := c.entries[id]
	if !ok {
		panic(fmt.Sprintf("arena: unknown archetype %q", id))
	}
	return archetype
}

// Archetypes returns the catalog entries in canonical order.
func (c *Catalog) Archetypes() []Archetype {
	out := make([]Archetype, 0, len(c.entries))
	for _, id := range ArchetypeIDs() {
		out = append(out, c.entries[id])
	}
	return out
}
