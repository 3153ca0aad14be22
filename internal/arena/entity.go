package arena

import "math"

// Entity is the broadcast-friendly view of a combat unit.
type Entity struct {
	ID        string      `json:"id"`
	Archetype ArchetypeID `json:"archetype"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Heading   float64     `json:"heading"`
	Health    float64     `json:"health"`
	MaxHealth float64     `json:"maxHealth"`
	Radius    float64     `json:"radius"`
}

type entityState struct {
	Entity
	stats    Archetype
	behavior behavior
	cooldown float64
	alive    bool

	// Striker disengage state: the unit direction of the last landed hit
	// and the remaining retreat window.
	lastHitDir   vec2
	retreatTimer float64
	// evadeTimer is reserved for a dodge cooldown; no behavior reads it yet.
	evadeTimer float64
}

func newEntityState(id string, stats Archetype, x, y float64) *entityState {
	state := &entityState{
		Entity: Entity{
			ID:        id,
			Archetype: stats.ID,
			X:         x,
			Y:         y,
			Health:    stats.MaxHealth,
			MaxHealth: stats.MaxHealth,
			Radius:    stats.BodyRadius,
		},
		stats: stats,
		alive: true,
	}
	switch stats.ID {
	case ArchetypeStriker:
		state.behavior = meleeBehavior{retreats: true}
	case ArchetypeBulwark:
		state.behavior = meleeBehavior{}
	case ArchetypeRanger:
		state.behavior = rangerBehavior{}
	}
	return state
}

func (e *entityState) snapshot() Entity {
	return e.Entity
}

// findTarget picks the nearest living enemy, breaking distance ties by
// roster order (first found wins).
func (w *World) findTarget(e *entityState) *entityState {
	var best *entityState
	bestDist := math.MaxFloat64
	for _, other := range w.roster {
		if !other.alive || other.Archetype == e.Archetype {
			continue
		}
		d := distance(e.X, e.Y, other.X, other.Y)
		if d < bestDist {
			best = other
			bestDist = d
		}
	}
	return best
}

// updateEntity runs one unit's turn: timer decay, target acquisition,
// steering, boundary clamp, orientation, attack. A unit with no living
// enemy only decays its timers.
func (w *World) updateEntity(e *entityState, dt float64) {
	if e.cooldown > 0 {
		e.cooldown = math.Max(0, e.cooldown-dt)
	}
	if e.retreatTimer > 0 {
		e.retreatTimer = math.Max(0, e.retreatTimer-dt)
	}

	target := w.findTarget(e)
	if target == nil {
		return
	}

	dir, shouldMove := e.behavior.Steer(w, e, target)
	moving := shouldMove && !dir.isZero()
	if moving {
		e.X += dir.X * e.stats.Speed * dt
		e.Y += dir.Y * e.stats.Speed * dt
		w.clampToArena(e)
	}
	e.behavior.Face(e, target, dir, moving, dt)
	e.behavior.Attack(w, e, target)
}

// clampToArena pulls a unit radially back inside the boundary circle.
func (w *World) clampToArena(e *entityState) {
	limit := w.cfg.ArenaRadius - e.stats.BodyRadius
	if limit < 0 {
		limit = 0
	}
	r := math.Hypot(e.X, e.Y)
	if r > limit {
		scale := 0.0
		if r > 0 {
			scale = limit / r
		}
		e.X *= scale
		e.Y *= scale
	}
}

// applyDamage subtracts health, clamping at zero, and flips the unit dead
// exactly when health reaches zero.
func (w *World) applyDamage(target *entityState, amount float64) {
	if target == nil || !target.alive || amount <= 0 {
		return
	}
	target.Health -= amount
	if target.Health <= 0 {
		target.Health = 0
		target.alive = false
		w.recordDeath(target)
	}
}
