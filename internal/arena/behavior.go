package arena

import "math"

// behavior binds one archetype's movement, orientation, and attack rules
// so the step loop stays archetype-agnostic. Each entity carries exactly
// one behavior for the whole battle.
type behavior interface {
	// Steer returns the desired movement direction (a unit vector or
	// zero) and whether the unit should move this tick.
	Steer(w *World, e, target *entityState) (vec2, bool)
	// Face updates the unit's heading given the chosen movement.
	Face(e, target *entityState, dir vec2, moving bool, dt float64)
	// Attack resolves an attack attempt against the current target.
	Attack(w *World, e, target *entityState)
}

// meleeBehavior closes to body contact and swings on cooldown. With
// retreats set it adds the striker's post-hit disengage window.
type meleeBehavior struct {
	retreats bool
}

func (b meleeBehavior) Steer(w *World, e, target *entityState) (vec2, bool) {
	to := vec2{X: target.X - e.X, Y: target.Y - e.Y}
	combined := e.stats.BodyRadius + target.stats.BodyRadius

	if b.retreats && e.retreatTimer > 0 {
		// Disengage overrides closing even in melee range: mostly away
		// from the target, partly lateral to the recorded hit line.
		away := to.scaled(-1).normalized()
		lateral := e.lastHitDir.perp()
		dir := away.scaled(retreatAwayWeight).add(lateral.scaled(retreatLateralWeight)).normalized()
		return dir, true
	}

	return to.normalized(), to.length() > combined
}

// Face keeps melee units square to the target at all times, including
// mid-retreat; melee heading snaps instead of turning smoothly.
func (b meleeBehavior) Face(e, target *entityState, _ vec2, _ bool, _ float64) {
	e.Heading = math.Atan2(target.Y-e.Y, target.X-e.X)
}

func (b meleeBehavior) Attack(w *World, e, target *entityState) {
	if target == nil || !target.alive || e.cooldown > 0 {
		return
	}
	to := vec2{X: target.X - e.X, Y: target.Y - e.Y}
	combined := e.stats.BodyRadius + target.stats.BodyRadius
	reach := math.Max(e.stats.EngageRange, combined)
	if to.length() > reach {
		return
	}

	w.applyDamage(target, e.stats.Damage)
	w.recordHit(e, target, target.X, target.Y)
	e.cooldown = e.stats.AttackCooldown

	if b.retreats {
		e.lastHitDir = to.normalized()
		e.retreatTimer = retreatDuration
		if target.Archetype == ArchetypeBulwark {
			e.retreatTimer = retreatDurationVsTank
		}
	}
}

// rangerBehavior holds a preferred distance band, strafes inside it, and
// blends in a repulsion vector away from nearby threats.
type rangerBehavior struct{}

func (rangerBehavior) Steer(w *World, e, target *entityState) (vec2, bool) {
	to := vec2{X: target.X - e.X, Y: target.Y - e.Y}
	dist := to.length()
	band := e.stats.PreferredBand
	threatRadius := band.Min * threatBandMultiple

	// The ranger holds position only in the narrow window between the
	// threat radius and the band max; otherwise it is always adjusting.
	// Firing range is gated separately in Attack.
	shouldMove := dist < threatRadius || dist > band.Max

	var base vec2
	switch {
	case dist < band.Min:
		base = to.scaled(-1).normalized()
	case dist > band.Max:
		base = to.normalized()
	default:
		// Inside the band: sidestep along the target line instead of
		// closing or opening distance.
		base = to.normalized().perp()
	}

	evade := w.evasionVector(e)
	if evade.length() > evadeThreshold {
		blended := evade.normalized().scaled(evadeBlendWeight).add(base.scaled(steerBlendWeight))
		return blended.normalized(), shouldMove
	}
	return base, shouldMove
}

// Face turns the ranger toward its movement direction (or the target when
// holding position) at a bounded rate, so threat-vector jitter does not
// spin the unit.
func (rangerBehavior) Face(e, target *entityState, dir vec2, moving bool, dt float64) {
	desired := math.Atan2(target.Y-e.Y, target.X-e.X)
	if moving {
		desired = math.Atan2(dir.Y, dir.X)
	}
	delta := wrapAngle(desired - e.Heading)
	maxTurn := rangerTurnRate * dt
	delta = clamp(delta, -maxTurn, maxTurn)
	e.Heading = wrapAngle(e.Heading + delta)
}

func (rangerBehavior) Attack(w *World, e, target *entityState) {
	if target == nil || !target.alive || e.cooldown > 0 {
		return
	}
	if distance(e.X, e.Y, target.X, target.Y) > e.stats.EngageRange {
		return
	}
	w.spawnProjectile(e, target)
	e.cooldown = e.stats.AttackCooldown
}

// evasionVector accumulates repulsion from every living enemy and enemy
// projectile inside the evade radius, weighted by proximity. Projectiles
// push harder than bodies.
func (w *World) evasionVector(e *entityState) vec2 {
	var out vec2
	for _, other := range w.roster {
		if !other.alive || other.Archetype == e.Archetype {
			continue
		}
		d := distance(e.X, e.Y, other.X, other.Y)
		if d <= 0 || d >= evadeRadius {
			continue
		}
		weight := (evadeRadius - d) / evadeRadius
		push := vec2{X: e.X - other.X, Y: e.Y - other.Y}.normalized()
		out = out.add(push.scaled(weight))
	}
	for _, p := range w.projectiles {
		if !p.alive || p.Archetype == e.Archetype {
			continue
		}
		d := distance(e.X, e.Y, p.X, p.Y)
		if d <= 0 || d >= evadeRadius {
			continue
		}
		weight := (evadeRadius - d) / evadeRadius * evadeProjectileBias
		push := vec2{X: e.X - p.X, Y: e.Y - p.Y}.normalized()
		out = out.add(push.scaled(weight))
	}
	return out
}
