package arena

import (
	"fmt"
	"math"
)

// Projectile is the broadcast-friendly view of a shot in flight. The
// Archetype field names the owning side; a projectile can never damage a
// unit of its own archetype.
type Projectile struct {
	ID        string      `json:"id"`
	Archetype ArchetypeID `json:"archetype"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Radius    float64     `json:"radius"`
}

type projectileState struct {
	Projectile
	velocityX float64
	velocityY float64
	damage    float64
	age       float64
	maxAge    float64
	alive     bool
}

func (p *projectileState) snapshot() Projectile {
	return p.Projectile
}

// spawnProjectile launches a shot from the shooter's body edge toward the
// target's current position. Lifetime covers the nominal engage range plus
// headroom so edge-of-range shots can still land.
func (w *World) spawnProjectile(shooter, target *entityState) {
	dir := vec2{X: target.X - shooter.X, Y: target.Y - shooter.Y}.normalized()
	if dir.isZero() {
		dir = vec2{X: math.Cos(shooter.Heading), Y: math.Sin(shooter.Heading)}
	}
	offset := shooter.stats.BodyRadius + projectileRadius + projectileSpawnGap

	w.nextProjectileID++
	w.projectiles = append(w.projectiles, &projectileState{
		Projectile: Projectile{
			ID:        fmt.Sprintf("shot-%d", w.nextProjectileID),
			Archetype: shooter.Archetype,
			X:         shooter.X + dir.X*offset,
			Y:         shooter.Y + dir.Y*offset,
			Radius:    projectileRadius,
		},
		velocityX: dir.X * projectileSpeed,
		velocityY: dir.Y * projectileSpeed,
		damage:    shooter.stats.Damage,
		maxAge:    shooter.stats.EngageRange * projectileLifeFactor / projectileSpeed,
		alive:     true,
	})
}

// updateProjectile ages, moves, and collides one shot. First living enemy
// within combined radii takes the hit; the shot dies on any terminal
// condition (age, boundary, impact).
func (w *World) updateProjectile(p *projectileState, dt float64) {
	p.age += dt
	if p.age >= p.maxAge {
		p.alive = false
		return
	}

	p.X += p.velocityX * dt
	p.Y += p.velocityY * dt
	if math.Hypot(p.X, p.Y) > w.cfg.ArenaRadius {
		p.alive = false
		return
	}

	for _, e := range w.roster {
		if !e.alive || e.Archetype == p.Archetype {
			continue
		}
		if distance(p.X, p.Y, e.X, e.Y) <= e.stats.BodyRadius+p.Radius {
			w.applyDamage(e, p.damage)
			w.recordProjectileHit(p, e)
			p.alive = false
			return
		}
	}
}
