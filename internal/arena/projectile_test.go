package arena

import (
	"math"
	"testing"
)

func newShotWorld(roster ...*entityState) *World {
	cfg := DefaultBattleConfig()
	cfg.Seed = 1
	w := NewWorld(cfg, nil)
	w.roster = roster
	return w
}

func testShot(owner ArchetypeID, x, y, vx, vy float64) *projectileState {
	return &projectileState{
		Projectile: Projectile{ID: "shot-1", Archetype: owner, X: x, Y: y, Radius: projectileRadius},
		velocityX:  vx,
		velocityY:  vy,
		damage:     10,
		maxAge:     10,
		alive:      true,
	}
}

func TestProjectilePassesThroughOwnArchetype(t *testing.T) {
	cat := DefaultCatalog()
	friend := newEntityState("ranger-1", cat.MustGet(ArchetypeRanger), 10, 0)
	enemy := newEntityState("bulwark-1", cat.MustGet(ArchetypeBulwark), 40, 0)
	w := newShotWorld(friend, enemy)

	shot := testShot(ArchetypeRanger, 0, 0, projectileSpeed, 0)
	for i := 0; i < 20 && shot.alive; i++ {
		w.updateProjectile(shot, testDt)
	}

	if friend.Health != friend.MaxHealth {
		t.Fatalf("friendly unit took %.2f damage from its own side's shot", friend.MaxHealth-friend.Health)
	}
	if shot.alive {
		t.Fatalf("shot never reached the enemy")
	}
	if enemy.Health >= enemy.MaxHealth {
		t.Fatalf("enemy took no damage")
	}
}

func TestProjectileHitsFirstEnemyInRosterOrder(t *testing.T) {
	cat := DefaultCatalog()
	first := newEntityState("bulwark-1", cat.MustGet(ArchetypeBulwark), 10, 0)
	second := newEntityState("bulwark-2", cat.MustGet(ArchetypeBulwark), 10, 0)
	w := newShotWorld(first, second)

	shot := testShot(ArchetypeRanger, 8, 0, projectileSpeed, 0)
	w.updateProjectile(shot, testDt)

	if shot.alive {
		t.Fatalf("shot survived an overlapping hit")
	}
	if first.Health >= first.MaxHealth {
		t.Fatalf("first unit in roster order should take the hit")
	}
	if second.Health != second.MaxHealth {
		t.Fatalf("one shot damaged two units")
	}
}

func TestProjectileSkipsDeadUnits(t *testing.T) {
	cat := DefaultCatalog()
	corpse := newEntityState("bulwark-1", cat.MustGet(ArchetypeBulwark), 10, 0)
	corpse.alive = false
	corpse.Health = 0
	w := newShotWorld(corpse)

	shot := testShot(ArchetypeRanger, 8, 0, projectileSpeed, 0)
	w.updateProjectile(shot, testDt)

	if !shot.alive {
		t.Fatalf("shot died on a corpse")
	}
}

func TestProjectileExpiresAtBoundary(t *testing.T) {
	w := newShotWorld()
	shot := testShot(ArchetypeRanger, w.cfg.ArenaRadius-20, 0, projectileSpeed, 0)

	for i := 0; i < 100 && shot.alive; i++ {
		w.updateProjectile(shot, testDt)
		if shot.alive {
			if r := math.Hypot(shot.X, shot.Y); r > w.cfg.ArenaRadius {
				t.Fatalf("live shot outside the arena (r=%.2f)", r)
			}
		}
	}
	if shot.alive {
		t.Fatalf("shot never expired at the boundary")
	}
}

func TestProjectileAgesOut(t *testing.T) {
	w := newShotWorld()
	shot := testShot(ArchetypeRanger, 0, 0, 0, 0)
	shot.maxAge = 0.1

	for i := 0; i < 100 && shot.alive; i++ {
		w.updateProjectile(shot, testDt)
	}
	if shot.alive {
		t.Fatalf("stationary shot never aged out")
	}
	if shot.age < shot.maxAge {
		t.Fatalf("shot expired early (age=%.4f maxAge=%.4f)", shot.age, shot.maxAge)
	}
}

func TestSpawnProjectileStartsOutsideShooter(t *testing.T) {
	cat := DefaultCatalog()
	shooter := newEntityState("ranger-1", cat.MustGet(ArchetypeRanger), 0, 0)
	target := newEntityState("bulwark-1", cat.MustGet(ArchetypeBulwark), 100, 0)
	w := newShotWorld(shooter, target)

	w.spawnProjectile(shooter, target)
	if len(w.projectiles) != 1 {
		t.Fatalf("expected one projectile, got %d", len(w.projectiles))
	}
	shot := w.projectiles[0]

	if d := distance(shot.X, shot.Y, shooter.X, shooter.Y); d <= shooter.stats.BodyRadius+shot.Radius {
		t.Fatalf("shot spawned overlapping its shooter (d=%.2f)", d)
	}
	if shot.velocityX <= 0 || shot.velocityY != 0 {
		t.Fatalf("shot velocity (%.2f, %.2f) does not point at the target", shot.velocityX, shot.velocityY)
	}
	if speed := math.Hypot(shot.velocityX, shot.velocityY); math.Abs(speed-projectileSpeed) > 1e-9 {
		t.Fatalf("shot speed = %.2f, want %.2f", speed, projectileSpeed)
	}

	reach := shot.maxAge * projectileSpeed
	if reach <= shooter.stats.EngageRange {
		t.Fatalf("shot lifetime covers %.1f units, less than the engage range %.1f", reach, shooter.stats.EngageRange)
	}
}

func TestSpawnProjectileIDsAreUnique(t *testing.T) {
	cat := DefaultCatalog()
	shooter := newEntityState("ranger-1", cat.MustGet(ArchetypeRanger), 0, 0)
	target := newEntityState("bulwark-1", cat.MustGet(ArchetypeBulwark), 100, 0)
	w := newShotWorld(shooter, target)

	w.spawnProjectile(shooter, target)
	w.spawnProjectile(shooter, target)

	if w.projectiles[0].ID == w.projectiles[1].ID {
		t.Fatalf("consecutive shots share the ID %s", w.projectiles[0].ID)
	}
}
