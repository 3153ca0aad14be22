package arena

import (
	"math"
	"testing"
)

// newPairWorld builds a world with exactly two hand-placed units so steering
// assertions are not disturbed by spawn randomness.
func newPairWorld(a, b ArchetypeID, ax, ay, bx, by float64) (*World, *entityState, *entityState) {
	cfg := DefaultBattleConfig()
	cfg.Seed = 1
	w := NewWorld(cfg, nil)
	first := newEntityState(string(a)+"-1", w.Catalog().MustGet(a), ax, ay)
	second := newEntityState(string(b)+"-1", w.Catalog().MustGet(b), bx, by)
	w.roster = []*entityState{first, second}
	return w, first, second
}

func TestRangerClosesWhenBeyondBandMax(t *testing.T) {
	band := DefaultCatalog().MustGet(ArchetypeRanger).PreferredBand
	w, ranger, _ := newPairWorld(ArchetypeRanger, ArchetypeBulwark, 0, 0, band.Max+1, 0)

	w.Step(testDt)

	moved := ranger.stats.Speed * testDt
	if math.Abs(ranger.X-moved) > 1e-9 || math.Abs(ranger.Y) > 1e-9 {
		t.Fatalf("ranger should close straight toward the target, moved to (%.4f, %.4f)", ranger.X, ranger.Y)
	}
}

func TestRangerHoldsInsideComfortWindow(t *testing.T) {
	// 100 sits above the threat radius (87.5) and below the band max (140):
	// the ranger stands still and shoots.
	w, ranger, _ := newPairWorld(ArchetypeRanger, ArchetypeBulwark, 0, 0, 100, 0)

	w.Step(testDt)

	if ranger.X != 0 || ranger.Y != 0 {
		t.Fatalf("ranger should hold position, moved to (%.4f, %.4f)", ranger.X, ranger.Y)
	}
	if len(w.projectiles) != 1 {
		t.Fatalf("ranger in range should still fire, got %d projectiles", len(w.projectiles))
	}
}

func TestRangerStrafesWhenThreatened(t *testing.T) {
	// 80 is inside the band but under the threat radius, so the ranger
	// sidesteps perpendicular to the target line instead of retreating.
	w, ranger, _ := newPairWorld(ArchetypeRanger, ArchetypeBulwark, 0, 0, 80, 0)

	w.Step(testDt)

	moved := ranger.stats.Speed * testDt
	if math.Abs(ranger.X) > 1e-9 || math.Abs(math.Abs(ranger.Y)-moved) > 1e-9 {
		t.Fatalf("ranger should strafe laterally, moved to (%.4f, %.4f)", ranger.X, ranger.Y)
	}
}

func TestRangerBacksAwayInsideBandMin(t *testing.T) {
	w, ranger, _ := newPairWorld(ArchetypeRanger, ArchetypeBulwark, 0, 0, 50, 0)

	w.Step(testDt)

	if ranger.X >= 0 {
		t.Fatalf("ranger should open distance, moved to (%.4f, %.4f)", ranger.X, ranger.Y)
	}
}

func TestEvasionWeighsProjectilesAboveBodies(t *testing.T) {
	cfg := DefaultBattleConfig()
	cfg.Seed = 1
	w := NewWorld(cfg, nil)
	ranger := newEntityState("ranger-1", w.Catalog().MustGet(ArchetypeRanger), 0, 0)
	bulwark := newEntityState("bulwark-1", w.Catalog().MustGet(ArchetypeBulwark), 0, 10)
	w.roster = []*entityState{ranger, bulwark}
	w.projectiles = []*projectileState{{
		Projectile: Projectile{ID: "shot-1", Archetype: ArchetypeBulwark, X: 10, Y: 0, Radius: projectileRadius},
		alive:      true,
	}}

	out := w.evasionVector(ranger)
	if out.X >= 0 || out.Y >= 0 {
		t.Fatalf("evasion should push away from both threats, got %+v", out)
	}
	// Same distance from both threats, so the ratio is exactly the bias.
	if ratio := math.Abs(out.X) / math.Abs(out.Y); math.Abs(ratio-evadeProjectileBias) > 1e-9 {
		t.Fatalf("projectile push ratio = %.4f, want %.4f", ratio, evadeProjectileBias)
	}
}

func TestEvasionIgnoresFriendlyAndDistantThreats(t *testing.T) {
	cfg := DefaultBattleConfig()
	cfg.Seed = 1
	w := NewWorld(cfg, nil)
	ranger := newEntityState("ranger-1", w.Catalog().MustGet(ArchetypeRanger), 0, 0)
	friend := newEntityState("ranger-2", w.Catalog().MustGet(ArchetypeRanger), 5, 0)
	far := newEntityState("bulwark-1", w.Catalog().MustGet(ArchetypeBulwark), evadeRadius+10, 0)
	w.roster = []*entityState{ranger, friend, far}

	if out := w.evasionVector(ranger); !out.isZero() {
		t.Fatalf("expected zero evasion, got %+v", out)
	}
}

func TestStrikerRetreatsAfterLandingHit(t *testing.T) {
	w, striker, bulwark := newPairWorld(ArchetypeStriker, ArchetypeBulwark, 0, 0, 20, 0)

	w.Step(testDt)
	if striker.retreatTimer != retreatDurationVsTank {
		t.Fatalf("retreat timer = %.4f after hitting a bulwark, want %.4f", striker.retreatTimer, retreatDurationVsTank)
	}
	if bulwark.Health >= bulwark.MaxHealth {
		t.Fatalf("bulwark took no damage")
	}

	beforeX := striker.X
	toTarget := vec2{X: bulwark.X - striker.X, Y: bulwark.Y - striker.Y}.normalized()
	w.Step(testDt)
	moved := vec2{X: striker.X - beforeX, Y: striker.Y}
	if moved.isZero() {
		t.Fatalf("retreating striker did not move")
	}
	if dot := moved.X*toTarget.X + moved.Y*toTarget.Y; dot >= 0 {
		t.Fatalf("retreat direction points toward the target (dot=%.4f)", dot)
	}
}

func TestStrikerRetreatWindowShorterThanVsTank(t *testing.T) {
	w, striker, _ := newPairWorld(ArchetypeStriker, ArchetypeRanger, 0, 0, 15, 0)

	w.Step(testDt)
	if striker.retreatTimer != retreatDuration {
		t.Fatalf("retreat timer = %.4f after hitting a ranger, want %.4f", striker.retreatTimer, retreatDuration)
	}
}

func TestMeleeChasesWhenOutOfContact(t *testing.T) {
	w, striker, _ := newPairWorld(ArchetypeStriker, ArchetypeBulwark, 0, 0, 60, 0)

	w.Step(testDt)

	moved := striker.stats.Speed * testDt
	if math.Abs(striker.X-moved) > 1e-9 {
		t.Fatalf("striker should close at full speed, moved to (%.4f, %.4f)", striker.X, striker.Y)
	}
	if striker.Heading != 0 {
		t.Fatalf("melee heading should snap to the target, got %.4f", striker.Heading)
	}
}

func TestRangerTurnRateIsBounded(t *testing.T) {
	w, ranger, _ := newPairWorld(ArchetypeRanger, ArchetypeBulwark, 0, 0, 100, 0)
	ranger.Heading = math.Pi

	before := ranger.Heading
	w.Step(testDt)

	turned := math.Abs(wrapAngle(ranger.Heading - before))
	maxTurn := rangerTurnRate * testDt
	if math.Abs(turned-maxTurn) > 1e-9 {
		t.Fatalf("ranger turned %.4f rad in one step, want the cap %.4f", turned, maxTurn)
	}
}

func TestBulwarkNeverRetreats(t *testing.T) {
	w, _, bulwark := newPairWorld(ArchetypeStriker, ArchetypeBulwark, 0, 0, 20, 0)

	for i := 0; i < 10; i++ {
		w.Step(testDt)
		if bulwark.retreatTimer != 0 {
			t.Fatalf("bulwark acquired a retreat timer: %.4f", bulwark.retreatTimer)
		}
	}
}
