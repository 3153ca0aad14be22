package arena

import (
	"context"
	"math"
	"math/rand"
	"time"

	"arena-clash/server/logging"
	combatlog "arena-clash/server/logging/combat"
)

// World owns the authoritative battle state: the unit roster, projectiles
// in flight, and the derived outcome. All state is mutated only inside
// Step and Reset, so one goroutine driving the world needs no locking and
// independent worlds can run side by side.
type World struct {
	catalog   *Catalog
	cfg       BattleConfig
	rng       *rand.Rand
	publisher logging.Publisher

	// roster order is stable within a battle; target selection breaks
	// distance ties by iteration order.
	roster      []*entityState
	projectiles []*projectileState
	outcome     Outcome

	currentTick      uint64
	nextProjectileID uint64
	events           []Event
}

// StepResult is the per-tick report handed back to the host.
type StepResult struct {
	Tick        uint64              `json:"tick"`
	AliveCounts map[ArchetypeID]int `json:"aliveCounts"`
	Outcome     Outcome             `json:"outcome"`
	Events      []Event             `json:"events,omitempty"`
}

// NewWorld constructs an empty world. A zero config seed draws from the
// clock; tests pass a fixed seed for reproducible placement. A nil
// publisher disables logging.
func NewWorld(cfg BattleConfig, publisher logging.Publisher) *World {
	cfg = cfg.Normalized()
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &World{
		catalog:   NewCatalog(cfg.Overrides),
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		publisher: publisher,
		outcome:   Outcome{Status: OutcomeOngoing},
	}
}

// Catalog exposes the archetype table the world was built with.
func (w *World) Catalog() *Catalog {
	return w.catalog
}

// Config returns the normalized battle config.
func (w *World) Config() BattleConfig {
	return w.cfg
}

// Reset clears the field and reseeds it from the requested counts.
// Negative counts are clamped to zero; unknown archetype keys are ignored.
func (w *World) Reset(counts map[ArchetypeID]int) {
	w.roster = placeEntities(w.catalog, w.cfg, w.rng, counts)
	w.projectiles = nil
	w.outcome = Outcome{Status: OutcomeOngoing}
	w.currentTick = 0
	w.events = nil
}

// Step advances the battle by dt seconds. Phase order is fixed: all unit
// turns, then all projectile flights, then death/expiry pruning, then the
// outcome check. A projectile therefore sees deaths from this tick's
// melee, and a unit killed by a projectile has already taken its turn.
// Projectiles spawned this tick do not fly until the next one.
//
// Once the outcome is terminal, or when dt is non-positive or non-finite,
// Step mutates nothing and reports the current state.
func (w *World) Step(dt float64) StepResult {
	if w.outcome.Terminal() {
		return w.result(nil)
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return w.result(nil)
	}

	w.currentTick++

	inFlight := len(w.projectiles)
	for _, e := range w.roster {
		if e.alive {
			w.updateEntity(e, dt)
		}
	}
	for _, p := range w.projectiles[:inFlight] {
		if p.alive {
			w.updateProjectile(p, dt)
		}
	}

	w.prune()
	w.evaluateOutcome()

	events := w.events
	w.events = nil
	return w.result(events)
}

// Snapshot copies living units and projectiles into broadcast structs.
func (w *World) Snapshot() ([]Entity, []Projectile) {
	entities := make([]Entity, 0, len(w.roster))
	for _, e := range w.roster {
		entities = append(entities, e.snapshot())
	}
	projectiles := make([]Projectile, 0, len(w.projectiles))
	for _, p := range w.projectiles {
		projectiles = append(projectiles, p.snapshot())
	}
	return entities, projectiles
}

// Outcome returns the current battle outcome.
func (w *World) Outcome() Outcome {
	return w.outcome
}

// Tick returns the number of effective steps taken since the last reset.
func (w *World) Tick() uint64 {
	return w.currentTick
}

// AliveCounts reports living units per archetype, with zero entries for
// wiped-out sides.
func (w *World) AliveCounts() map[ArchetypeID]int {
	counts := make(map[ArchetypeID]int, len(ArchetypeIDs()))
	for _, id := range ArchetypeIDs() {
		counts[id] = 0
	}
	for _, e := range w.roster {
		if e.alive {
			counts[e.Archetype]++
		}
	}
	return counts
}

func (w *World) result(events []Event) StepResult {
	return StepResult{
		Tick:        w.currentTick,
		AliveCounts: w.AliveCounts(),
		Outcome:     w.outcome,
		Events:      events,
	}
}

// prune drops dead units and expired projectiles, preserving the relative
// order of the survivors.
func (w *World) prune() {
	survivors := w.roster[:0]
	for _, e := range w.roster {
		if e.alive {
			survivors = append(survivors, e)
		}
	}
	w.roster = survivors

	inFlight := w.projectiles[:0]
	for _, p := range w.projectiles {
		if p.alive {
			inFlight = append(inFlight, p)
		}
	}
	w.projectiles = inFlight
}

// evaluateOutcome marks the battle terminal once at most one archetype
// still has living units. It runs after pruning, so all of this tick's
// deaths are final.
func (w *World) evaluateOutcome() {
	counts := w.AliveCounts()
	var survivors []ArchetypeID
	for _, id := range ArchetypeIDs() {
		if counts[id] > 0 {
			survivors = append(survivors, id)
		}
	}
	if len(survivors) > 1 {
		return
	}

	if len(survivors) == 1 {
		w.outcome = Outcome{Status: OutcomeVictory, Winner: survivors[0]}
	} else {
		w.outcome = Outcome{Status: OutcomeDraw}
	}
	outcome := w.outcome
	w.events = append(w.events, Event{Type: EventOutcome, Outcome: &outcome})
	combatlog.OutcomeDecided(context.Background(), w.publisher, w.currentTick, string(outcome.Status), string(outcome.Winner))
}

func (w *World) recordHit(attacker, target *entityState, x, y float64) {
	w.events = append(w.events, Event{Type: EventHit, X: x, Y: y})
	combatlog.Hit(context.Background(), w.publisher, w.currentTick,
		unitRef(attacker.ID), unitRef(target.ID), x, y, attacker.stats.Damage)
}

func (w *World) recordProjectileHit(p *projectileState, target *entityState) {
	w.events = append(w.events, Event{Type: EventHit, X: p.X, Y: p.Y})
	combatlog.Hit(context.Background(), w.publisher, w.currentTick,
		projectileRef(p.ID), unitRef(target.ID), p.X, p.Y, p.damage)
}

func (w *World) recordDeath(target *entityState) {
	w.events = append(w.events, Event{Type: EventDeath, Archetype: target.Archetype})
	combatlog.Defeat(context.Background(), w.publisher, w.currentTick,
		unitRef(target.ID), string(target.Archetype))
}

func unitRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindUnit}
}

func projectileRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindProjectile}
}
