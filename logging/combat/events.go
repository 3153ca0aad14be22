// Package combat defines the typed combat log events published by the
// simulation.
package combat

import (
	"context"

	"arena-clash/server/logging"
)

const (
	// EventHit is emitted when a melee swing or projectile lands.
	EventHit logging.EventType = "combat.hit"
	// EventDefeat is emitted when a unit's health reaches zero.
	EventDefeat logging.EventType = "combat.defeat"
	// EventOutcome is emitted once, on the tick the battle becomes terminal.
	EventOutcome logging.EventType = "battle.outcome"
)

// HitPayload captures where a hit landed and for how much.
type HitPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Damage float64 `json:"damage"`
}

// DefeatPayload names the archetype of the fallen unit.
type DefeatPayload struct {
	Archetype string `json:"archetype"`
}

// OutcomePayload records the terminal battle state.
type OutcomePayload struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
}

// Hit publishes a combat.hit event.
func Hit(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, x, y, damage float64) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHit,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  HitPayload{X: x, Y: y, Damage: damage},
	})
}

// Defeat publishes a combat.defeat event.
func Defeat(ctx context.Context, pub logging.Publisher, tick uint64, target logging.EntityRef, archetype string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDefeat,
		Tick:     tick,
		Actor:    target,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  DefeatPayload{Archetype: archetype},
	})
}

// OutcomeDecided publishes a battle.outcome event.
func OutcomeDecided(ctx context.Context, pub logging.Publisher, tick uint64, status, winner string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventOutcome,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryBattle,
		Payload:  OutcomePayload{Status: status, Winner: winner},
	})
}
