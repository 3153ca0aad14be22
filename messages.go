package main

import "arena-clash/server/internal/arena"

// archetypeInfo is the renderer-facing description of one unit kind.
type archetypeInfo struct {
	ID     arena.ArchetypeID `json:"id"`
	Name   string            `json:"name"`
	Color  string            `json:"color"`
	Radius float64           `json:"radius"`
}

// initMessage is sent once per subscriber, right after the upgrade.
type initMessage struct {
	Type        string                    `json:"type"`
	ArenaRadius float64                   `json:"arenaRadius"`
	Archetypes  []archetypeInfo           `json:"archetypes"`
	Counts      map[arena.ArchetypeID]int `json:"counts"`
}

// stateMessage is the per-tick broadcast: the full snapshot plus the
// domain events collected during the step.
type stateMessage struct {
	Type        string                    `json:"type"`
	Tick        uint64                    `json:"tick"`
	Entities    []arena.Entity            `json:"entities"`
	Projectiles []arena.Projectile        `json:"projectiles"`
	AliveCounts map[arena.ArchetypeID]int `json:"aliveCounts"`
	Outcome     arena.Outcome             `json:"outcome"`
	Events      []arena.Event             `json:"events,omitempty"`
	ServerTime  int64                     `json:"serverTime"`
}

// controlMessage carries spectator commands. Only "reset" is recognized;
// anything else is logged and ignored.
type controlMessage struct {
	Type   string         `json:"type"`
	Counts map[string]int `json:"counts,omitempty"`
}

// diagnosticsSnapshot backs the /diagnostics endpoint.
type diagnosticsSnapshot struct {
	Tick        uint64                    `json:"tick"`
	Outcome     arena.Outcome             `json:"outcome"`
	AliveCounts map[arena.ArchetypeID]int `json:"aliveCounts"`
	Subscribers int                       `json:"subscribers"`
}
