package arena

// OutcomeStatus is the battle's terminal state marker.
type OutcomeStatus string

const (
	OutcomeOngoing OutcomeStatus = "ongoing"
	OutcomeVictory OutcomeStatus = "victory"
	OutcomeDraw    OutcomeStatus = "draw"
)

// Outcome reports whether the battle is still running and, on victory,
// which archetype holds the field.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner ArchetypeID   `json:"winner,omitempty"`
}

// Terminal reports whether the outcome can no longer change.
func (o Outcome) Terminal() bool {
	return o.Status == OutcomeVictory || o.Status == OutcomeDraw
}

// EventType tags a domain event collected during a step.
type EventType string

const (
	// EventHit marks a landed attack; X/Y carry the impact point for
	// cosmetic effects.
	EventHit EventType = "hit"
	// EventDeath marks a unit death; Archetype names the fallen side so
	// hosts can pick a cue.
	EventDeath EventType = "death"
	// EventOutcome marks the tick on which the battle became terminal.
	EventOutcome EventType = "outcome"
)

// Event is a fire-and-forget notification for renderer/audio hosts. The
// simulation collects events during a step and hands them out afterwards;
// it never calls into collaborators mid-combat.
type Event struct {
	Type      EventType   `json:"type"`
	X         float64     `json:"x,omitempty"`
	Y         float64     `json:"y,omitempty"`
	Archetype ArchetypeID `json:"archetype,omitempty"`
	Outcome   *Outcome    `json:"outcome,omitempty"`
}
