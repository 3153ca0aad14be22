package arena

import (
	"fmt"
	"math"
	"math/rand"
)

// placeEntities seeds starting positions uniformly by area inside the
// spawn disk. Candidates closer than MinSpacing to an already-placed unit
// are redrawn up to the attempt cap; after that the last candidate stands
// so battle start can never block on a crowded arena.
func placeEntities(catalog *Catalog, cfg BattleConfig, rng *rand.Rand, counts map[ArchetypeID]int) []*entityState {
	maxRadius := cfg.ArenaRadius - cfg.SpawnMargin
	if maxRadius < 0 {
		maxRadius = 0
	}

	roster := make([]*entityState, 0)
	for _, id := range ArchetypeIDs() {
		n := counts[id]
		if n < 0 {
			n = 0
		}
		stats := catalog.MustGet(id)
		for i := 0; i < n; i++ {
			var x, y float64
			for attempt := 0; attempt < placementAttempts; attempt++ {
				angle := rng.Float64() * 2 * math.Pi
				// sqrt keeps density uniform by area instead of
				// clustering candidates at the center.
				radius := math.Sqrt(rng.Float64()) * maxRadius
				x = math.Cos(angle) * radius
				y = math.Sin(angle) * radius
				if clearOf(roster, x, y, cfg.MinSpacing) {
					break
				}
			}
			roster = append(roster, newEntityState(fmt.Sprintf("%s-%d", id, i+1), stats, x, y))
		}
	}
	return roster
}

func clearOf(roster []*entityState, x, y, minSpacing float64) bool {
	for _, e := range roster {
		if distance(x, y, e.X, e.Y) < minSpacing {
			return false
		}
	}
	return true
}
