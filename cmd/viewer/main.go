// Command viewer is a local spectator host: it embeds the simulation
// directly, owns the render loop, and feeds real elapsed time into each
// step. Useful for tuning archetypes without a browser attached.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"arena-clash/server/internal/arena"
)

const (
	screenSize   = 640
	edgePadding  = 20.0
	maxDeltaTime = 0.1 // clamp stalls (window drags, breakpoints) to one bearable tick
)

type viewer struct {
	world      *arena.World
	cfg        arena.BattleConfig
	colors     map[arena.ArchetypeID]color.RGBA
	cue        *deathCue
	lastUpdate time.Time
	lastResult arena.StepResult
	scale      float64
}

func newViewer(cfg arena.BattleConfig) *viewer {
	cfg = cfg.Normalized()
	world := arena.NewWorld(cfg, nil)
	world.Reset(cfg.Counts)

	colors := make(map[arena.ArchetypeID]color.RGBA)
	for _, a := range world.Catalog().Archetypes() {
		colors[a.ID] = parseHexColor(a.Color)
	}

	return &viewer{
		world:      world,
		cfg:        cfg,
		colors:     colors,
		cue:        newDeathCue(),
		lastUpdate: time.Now(),
		scale:      (screenSize/2 - edgePadding) / cfg.ArenaRadius,
	}
}

func (v *viewer) Update() error {
	now := time.Now()
	dt := now.Sub(v.lastUpdate).Seconds()
	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}
	v.lastUpdate = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.world.Reset(v.cfg.Counts)
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(key) {
			v.world.Reset(scaleCounts(v.cfg.Counts, i+1))
		}
	}

	v.lastResult = v.world.Step(dt)
	for _, event := range v.lastResult.Events {
		if event.Type == arena.EventDeath {
			v.cue.Play()
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	center := float32(screenSize / 2)
	vector.StrokeCircle(screen, center, center, float32(v.cfg.ArenaRadius*v.scale), 2, color.RGBA{R: 90, G: 90, B: 100, A: 255}, true)

	entities, projectiles := v.world.Snapshot()
	for _, e := range entities {
		x, y := v.toScreen(e.X, e.Y)
		tint := v.colors[e.Archetype]
		radius := float32(e.Radius * v.scale)
		vector.DrawFilledCircle(screen, x, y, radius, tint, true)

		// Heading tick so retreats and strafes read at a glance.
		hx := x + float32(math.Cos(e.Heading))*radius*1.6
		hy := y + float32(math.Sin(e.Heading))*radius*1.6
		vector.StrokeLine(screen, x, y, hx, hy, 1, tint, true)

		// Health bar above the body.
		frac := float32(e.Health / e.MaxHealth)
		barW := radius * 2
		barY := y - radius - 5
		vector.DrawFilledRect(screen, x-radius, barY, barW, 2, color.RGBA{R: 60, G: 60, B: 60, A: 255}, false)
		vector.DrawFilledRect(screen, x-radius, barY, barW*frac, 2, color.RGBA{R: 220, G: 220, B: 220, A: 255}, false)
	}

	for _, p := range projectiles {
		x, y := v.toScreen(p.X, p.Y)
		vector.DrawFilledCircle(screen, x, y, float32(p.Radius*v.scale)+1, v.colors[p.Archetype], true)
	}

	v.drawHUD(screen)
}

func (v *viewer) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	y := 16
	for _, a := range v.world.Catalog().Archetypes() {
		line := fmt.Sprintf("%-8s %d", a.Name, v.lastResult.AliveCounts[a.ID])
		text.Draw(screen, line, face, 8, y, v.colors[a.ID])
		y += 14
	}

	status := "battle in progress"
	switch v.lastResult.Outcome.Status {
	case arena.OutcomeVictory:
		status = fmt.Sprintf("%s wins (R to restart)", v.lastResult.Outcome.Winner)
	case arena.OutcomeDraw:
		status = "mutual annihilation (R to restart)"
	}
	text.Draw(screen, status, face, 8, screenSize-10, color.White)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return screenSize, screenSize
}

// scaleCounts multiplies every configured count, for the 1/2/3 battle-size
// shortcuts.
func scaleCounts(counts map[arena.ArchetypeID]int, factor int) map[arena.ArchetypeID]int {
	scaled := make(map[arena.ArchetypeID]int, len(counts))
	for id, n := range counts {
		scaled[id] = n * factor
	}
	return scaled
}

// toScreen maps arena coordinates (origin at the center) onto the screen.
func (v *viewer) toScreen(x, y float64) (float32, float32) {
	return float32(x*v.scale + screenSize/2), float32(y*v.scale + screenSize/2)
}

func parseHexColor(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func main() {
	configPath := flag.String("config", "config/battle.yaml", "battle config file (YAML)")
	flag.Parse()

	cfg, err := arena.LoadBattleConfig(*configPath)
	if err != nil {
		log.Fatalf("battle config: %v", err)
	}

	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle("Arena Clash")
	if err := ebiten.RunGame(newViewer(cfg)); err != nil {
		log.Fatal(err)
	}
}
