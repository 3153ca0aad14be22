package arena

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizedClampsOutOfRangeValues(t *testing.T) {
	cfg := BattleConfig{
		ArenaRadius: 10,
		SpawnMargin: -5,
		MinSpacing:  -1,
		Counts:      map[ArchetypeID]int{ArchetypeStriker: -3},
	}.Normalized()

	if cfg.ArenaRadius != defaultArenaRadius {
		t.Fatalf("tiny radius not reset: %.1f", cfg.ArenaRadius)
	}
	if cfg.SpawnMargin != defaultSpawnMargin {
		t.Fatalf("negative margin not reset: %.1f", cfg.SpawnMargin)
	}
	if cfg.MinSpacing != defaultMinSpacing {
		t.Fatalf("negative spacing not reset: %.1f", cfg.MinSpacing)
	}
	for _, id := range ArchetypeIDs() {
		if cfg.Counts[id] < 0 {
			t.Fatalf("negative count survived for %s", id)
		}
		if _, ok := cfg.Counts[id]; !ok {
			t.Fatalf("count entry missing for %s", id)
		}
	}
}

func TestNormalizedCapsMarginAtHalfRadius(t *testing.T) {
	cfg := BattleConfig{ArenaRadius: 100, SpawnMargin: 90}.Normalized()
	if cfg.SpawnMargin != 50 {
		t.Fatalf("margin = %.1f, want half the radius", cfg.SpawnMargin)
	}
}

func TestLoadBattleConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadBattleConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	want := DefaultBattleConfig()
	if cfg.ArenaRadius != want.ArenaRadius || cfg.Counts[ArchetypeStriker] != want.Counts[ArchetypeStriker] {
		t.Fatalf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestLoadBattleConfigParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.yaml")
	doc := `
arenaRadius: 200
seed: 42
counts:
  striker: 5
  ranger: 7
overrides:
  ranger:
    speed: 95
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBattleConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ArenaRadius != 200 || cfg.Seed != 42 {
		t.Fatalf("top-level fields not parsed: %+v", cfg)
	}
	if cfg.Counts[ArchetypeStriker] != 5 || cfg.Counts[ArchetypeRanger] != 7 {
		t.Fatalf("counts not parsed: %+v", cfg.Counts)
	}
	// Archetypes the file never mentions keep their default count.
	if cfg.Counts[ArchetypeBulwark] != DefaultBattleConfig().Counts[ArchetypeBulwark] {
		t.Fatalf("unmentioned count lost its default: %+v", cfg.Counts)
	}
	if cfg.Overrides[ArchetypeRanger].Speed != 95 {
		t.Fatalf("overrides not parsed: %+v", cfg.Overrides)
	}

	world := NewWorld(cfg, nil)
	if got := world.Catalog().MustGet(ArchetypeRanger).Speed; got != 95 {
		t.Fatalf("override did not reach the catalog: speed=%.0f", got)
	}
}

func TestLoadBattleConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("counts: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBattleConfig(path); err == nil {
		t.Fatalf("malformed YAML did not error")
	}
}
