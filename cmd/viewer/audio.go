package main

import (
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	cueSampleRate = beep.SampleRate(44100)
	cueDuration   = 220 * time.Millisecond
	cueStartFreq  = 520.0
	cueEndFreq    = 140.0
	cueVolume     = 0.25
)

// deathCue plays a short synthesized falling tone when a unit dies. Audio
// is pure cosmetics: if the speaker fails to initialize the cue silently
// degrades to a no-op and the simulation never notices.
type deathCue struct {
	enabled bool
}

func newDeathCue() *deathCue {
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(50*time.Millisecond)); err != nil {
		log.Printf("audio disabled: %v", err)
		return &deathCue{}
	}
	return &deathCue{enabled: true}
}

func (c *deathCue) Play() {
	if !c.enabled {
		return
	}
	speaker.Play(&fallingTone{total: cueSampleRate.N(cueDuration)})
}

// fallingTone is a sine sweep from cueStartFreq down to cueEndFreq with a
// linear fade-out.
type fallingTone struct {
	position int
	total    int
	phase    float64
}

func (t *fallingTone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, false
		}
		progress := float64(t.position) / float64(t.total)
		freq := cueStartFreq + (cueEndFreq-cueStartFreq)*progress
		value := math.Sin(2*math.Pi*t.phase) * cueVolume * (1 - progress)

		samples[i][0] = value
		samples[i][1] = value

		t.phase += freq / float64(cueSampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *fallingTone) Err() error { return nil }
