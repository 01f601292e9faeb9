package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
)

// RoarGenerator produces a growl: a falling sawtooth roughened with noise.
type RoarGenerator struct {
	sr    beep.SampleRate
	pos   int
	phase float64
	rng   *rand.Rand
}

// NewRoarGenerator creates a roar generator.
func NewRoarGenerator(sr beep.SampleRate) *RoarGenerator {
	return &RoarGenerator{sr: sr, rng: rand.New(rand.NewSource(1))}
}

func (g *RoarGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 140Hz falling towards 70Hz
		freq := 70 + 70*math.Exp(-3*t)
		saw := 2 * (g.phase - 0.5)
		noise := g.rng.Float64()*2 - 1
		amp := 0.3 * math.Min(1, t*20) * math.Exp(-1.5*t)

		val := amp * (0.7*saw + 0.3*noise)
		samples[i][0] = val
		samples[i][1] = val

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *RoarGenerator) Err() error { return nil }

// ChewGenerator produces three short bursts of filtered noise.
type ChewGenerator struct {
	sr   beep.SampleRate
	pos  int
	last float64
	rng  *rand.Rand
}

// NewChewGenerator creates a chew generator.
func NewChewGenerator(sr beep.SampleRate) *ChewGenerator {
	return &ChewGenerator{sr: sr, rng: rand.New(rand.NewSource(2))}
}

func (g *ChewGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	burst := g.sr.N(chewDuration) / 3
	if burst < 1 {
		burst = 1
	}
	for i := range samples {
		// Each burst decays quickly, leaving a gap before the next
		inBurst := float64(g.pos%burst) / float64(burst)
		amp := 0.25 * math.Exp(-12*inBurst)

		// One-pole low-pass keeps the crunch dull
		noise := g.rng.Float64()*2 - 1
		g.last += 0.3 * (noise - g.last)

		val := amp * g.last
		samples[i][0] = val
		samples[i][1] = val
		g.pos++
	}
	return len(samples), true
}

func (g *ChewGenerator) Err() error { return nil }
