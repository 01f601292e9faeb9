// Package audio plays the sounds animals make after a meal.
package audio

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/menagerie/components"
)

const (
	sampleRate = beep.SampleRate(44100)

	roarDuration = 600 * time.Millisecond
	chewDuration = 300 * time.Millisecond
)

// SoundManager mixes meal sounds onto the speaker. Play is a no-op until
// Initialize succeeds, so a manager without an audio device stays silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager with volume in [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every sound.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play starts the sound for s without blocking.
func (sm *SoundManager) Play(s components.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(withVolume(Streamer(s, sampleRate), sm.volume))
	speaker.Unlock()
	slog.Debug("sound", "kind", s.String())
}

// Streamer returns a finite stream for the given sound.
func Streamer(s components.Sound, sr beep.SampleRate) beep.Streamer {
	if s == components.SoundRoar {
		return beep.Take(sr.N(roarDuration), NewRoarGenerator(sr))
	}
	return beep.Take(sr.N(chewDuration), NewChewGenerator(sr))
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
