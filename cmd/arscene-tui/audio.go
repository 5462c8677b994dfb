package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sounds plays short tones for scene events. Without an audio device it
// stays silent.
type Sounds struct {
	enabled bool
}

func NewSounds() (*Sounds, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Sounds{}, err
	}
	return &Sounds{enabled: true}, nil
}

func (s *Sounds) tone(freq int, length time.Duration) {
	if !s.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(length), sine))
}

// Hit is played for each tick with a collision.
func (s *Sounds) Hit() { s.tone(880, 50*time.Millisecond) }

// Fire is played when a projectile is launched.
func (s *Sounds) Fire() { s.tone(440, 20*time.Millisecond) }

func (s *Sounds) Close() {
	if s.enabled {
		speaker.Close()
	}
}
