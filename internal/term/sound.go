package term

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(44100)
	blipLength = 50 * time.Millisecond
)

// Sound plays short sine blips for game events. A Sound whose speaker
// failed to open is silent.
type Sound struct {
	ok bool
}

// NewSound opens the speaker when enabled. Audio failures are not fatal.
func NewSound(enabled bool, log *zap.Logger) *Sound {
	if !enabled {
		return &Sound{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn("audio initialization failed", zap.Error(err))
		return &Sound{}
	}
	return &Sound{ok: true}
}

func (s *Sound) Enabled() bool { return s.ok }

// Blip plays a short tone at freq Hz.
func (s *Sound) Blip(freq float64) {
	if !s.ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(blipLength), sine))
}

func (s *Sound) Close() {
	if s.ok {
		speaker.Close()
	}
}
