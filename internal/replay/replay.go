// Package replay records the per-tick input masks of a session and packs
// them for storage next to the score.
package replay

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/shmupcore/shmup/internal/core/ecs"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"
)

// idSize is the replay id digest length in bytes.
const idSize = 16

// Version is bumped whenever the frame format changes.
const Version = 1

var ErrVersion = errors.New("unsupported replay version")

// Replay is the stored form of a session's input.
type Replay struct {
	Version  int           `msgpack:"v"`
	Stage    string        `msgpack:"stage"`
	TickRate time.Duration `msgpack:"tick"`
	Frames   []uint16      `msgpack:"frames"`
}

// Recorder appends one input mask per tick.
type Recorder struct {
	frames *ecs.Arena[uint16]
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{frames: ecs.NewArena[uint16](capacity)}
}

func (r *Recorder) Record(mask uint16) {
	r.frames.Push(mask)
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int { return r.frames.Len() }

// Frame returns the mask recorded at tick i, zero outside the recording.
func (r *Recorder) Frame(i int) uint16 { return r.frames.Get(i) }

// Snapshot copies the recording into a Replay.
func (r *Recorder) Snapshot(stage string, tickRate time.Duration) Replay {
	frames := make([]uint16, r.frames.Len())
	for i := range frames {
		frames[i] = r.frames.Get(i)
	}
	return Replay{Version: Version, Stage: stage, TickRate: tickRate, Frames: frames}
}

func (r *Recorder) Reset() { r.frames.Clear() }

// Encode packs rp with msgpack.
func Encode(rp Replay) ([]byte, error) {
	b, err := msgpack.Marshal(&rp)
	if err != nil {
		return nil, fmt.Errorf("encode replay: %w", err)
	}
	return b, nil
}

func Decode(b []byte) (Replay, error) {
	var rp Replay
	if err := msgpack.Unmarshal(b, &rp); err != nil {
		return Replay{}, fmt.Errorf("decode replay: %w", err)
	}
	if rp.Version != Version {
		return Replay{}, fmt.Errorf("decode replay: %w: %d", ErrVersion, rp.Version)
	}
	return rp, nil
}

// ID returns the hex 128-bit BLAKE2b digest of an encoded replay.
func ID(encoded []byte) string {
	h, _ := blake2b.New(idSize, nil) // only fails for bad sizes or keys
	h.Write(encoded)
	return hex.EncodeToString(h.Sum(nil))
}
