// Package scene is an in-memory render.Stage. It keeps sprite positions and
// frame playback state; the terminal backend draws from it and tests inspect
// it directly.
package scene

import (
	"fmt"

	"github.com/shmupcore/shmup/internal/core/ecs"
	"github.com/shmupcore/shmup/internal/data"
	"github.com/shmupcore/shmup/internal/render"
)

// Sprite is the scene's render.Handle.
type Sprite struct {
	slot      int
	stage     *Stage
	anim      *data.Animation
	x, y      float64
	frame     int
	ticks     int
	playing   bool
	onStage   bool
	destroyed bool
}

func (s *Sprite) Slot() int        { return s.slot }
func (s *Sprite) SetSlot(slot int) { s.slot = slot }

func (s *Sprite) X() float64 { return s.x }
func (s *Sprite) Y() float64 { return s.y }

func (s *Sprite) SetPosition(x, y float64) {
	s.x, s.y = x, y
}

func (s *Sprite) Attached() bool { return !s.destroyed }
func (s *Sprite) OnStage() bool  { return s.onStage }
func (s *Sprite) Playing() bool  { return s.playing }

// Animation returns the current frame sequence.
func (s *Sprite) Animation() *data.Animation { return s.anim }

// Frame returns the glyph of the current frame.
func (s *Sprite) Frame() string {
	return s.anim.Frames[s.frame]
}

func (s *Sprite) Play() {
	s.frame = 0
	s.ticks = 0
	s.playing = true
}

func (s *Sprite) SetAnimation(name string) error {
	a, err := s.stage.catalog.Get(name)
	if err != nil {
		return err
	}
	s.anim = a
	s.Play()
	return nil
}

// Destroy removes the sprite from the stage and invalidates it.
func (s *Sprite) Destroy() {
	if s.destroyed {
		return
	}
	s.stage.Remove(s)
	s.destroyed = true
	s.playing = false
}

func (s *Sprite) advance(every int) {
	if !s.playing {
		return
	}
	s.ticks++
	if s.ticks%every != 0 {
		return
	}
	s.frame++
	if s.frame < len(s.anim.Frames) {
		return
	}
	if s.anim.Loop {
		s.frame = 0
		return
	}
	s.frame = len(s.anim.Frames) - 1
	s.playing = false
}

// Stage tracks visible sprites in a slot pool.
// Accessed only from the game loop goroutine, no locks needed.
type Stage struct {
	catalog       *data.AnimationCatalog
	width, height float64
	frameEvery    int
	sprites       *ecs.Pool[*Sprite]
}

// NewStage creates a stage of the given playfield size. Frame playback
// advances one frame every frameEvery calls to Animate.
func NewStage(catalog *data.AnimationCatalog, width, height float64, frameEvery int) *Stage {
	if frameEvery < 1 {
		frameEvery = 1
	}
	return &Stage{
		catalog:    catalog,
		width:      width,
		height:     height,
		frameEvery: frameEvery,
		sprites:    ecs.NewPool[*Sprite](256),
	}
}

func (st *Stage) NewHandle(anim string, x, y float64) (render.Handle, error) {
	a, err := st.catalog.Get(anim)
	if err != nil {
		return nil, fmt.Errorf("new handle: %w", err)
	}
	return &Sprite{stage: st, anim: a, x: x, y: y}, nil
}

func (st *Stage) Add(h render.Handle) {
	s, ok := h.(*Sprite)
	if !ok || s.stage != st || s.destroyed || s.onStage {
		return
	}
	st.sprites.Track(s)
	s.onStage = true
}

func (st *Stage) Remove(h render.Handle) {
	s, ok := h.(*Sprite)
	if !ok || !s.onStage {
		return
	}
	st.sprites.Untrack(s)
	s.onStage = false
}

func (st *Stage) Bounds() (float64, float64) {
	return st.width, st.height
}

// Len returns the number of sprites on stage.
func (st *Stage) Len() int { return st.sprites.Live() }

// Each calls fn for every sprite on stage in slot order.
func (st *Stage) Each(fn func(*Sprite)) {
	st.sprites.Each(func(_ int, s *Sprite) { fn(s) })
}

// Animate advances frame playback of every playing sprite.
func (st *Stage) Animate() {
	st.sprites.Each(func(_ int, s *Sprite) { s.advance(st.frameEvery) })
}
