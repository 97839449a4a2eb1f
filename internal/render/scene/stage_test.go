package scene

import (
	"errors"
	"testing"

	"github.com/shmupcore/shmup/internal/data"
)

func testCatalog() *data.AnimationCatalog {
	return data.NewAnimationCatalog(
		&data.Animation{Name: "loop", Frames: []string{"a", "b"}, Loop: true},
		&data.Animation{Name: "once", Frames: []string{"x", "y", "z"}},
	)
}

func TestStageAddRemove(t *testing.T) {
	st := NewStage(testCatalog(), 600, 600, 1)
	h, err := st.NewHandle("loop", 10, 20)
	if err != nil {
		t.Fatalf("new handle: %v", err)
	}
	if st.Len() != 0 {
		t.Fatal("new handle must not be on stage")
	}
	if !h.Attached() {
		t.Fatal("new handle must be attached")
	}

	st.Add(h)
	st.Add(h)
	if st.Len() != 1 {
		t.Fatalf("expected 1 sprite, got %d", st.Len())
	}

	h.Destroy()
	if st.Len() != 0 {
		t.Errorf("expected destroy to remove sprite, got %d", st.Len())
	}
	if h.Attached() {
		t.Error("destroyed handle must not be attached")
	}
	st.Add(h)
	if st.Len() != 0 {
		t.Error("destroyed handle must not be re-added")
	}
}

func TestStageUnknownAnimation(t *testing.T) {
	st := NewStage(testCatalog(), 600, 600, 1)
	if _, err := st.NewHandle("missing", 0, 0); !errors.Is(err, data.ErrUnknownAnimation) {
		t.Fatalf("expected ErrUnknownAnimation, got %v", err)
	}
}

func TestStageAnimate(t *testing.T) {
	st := NewStage(testCatalog(), 600, 600, 2)
	loop, _ := st.NewHandle("loop", 0, 0)
	once, _ := st.NewHandle("once", 0, 0)
	for _, h := range []interface{ Play() }{loop, once} {
		h.Play()
	}
	st.Add(loop)
	st.Add(once)

	for i := 0; i < 2; i++ {
		st.Animate()
	}
	if got := loop.(*Sprite).Frame(); got != "b" {
		t.Errorf("expected frame b after 2 animate calls, got %s", got)
	}
	for i := 0; i < 10; i++ {
		st.Animate()
	}
	s := once.(*Sprite)
	if s.Frame() != "z" || s.Playing() {
		t.Errorf("expected non-looping sprite stopped on last frame, got %s playing=%v", s.Frame(), s.Playing())
	}
}

func TestSpriteSetAnimation(t *testing.T) {
	st := NewStage(testCatalog(), 600, 600, 1)
	h, _ := st.NewHandle("loop", 0, 0)
	if err := h.SetAnimation("once"); err != nil {
		t.Fatalf("set animation: %v", err)
	}
	if s := h.(*Sprite); s.Animation().Name != "once" || !s.Playing() {
		t.Errorf("expected playing once, got %s playing=%v", s.Animation().Name, s.Playing())
	}
	if err := h.SetAnimation("missing"); err == nil {
		t.Error("expected error for unknown animation")
	}
}
