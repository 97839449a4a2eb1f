package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCatalog = `
animations:
  - name: playerIdle
    frames: ["A", "^"]
    loop: true
  - name: playerIdleRight
    frames: ["}"]
    rotate: 12
  - name: projectileKnifeIdle
    frames: ["|"]
    rotations: true
`

func TestParseAnimationCatalog(t *testing.T) {
	c, err := ParseAnimationCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// 2 plain + 8 rotations
	if c.Count() != 10 {
		t.Fatalf("expected 10 animations, got %d", c.Count())
	}

	idle, err := c.Get("playerIdle")
	if err != nil {
		t.Fatalf("get playerIdle: %v", err)
	}
	if !idle.Loop || len(idle.Frames) != 2 {
		t.Errorf("unexpected playerIdle: %+v", idle)
	}

	right, _ := c.Get("playerIdleRight")
	if right.Rotate != 12 {
		t.Errorf("expected rotate 12, got %d", right.Rotate)
	}

	knife, err := c.Get("projectileKnifeIdle45")
	if err != nil {
		t.Fatalf("get rotated: %v", err)
	}
	if knife.Angle != 45 || knife.Rotate != 7 {
		t.Errorf("expected angle 45 rotate 7, got %d/%d", knife.Angle, knife.Rotate)
	}
	if _, err := c.Get("projectileKnifeIdle"); !errors.Is(err, ErrUnknownAnimation) {
		t.Errorf("expected base name of rotated set to be unknown, got %v", err)
	}
}

func TestParseAnimationCatalogRejectsEmptyFrames(t *testing.T) {
	_, err := ParseAnimationCatalog([]byte("animations:\n  - name: x\n"))
	if err == nil {
		t.Fatal("expected error for animation without frames")
	}
}

func TestRotationCode(t *testing.T) {
	cases := map[int]int{0: 0, 45: 7, 90: 6, 180: 4, 315: 1, 360: 0, -45: 1}
	for angle, want := range cases {
		if got := RotationCode(angle); got != want {
			t.Errorf("angle %d: expected %d, got %d", angle, want, got)
		}
	}
}

func TestLoadAnimationCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animations.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadAnimationCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Count() != 10 {
		t.Errorf("expected 10 animations, got %d", c.Count())
	}
	if _, err := LoadAnimationCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
